package domain

// MessageResponse is the success body of the sign-up and cancel endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// DetailResponse is the error body the service returns on rejection.
type DetailResponse struct {
	Detail string `json:"detail"`
}
