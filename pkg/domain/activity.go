package domain

import "fmt"

// Activity is an extracurricular activity as returned by the roster endpoint.
// The name is the key of the roster object, not a field of the value.
type Activity struct {
	Name            string   `json:"-"`
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// SpotsLeft returns the remaining capacity, never below zero.
func (a Activity) SpotsLeft() int {
	left := a.MaxParticipants - len(a.Participants)
	if left < 0 {
		return 0
	}
	return left
}

// IsFull reports whether no spots remain.
func (a Activity) IsFull() bool {
	return a.SpotsLeft() == 0
}

// Availability renders the card availability line, e.g. "3 spots left (9/12)".
func (a Activity) Availability() string {
	return fmt.Sprintf("%d spots left (%d/%d)", a.SpotsLeft(), len(a.Participants), a.MaxParticipants)
}

// HasParticipant reports whether email is already registered.
func (a Activity) HasParticipant(email string) bool {
	for _, p := range a.Participants {
		if p == email {
			return true
		}
	}
	return false
}
