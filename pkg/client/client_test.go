package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/naveenspark/roster/internal/devserver"
	"github.com/naveenspark/roster/pkg/domain"
)

func newDevClient(t *testing.T) *Client {
	t.Helper()
	srv := httptest.NewServer(devserver.NewRouter(devserver.NewStore(devserver.SchoolDomain, devserver.SeedActivities())))
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func TestListActivities(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/activities" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"Gym Class": {"description": "d", "schedule": "s", "max_participants": 30, "participants": ["a@x.edu"]},` + //nolint:errcheck
			`"Chess Club": {"description": "d", "schedule": "s", "max_participants": 12, "participants": []}}`))
	}))
	defer srv.Close()

	c := New(srv.URL + "/")
	r, err := c.ListActivities(context.Background())
	if err != nil {
		t.Fatalf("ListActivities() error: %v", err)
	}
	names := r.Names()
	if len(names) != 2 || names[0] != "Gym Class" || names[1] != "Chess Club" {
		t.Errorf("Names() = %v, want [Gym Class Chess Club]", names)
	}
}

func TestListActivities_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html>oops</html>`)) //nolint:errcheck
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListActivities(context.Background())
	if err == nil {
		t.Fatal("expected error for malformed body")
	}
	if IsRejection(err) {
		t.Errorf("malformed body should be a transport failure, got %v", err)
	}
}

func TestSignupEscapesNameAndEmail(t *testing.T) {
	var gotPath, gotEmail, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.EscapedPath()
		gotEmail = r.URL.Query().Get("email")
		json.NewEncoder(w).Encode(domain.MessageResponse{Message: "ok"}) //nolint:errcheck
	}))
	defer srv.Close()

	msg, err := New(srv.URL).Signup(context.Background(), "Art & Design/2", "a+b@mergington.edu")
	if err != nil {
		t.Fatalf("Signup() error: %v", err)
	}
	if msg != "ok" {
		t.Errorf("message = %q, want %q", msg, "ok")
	}
	if gotMethod != http.MethodPost {
		t.Errorf("method = %s, want POST", gotMethod)
	}
	if want := "/activities/Art%20&%20Design%2F2/signup"; gotPath != want {
		t.Errorf("path = %q, want %q", gotPath, want)
	}
	if gotEmail != "a+b@mergington.edu" {
		t.Errorf("email = %q, want %q", gotEmail, "a+b@mergington.edu")
	}
}

func TestSignupRejectionCarriesDetail(t *testing.T) {
	c := newDevClient(t)
	_, err := c.Signup(context.Background(), "Chess Club", "someone@otherschool.edu")
	if err == nil {
		t.Fatal("expected rejection")
	}
	if !IsStatus(err, http.StatusBadRequest) {
		t.Errorf("expected 400, got %v", err)
	}
	if got, want := DetailOf(err), "Only Mergington High School students can sign up"; got != want {
		t.Errorf("DetailOf() = %q, want %q", got, want)
	}
}

func TestRejectionWithoutDetail(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no detail field", `{"error": "boom"}`},
		{"validation list", `{"detail": [{"loc": ["query", "email"], "msg": "field required"}]}`},
		{"json string", `"nope"`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				w.Write([]byte(tc.body)) //nolint:errcheck
			}))
			defer srv.Close()

			_, err := New(srv.URL).Cancel(context.Background(), "Chess Club", "a@mergington.edu")
			if !IsRejection(err) {
				t.Fatalf("expected HTTPError, got %v", err)
			}
			if d := DetailOf(err); d != "" {
				t.Errorf("DetailOf() = %q, want empty", d)
			}
			if !strings.Contains(err.Error(), "HTTP 422") {
				t.Errorf("error = %q, want it to contain 'HTTP 422'", err.Error())
			}
		})
	}
}

func TestNonJSONErrorBodyIsTransportFailure(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"html gateway page", `<html>Bad Gateway</html>`},
		{"plain text", `Internal Server Error`},
		{"empty", ``},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte(tc.body)) //nolint:errcheck
			}))
			defer srv.Close()

			_, err := New(srv.URL).Signup(context.Background(), "Chess Club", "a@mergington.edu")
			if err == nil {
				t.Fatal("expected an error")
			}
			if IsRejection(err) {
				t.Errorf("non-JSON body classified as rejection: %v", err)
			}
			if !IsStatus(err, http.StatusBadGateway) {
				t.Errorf("expected status 502 to stay inspectable, got %v", err)
			}
		})
	}
}

func TestCancelAndParticipants(t *testing.T) {
	c := newDevClient(t)
	ctx := context.Background()

	msg, err := c.Cancel(ctx, "Chess Club", "michael@mergington.edu")
	if err != nil {
		t.Fatalf("Cancel() error: %v", err)
	}
	if want := "Cancelled michael@mergington.edu's signup for Chess Club"; msg != want {
		t.Errorf("message = %q, want %q", msg, want)
	}

	p, err := c.Participants(ctx, "Chess Club")
	if err != nil {
		t.Fatalf("Participants() error: %v", err)
	}
	if p.TotalParticipants != 1 || p.AvailableSpots != 11 {
		t.Errorf("summary = %d/%d, want 1/11", p.TotalParticipants, p.AvailableSpots)
	}
	if p.Capacity() != 12 {
		t.Errorf("Capacity() = %d, want 12", p.Capacity())
	}
}

func TestParticipants_NotFound(t *testing.T) {
	c := newDevClient(t)
	_, err := c.Participants(context.Background(), "Nonexistent Club")
	if !IsStatus(err, http.StatusNotFound) {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestRequestIDHeader(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get(RequestIDHeader))
		w.Write([]byte(`{}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.ListActivities(WithRequestID(context.Background(), "flow-123")); err != nil {
		t.Fatalf("ListActivities() error: %v", err)
	}
	if _, err := c.ListActivities(context.Background()); err != nil {
		t.Fatalf("ListActivities() error: %v", err)
	}
	if got[0] != "flow-123" {
		t.Errorf("first request id = %q, want %q", got[0], "flow-123")
	}
	if got[1] == "" {
		t.Error("expected a generated request id on the second request")
	}
}

func TestDoRequest_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).Signup(context.Background(), "Chess Club", "a@mergington.edu")
	if err == nil {
		t.Fatal("expected error for closed server")
	}
	if IsRejection(err) {
		t.Errorf("expected transport failure, got rejection %v", err)
	}
}

func TestDoRequest_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(2 * time.Second) // slow server
		w.Write([]byte(`{}`))       //nolint:errcheck
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(srv.URL).ListActivities(ctx)
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestWithHTTPClient(t *testing.T) {
	hc := &http.Client{}
	c := New("http://example.invalid", WithHTTPClient(hc))
	if c.httpClient != hc {
		t.Error("WithHTTPClient did not replace the http.Client")
	}
	if c.httpClient.Timeout != 0 {
		t.Errorf("Timeout = %v, want 0", c.httpClient.Timeout)
	}
}
