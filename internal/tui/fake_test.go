package tui

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/roster/pkg/client"
	"github.com/naveenspark/roster/pkg/domain"
)

// fakeAPI is a scripted RosterAPI that counts calls.
type fakeAPI struct {
	roster  *domain.Roster
	listErr error

	signupMsg string
	signupErr error
	cancelMsg string
	cancelErr error

	participants    *domain.ParticipantList
	participantsErr error

	listCalls         int
	signupCalls       int
	cancelCalls       int
	participantsCalls int
	lastActivity      string
	lastEmail         string
	lastRequestIDSet  bool
}

func (f *fakeAPI) ListActivities(ctx context.Context) (*domain.Roster, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.roster, nil
}

func (f *fakeAPI) Signup(ctx context.Context, activity, email string) (string, error) {
	f.signupCalls++
	f.lastActivity, f.lastEmail = activity, email
	f.lastRequestIDSet = client.RequestIDFrom(ctx) != ""
	return f.signupMsg, f.signupErr
}

func (f *fakeAPI) Cancel(ctx context.Context, activity, email string) (string, error) {
	f.cancelCalls++
	f.lastActivity, f.lastEmail = activity, email
	return f.cancelMsg, f.cancelErr
}

func (f *fakeAPI) Participants(ctx context.Context, activity string) (*domain.ParticipantList, error) {
	f.participantsCalls++
	f.lastActivity = activity
	if f.participantsErr != nil {
		return nil, f.participantsErr
	}
	return f.participants, nil
}

var errTransport = errors.New("dial tcp 127.0.0.1:8000: connect: connection refused")

func rejection(status int, detail string) error {
	return &client.HTTPError{StatusCode: status, Detail: detail, Structured: true}
}

// gatewayError returns the error a real client produces when a proxy answers
// 502 with an HTML page instead of the API's JSON.
func gatewayError(t *testing.T) error {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>Bad Gateway</html>")) //nolint:errcheck
	}))
	defer srv.Close()

	_, err := client.New(srv.URL).Signup(context.Background(), "Chess Club", "emma@mergington.edu")
	if err == nil {
		t.Fatal("expected an error from the gateway")
	}
	return err
}

func testRoster() *domain.Roster {
	return &domain.Roster{Activities: []domain.Activity{
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		{
			Name:            "Art Workshop",
			Description:     "Explore painting, drawing, and sculpture",
			Schedule:        "Wednesdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 16,
		},
		{
			Name:            "Gym Class",
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 2,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
	}}
}

// timerRecorder replaces the form timers so tests observe the requested
// delays instead of sleeping through them.
type timerRecorder struct {
	delays []time.Duration
	msgs   []tea.Msg
}

func (r *timerRecorder) after(d time.Duration, msg tea.Msg) tea.Cmd {
	r.delays = append(r.delays, d)
	r.msgs = append(r.msgs, msg)
	return nil
}

// drain runs cmd and every command batched inside it, returning the
// resulting messages.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}
