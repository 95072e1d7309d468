package tui

import (
	"context"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/naveenspark/roster/pkg/client"
	"github.com/naveenspark/roster/pkg/domain"
)

// RosterAPI is the server surface the controller drives. *client.Client
// satisfies it; tests substitute a fake.
type RosterAPI interface {
	ListActivities(ctx context.Context) (*domain.Roster, error)
	Signup(ctx context.Context, activity, email string) (string, error)
	Cancel(ctx context.Context, activity, email string) (string, error)
	Participants(ctx context.Context, activity string) (*domain.ParticipantList, error)
}

var _ RosterAPI = (*client.Client)(nil)

// messageTTL is how long a sign-up or cancel message stays on screen.
const messageTTL = 5 * time.Second

// timerFunc delivers msg after d.
type timerFunc func(d time.Duration, msg tea.Msg) tea.Cmd

func tick(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

// newFlow starts one request/response cycle. The id travels as the request
// id header and tags diagnostics for the flow.
func newFlow() (context.Context, string) {
	id := uuid.NewString()
	return client.WithRequestID(context.Background(), id), id
}

// logFlowError writes a flow failure to the diagnostic log.
func logFlowError(flow, id string, err error) {
	log.Printf("%s flow %s: %v", flow, id, err)
}
