package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/roster/pkg/client"
	"github.com/naveenspark/roster/pkg/domain"
)

const noParticipantsText = "No participants yet"

type participantsLoadedMsg struct {
	activity string
	list     *domain.ParticipantList
	err      error
}

type copyResultMsg struct {
	err error
}

// participantsNotice is one modal's content: either a list or a failure.
type participantsNotice struct {
	activity string
	list     *domain.ParticipantList
	failure  string
}

func (n participantsNotice) body() string {
	if n.failure != "" {
		return n.failure
	}
	emails := noParticipantsText
	if len(n.list.Participants) > 0 {
		emails = n.list.Joined()
	}
	return fmt.Sprintf("%s Participants:\n\n%s\n\nTotal: %d/%d",
		n.activity, emails, n.list.TotalParticipants, n.list.Capacity())
}

// participantsModel is the blocking participants notice. Notices that
// arrive while one is showing wait behind it; each dismissal reveals the
// next.
type participantsModel struct {
	queue  []participantsNotice
	status string
	width  int
}

func (m participantsModel) open() bool {
	return len(m.queue) > 0
}

func (m *participantsModel) push(msg participantsLoadedMsg) {
	n := participantsNotice{activity: msg.activity, list: msg.list}
	switch {
	case msg.err != nil && client.IsRejection(msg.err):
		n.failure = "Failed to load participants"
	case msg.err != nil || msg.list == nil:
		n.failure = "Error loading participants"
	}
	m.queue = append(m.queue, n)
}

func (m participantsModel) Update(msg tea.Msg) (participantsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case copyResultMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("copy failed: %v", msg.err)
		} else {
			m.status = "copied!"
		}

	case tea.KeyMsg:
		if !m.open() {
			return m, nil
		}
		switch msg.String() {
		case "esc", "enter", "q", " ":
			m.queue = m.queue[1:]
			m.status = ""
		case "c":
			current := m.queue[0]
			if current.failure == "" && len(current.list.Participants) > 0 {
				text := strings.Join(current.list.Participants, "\n")
				return m, func() tea.Msg {
					return copyResultMsg{err: clipboard.WriteAll(text)}
				}
			}
		}
	}
	return m, nil
}

func (m participantsModel) View() string {
	if !m.open() {
		return ""
	}
	current := m.queue[0]

	boxWidth := min(60, m.width-4)
	if boxWidth < 30 {
		boxWidth = 30
	}
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Background(surfaceColor).
		Padding(1, 2).
		Width(boxWidth)

	var sb strings.Builder
	if current.failure != "" {
		sb.WriteString(errorStyle.Render(current.failure) + "\n")
	} else {
		sb.WriteString(normalStyle.Render(current.body()) + "\n")
	}

	sb.WriteString("\n")
	if m.status != "" {
		sb.WriteString(accentStyle.Render(m.status) + "  ")
	}
	if current.failure == "" && len(current.list.Participants) > 0 {
		sb.WriteString(helpEntry("c", "copy") + "  ")
	}
	sb.WriteString(helpEntry("enter", "ok"))
	if waiting := len(m.queue) - 1; waiting > 0 {
		sb.WriteString("  " + metaStyle.Render(fmt.Sprintf("+%d more", waiting)))
	}

	return "\n" + border.Render(sb.String())
}
