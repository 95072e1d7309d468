package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/roster/pkg/domain"
)

// loadFailedNotice replaces the list when the roster cannot be loaded.
const loadFailedNotice = "Failed to load activities. Please try again later."

// cardHeight is the number of lines one rendered card takes, gap included.
const cardHeight = 6

type rosterLoadedMsg struct {
	roster *domain.Roster
	err    error
}

// focusFormMsg moves focus to a form with activity preselected.
type focusFormMsg struct {
	form     formKind
	activity string
}

// activityCard is one rendered activity. Its participants control is bound
// to the activity when the card is built.
type activityCard struct {
	activity         domain.Activity
	viewParticipants tea.Cmd
}

func newActivityCard(api RosterAPI, a domain.Activity) activityCard {
	name := a.Name
	return activityCard{
		activity: a,
		viewParticipants: func() tea.Msg {
			ctx, id := newFlow()
			list, err := api.Participants(ctx, name)
			if err != nil {
				logFlowError("participants", id, err)
			}
			return participantsLoadedMsg{activity: name, list: list, err: err}
		},
	}
}

type activitiesModel struct {
	api     RosterAPI
	cards   []activityCard
	cursor  int
	loaded  bool
	loading bool
	failed  bool
	width   int
	height  int
}

func newActivitiesModel(api RosterAPI) activitiesModel {
	return activitiesModel{api: api}
}

// load issues the roster request. The current cards stay on screen until
// the response replaces them.
func (m activitiesModel) load() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, id := newFlow()
		r, err := api.ListActivities(ctx)
		if err != nil {
			logFlowError("roster", id, err)
		}
		return rosterLoadedMsg{roster: r, err: err}
	}
}

func (m activitiesModel) Update(msg tea.Msg) (activitiesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case rosterLoadedMsg:
		m.loading = false
		m.loaded = true
		if msg.err != nil || msg.roster == nil {
			m.failed = true
			m.cards = nil
			m.cursor = 0
			return m, nil
		}
		m.failed = false
		cards := make([]activityCard, 0, msg.roster.Len())
		for _, a := range msg.roster.Activities {
			cards = append(cards, newActivityCard(m.api, a))
		}
		m.cards = cards
		if m.cursor >= len(m.cards) {
			m.cursor = 0
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m activitiesModel) handleKey(msg tea.KeyMsg) (activitiesModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.cards)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		if len(m.cards) > 0 {
			m.cursor = len(m.cards) - 1
		}
	case "enter", "p":
		if card, ok := m.selected(); ok {
			return m, card.viewParticipants
		}
	case "s", "x":
		if card, ok := m.selected(); ok {
			form := signupForm
			if msg.String() == "x" {
				form = cancelForm
			}
			name := card.activity.Name
			return m, func() tea.Msg { return focusFormMsg{form: form, activity: name} }
		}
	}
	return m, nil
}

func (m activitiesModel) selected() (activityCard, bool) {
	if m.cursor < 0 || m.cursor >= len(m.cards) {
		return activityCard{}, false
	}
	return m.cards[m.cursor], true
}

// visibleRange returns the slice of cards that fits the pane height,
// keeping the cursor on screen.
func (m activitiesModel) visibleRange() (int, int) {
	n := len(m.cards)
	perPage := n
	if m.height > 0 {
		perPage = max(1, (m.height-1)/cardHeight)
	}
	if perPage >= n {
		return 0, n
	}
	start := 0
	if m.cursor >= perPage {
		start = m.cursor - perPage + 1
	}
	return start, min(n, start+perPage)
}

func (m activitiesModel) View(focused bool) string {
	var b strings.Builder

	title := sectionHeaderStyle.Render("── ACTIVITIES ──")
	if focused {
		title = accentStyle.Render("── ACTIVITIES ──")
	}
	b.WriteString(title + "\n")

	if m.failed {
		b.WriteString("\n " + errorStyle.Render(loadFailedNotice) + "\n")
		return b.String()
	}
	if !m.loaded {
		b.WriteString("\n " + dimStyle.Render("Loading activities...") + "\n")
		return b.String()
	}
	if len(m.cards) == 0 {
		b.WriteString("\n " + dimStyle.Render("no activities on the roster") + "\n")
		return b.String()
	}

	textWidth := m.width - 6
	start, end := m.visibleRange()
	if start > 0 {
		b.WriteString(metaStyle.Render("   ▲ more") + "\n")
	} else {
		b.WriteString("\n")
	}
	for i := start; i < end; i++ {
		b.WriteString(m.renderCard(m.cards[i].activity, focused && i == m.cursor, textWidth))
	}
	if end < len(m.cards) {
		b.WriteString(metaStyle.Render("   ▼ more") + "\n")
	}
	if m.loading {
		b.WriteString(dimStyle.Render(" refreshing...") + "\n")
	}
	return b.String()
}

func (m activitiesModel) renderCard(a domain.Activity, active bool, textWidth int) string {
	cursor := " "
	name := normalStyle.Bold(true).Render(a.Name)
	if active {
		cursor = accentStyle.Render("▸")
		name = selectedStyle.Render(a.Name)
	}

	var b strings.Builder
	b.WriteString(" " + cursor + " " + name + "\n")
	b.WriteString("   " + dimStyle.Render(truncStr(a.Description, textWidth)) + "\n")
	b.WriteString("   " + labelStyle.Render("Schedule:") + " " + normalStyle.Render(truncStr(a.Schedule, textWidth-10)) + "\n")
	b.WriteString("   " + labelStyle.Render("Availability:") + " " +
		availabilityStyle(a.SpotsLeft(), a.MaxParticipants).Render(a.Availability()) + "\n")
	if active {
		b.WriteString("   " + helpEntry("enter", "view participants") + "  " + helpEntry("s", "sign up") + "  " + helpEntry("x", "cancel") + "\n")
	} else {
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}
