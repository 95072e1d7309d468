package tui

import (
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/roster/internal/browser"
)

type pane int

const (
	paneActivities pane = iota
	paneSignup
	paneCancel
	numPanes
)

// splitWidth is the terminal width from which the list and the forms are
// shown side by side.
const splitWidth = 100

// Config tunes controller behaviour.
type Config struct {
	// RefreshOnSignup reloads the roster after a successful sign-up.
	// Off by default: only cancellation resynchronizes availability.
	RefreshOnSignup bool
	// WebURL is opened in the browser with "o". Empty disables the key.
	WebURL string
	// Title is shown in the header.
	Title string
}

// App is the root Bubbletea model: the roster view controller. It owns the
// activity list, the sign-up and cancel forms and the participants notice,
// each of which renders its own region.
type App struct {
	cfg          Config
	focus        pane
	activities   activitiesModel
	signup       regForm
	cancel       regForm
	participants participantsModel
	width        int
	height       int
	frame        int // logo shimmer animation frame
}

// NewApp creates the controller around api.
func NewApp(api RosterAPI, cfg Config) App {
	if cfg.Title == "" {
		cfg.Title = "ROSTER"
	}
	return App{
		cfg:        cfg,
		activities: newActivitiesModel(api),
		signup:     newRegForm(signupForm, api),
		cancel:     newRegForm(cancelForm, api),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.activities.load(), shimmerTickCmd())
}

func (a *App) form(kind formKind) *regForm {
	if kind == signupForm {
		return &a.signup
	}
	return &a.cancel
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + blank(1) + help(1) = 5 lines
		bodyMsg := tea.WindowSizeMsg{Width: a.listWidth(), Height: msg.Height - 5}
		a.activities, _ = a.activities.Update(bodyMsg)
		a.participants, _ = a.participants.Update(msg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case rosterLoadedMsg:
		a.activities, _ = a.activities.Update(msg)
		if msg.err == nil && msg.roster != nil {
			names := msg.roster.Names()
			a.signup.activity.setOptions(names)
			a.cancel.activity.setOptions(names)
		}
		return a, nil

	case submitResultMsg:
		var cmd tea.Cmd
		if msg.form == signupForm {
			a.signup, cmd = a.signup.Update(msg)
		} else {
			a.cancel, cmd = a.cancel.Update(msg)
		}
		if msg.err == nil && (msg.form == cancelForm || a.cfg.RefreshOnSignup) {
			return a, tea.Batch(cmd, a.reload())
		}
		return a, cmd

	case flashExpiredMsg:
		if msg.form == signupForm {
			a.signup, _ = a.signup.Update(msg)
		} else {
			a.cancel, _ = a.cancel.Update(msg)
		}
		return a, nil

	case participantsLoadedMsg:
		a.participants.push(msg)
		return a, nil

	case copyResultMsg:
		a.participants, _ = a.participants.Update(msg)
		return a, nil

	case focusFormMsg:
		a.focus = paneSignup
		if msg.form == cancelForm {
			a.focus = paneCancel
		}
		a.form(msg.form).preselect(msg.activity)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	// The participants notice captures all keys until dismissed.
	if a.participants.open() {
		var cmd tea.Cmd
		a.participants, cmd = a.participants.Update(msg)
		return a, cmd
	}

	switch msg.String() {
	case "tab":
		a.focus = (a.focus + 1) % numPanes
		return a, nil
	case "shift+tab":
		a.focus = (a.focus - 1 + numPanes) % numPanes
		return a, nil
	case "esc":
		a.focus = paneActivities
		return a, nil
	}

	if !a.isEditing() {
		switch msg.String() {
		case "q":
			return a, tea.Quit
		case "r":
			return a, a.reload()
		case "1":
			a.focus = paneActivities
			return a, nil
		case "2":
			a.focus = paneSignup
			return a, nil
		case "3":
			a.focus = paneCancel
			return a, nil
		case "o":
			if a.cfg.WebURL != "" {
				return a, openWeb(a.cfg.WebURL)
			}
			return a, nil
		}
	}

	var cmd tea.Cmd
	switch a.focus {
	case paneActivities:
		a.activities, cmd = a.activities.Update(msg)
	case paneSignup:
		a.signup, cmd = a.signup.Update(msg)
	case paneCancel:
		a.cancel, cmd = a.cancel.Update(msg)
	}
	return a, cmd
}

// reload issues a fresh roster request.
func (a *App) reload() tea.Cmd {
	a.activities.loading = true
	return a.activities.load()
}

func (a App) isEditing() bool {
	switch a.focus {
	case paneSignup:
		return a.signup.editing()
	case paneCancel:
		return a.cancel.editing()
	}
	return false
}

func (a App) split() bool {
	return a.width >= splitWidth
}

func (a App) listWidth() int {
	if a.split() {
		return a.width * 55 / 100
	}
	return a.width
}

func openWeb(url string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(url); err != nil {
			log.Printf("open %s: %v", url, err)
		}
		return nil
	}
}

func (a App) View() string {
	logo := renderShimmerLogo(a.cfg.Title, a.frame)
	logoPad := max(0, (a.width-lipgloss.Width(logo))/2)
	header := strings.Repeat(" ", logoPad) + logo

	// Summary line below logo
	summary := ""
	if a.activities.loaded && !a.activities.failed {
		open := 0
		for _, c := range a.activities.cards {
			if !c.activity.IsFull() {
				open++
			}
		}
		summary = metaStyle.Render(fmt.Sprintf("%d activities . %d open", len(a.activities.cards), open))
	}
	summaryPad := max(0, (a.width-lipgloss.Width(summary))/2)
	header += "\n" + strings.Repeat(" ", summaryPad) + summary

	// Tab bar: 1 Activities  2 Sign up  3 Cancel
	type tabEntry struct {
		key  string
		name string
		p    pane
	}
	tabs := []tabEntry{
		{"1", "Activities", paneActivities},
		{"2", "Sign up", paneSignup},
		{"3", "Cancel", paneCancel},
	}
	colWidth := a.width / len(tabs)
	var tabBar strings.Builder
	for _, t := range tabs {
		var label string
		if t.p == a.focus {
			label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
		}
		labelWidth := lipgloss.Width(label)
		leftPad := max(0, (colWidth-labelWidth)/2)
		rightPad := max(0, colWidth-labelWidth-leftPad)
		tabBar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
	}

	var body string
	switch {
	case a.participants.open():
		body = a.participants.View()
	case a.split():
		list := lipgloss.NewStyle().Width(a.listWidth()).Render(a.activities.View(a.focus == paneActivities))
		forms := a.signup.View(a.focus == paneSignup) + "\n" + a.cancel.View(a.focus == paneCancel)
		body = lipgloss.JoinHorizontal(lipgloss.Top, list, forms)
	default:
		switch a.focus {
		case paneActivities:
			body = a.activities.View(true)
		case paneSignup:
			body = a.signup.View(true)
		case paneCancel:
			body = a.cancel.View(true)
		}
		// Messages stay visible whichever pane is showing.
		if a.focus != paneSignup {
			if v := a.signup.flash.View(); v != "" {
				body += "\n " + v
			}
		}
		if a.focus != paneCancel {
			if v := a.cancel.flash.View(); v != "" {
				body += "\n " + v
			}
		}
	}

	chrome := 5
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	return fmt.Sprintf("%s\n%s\n\n%s\n%s", header, tabBar.String(), body, a.helpBar())
}

func (a App) helpBar() string {
	if a.participants.open() {
		return " " + helpEntry("enter", "dismiss") + "  " + helpEntry("c", "copy")
	}
	switch a.focus {
	case paneSignup, paneCancel:
		if a.isEditing() {
			return " " + helpEntry("tab", "pane") + "  " + helpEntry("↓/enter", "activity") + "  " + helpEntry("ctrl+s", "submit") + "  " + helpEntry("esc", "back")
		}
		return " " + helpEntry("tab", "pane") + "  " + helpEntry("←/→", "choose") + "  " + helpEntry("enter", "submit") + "  " + helpEntry("↑", "email") + "  " + helpEntry("q", "quit")
	}
	help := " " + helpEntry("1-3", "panes") + "  " + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "participants") + "  " + helpEntry("r", "reload")
	if a.cfg.WebURL != "" {
		help += "  " + helpEntry("o", "web")
	}
	return help + "  " + helpEntry("q", "quit")
}
