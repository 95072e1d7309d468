package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/roster/pkg/client"
)

// formKind tells the two registration forms apart.
type formKind int

const (
	signupForm formKind = iota
	cancelForm
)

func (k formKind) String() string {
	if k == signupForm {
		return "signup"
	}
	return "cancel"
}

func (k formKind) title() string {
	if k == signupForm {
		return "SIGN UP FOR AN ACTIVITY"
	}
	return "CANCEL A REGISTRATION"
}

func (k formKind) action() string {
	if k == signupForm {
		return "sign up"
	}
	return "cancel registration"
}

// failureText maps a flow error to the text shown in the message region:
// the server's detail when it sent one, a generic rejection otherwise, and
// a retry prompt for transport failures.
func (k formKind) failureText(err error) string {
	if client.IsRejection(err) {
		if d := client.DetailOf(err); d != "" {
			return d
		}
		return "An error occurred"
	}
	if k == signupForm {
		return "Failed to sign up. Please try again."
	}
	return "Failed to cancel registration. Please try again."
}

type formField int

const (
	fieldEmail formField = iota
	fieldActivity
	numFields
)

// submitResultMsg carries the outcome of one sign-up or cancel flow.
type submitResultMsg struct {
	form     formKind
	activity string
	message  string
	err      error
}

// regForm is the sign-up or cancel form: an email input, an activity
// selector and the message region it owns.
type regForm struct {
	kind     formKind
	api      RosterAPI
	after    timerFunc
	email    string
	activity selector
	focus    formField
	pending  int
	hint     string
	flash    flash
}

func newRegForm(kind formKind, api RosterAPI) regForm {
	return regForm{
		kind:     kind,
		api:      api,
		after:    tick,
		activity: newSelector(),
	}
}

// editing reports whether keystrokes are going into the email input.
func (m regForm) editing() bool {
	return m.focus == fieldEmail
}

func (m regForm) Update(msg tea.Msg) (regForm, tea.Cmd) {
	switch msg := msg.(type) {
	case submitResultMsg:
		if msg.form != m.kind {
			return m, nil
		}
		if m.pending > 0 {
			m.pending--
		}
		var gen int
		if msg.err == nil {
			gen = m.flash.show(msg.message, flashSuccess)
			m.reset()
		} else {
			gen = m.flash.show(m.kind.failureText(msg.err), flashError)
		}
		return m, m.after(messageTTL, flashExpiredMsg{form: m.kind, gen: gen})

	case flashExpiredMsg:
		if msg.form == m.kind {
			m.flash.expire(msg.gen)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m regForm) handleKey(msg tea.KeyMsg) (regForm, tea.Cmd) {
	m.hint = ""
	key := msg.String()

	switch key {
	case "ctrl+s":
		return m.submit()
	case "up":
		m.focus = (m.focus - 1 + numFields) % numFields
		return m, nil
	case "down":
		m.focus = (m.focus + 1) % numFields
		return m, nil
	}

	switch m.focus {
	case fieldEmail:
		if key == "enter" {
			m.focus = fieldActivity
			return m, nil
		}
		m.email = editRune(m.email, key)
	case fieldActivity:
		switch key {
		case "left", "h":
			m.activity.prev()
		case "right", "l", " ":
			m.activity.next()
		case "enter":
			return m.submit()
		}
	}
	return m, nil
}

// submit validates the two required fields and issues the request. Nothing
// is sent while a field is empty.
func (m regForm) submit() (regForm, tea.Cmd) {
	email := strings.TrimSpace(m.email)
	activity := m.activity.value()
	if email == "" {
		m.hint = "email is required"
		m.focus = fieldEmail
		return m, nil
	}
	if activity == "" {
		m.hint = "choose an activity (←/→)"
		m.focus = fieldActivity
		return m, nil
	}

	m.pending++
	api := m.api
	kind := m.kind
	return m, func() tea.Msg {
		ctx, id := newFlow()
		var (
			message string
			err     error
		)
		if kind == signupForm {
			message, err = api.Signup(ctx, activity, email)
		} else {
			message, err = api.Cancel(ctx, activity, email)
		}
		if err != nil {
			logFlowError(kind.String(), id, err)
		}
		return submitResultMsg{form: kind, activity: activity, message: message, err: err}
	}
}

// reset empties both fields and returns focus to the email input.
func (m *regForm) reset() {
	m.email = ""
	m.activity.clear()
	m.focus = fieldEmail
}

// preselect focuses the form on activity, as when jumping from a card.
func (m *regForm) preselect(activity string) {
	m.activity.choose(activity)
	m.focus = fieldEmail
	m.hint = ""
}

func (m regForm) View(focused bool) string {
	var b strings.Builder

	title := sectionHeaderStyle.Render("── " + m.kind.title() + " ──")
	if focused {
		title = accentStyle.Render("── " + m.kind.title() + " ──")
	}
	b.WriteString(title + "\n\n")

	emailFocused := focused && m.focus == fieldEmail
	cursor := " "
	fieldStyle := metaStyle
	if emailFocused {
		cursor = inputPromptStyle.Render(">")
		fieldStyle = selectedStyle
	}
	emailValue := m.email
	switch {
	case emailFocused:
		emailValue = normalStyle.Render(m.email) + accentStyle.Render("█")
	case m.email == "":
		emailValue = inputPlaceholderStyle.Render("your-email@mergington.edu")
	}
	fmt.Fprintf(&b, "%s %s %s\n", cursor, fieldStyle.Render("email   "), emailValue)

	activityFocused := focused && m.focus == fieldActivity
	cursor = " "
	fieldStyle = metaStyle
	if activityFocused {
		cursor = inputPromptStyle.Render(">")
		fieldStyle = selectedStyle
	}
	fmt.Fprintf(&b, "%s %s %s\n", cursor, fieldStyle.Render("activity"), m.activity.View(activityFocused))

	b.WriteString("\n")
	switch {
	case m.hint != "":
		b.WriteString(hintStyle.Render(m.hint) + "\n")
	case m.pending > 0:
		b.WriteString(dimStyle.Render("sending...") + "\n")
	default:
		b.WriteString(dimStyle.Render("enter on activity to "+m.kind.action()) + "\n")
	}
	if v := m.flash.View(); v != "" {
		b.WriteString(v + "\n")
	}
	return b.String()
}
