package tui

// flashKind is the state of a message region, rendered as "success" or
// "error".
type flashKind int

const (
	flashSuccess flashKind = iota
	flashError
)

func (k flashKind) String() string {
	if k == flashSuccess {
		return "success"
	}
	return "error"
}

// flash is a message region that hides itself messageTTL after each show.
// gen increments on every show, so a hide timer armed for an older message
// never hides a newer one early.
type flash struct {
	text    string
	kind    flashKind
	visible bool
	gen     int
}

// flashExpiredMsg hides the region of form if gen is still current.
type flashExpiredMsg struct {
	form formKind
	gen  int
}

func (f *flash) show(text string, kind flashKind) int {
	f.gen++
	f.text = text
	f.kind = kind
	f.visible = true
	return f.gen
}

func (f *flash) expire(gen int) {
	if gen == f.gen {
		f.visible = false
	}
}

func (f flash) View() string {
	if !f.visible {
		return ""
	}
	if f.kind == flashSuccess {
		return successStyle.Render("✓ " + f.text)
	}
	return errorStyle.Render("✗ " + f.text)
}
