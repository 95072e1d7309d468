package tui

import "fmt"

// selector is a single-choice list of activity names. idx -1 means nothing
// is chosen.
type selector struct {
	options []string
	idx     int
}

func newSelector() selector {
	return selector{idx: -1}
}

// setOptions replaces every option. The current choice survives when its
// name is still offered.
func (s *selector) setOptions(options []string) {
	current := s.value()
	s.options = append([]string(nil), options...)
	s.idx = -1
	if current != "" {
		s.choose(current)
	}
}

func (s selector) value() string {
	if s.idx < 0 || s.idx >= len(s.options) {
		return ""
	}
	return s.options[s.idx]
}

// choose selects name and reports whether it was offered.
func (s *selector) choose(name string) bool {
	for i, o := range s.options {
		if o == name {
			s.idx = i
			return true
		}
	}
	return false
}

func (s *selector) next() {
	if len(s.options) == 0 {
		return
	}
	s.idx = (s.idx + 1) % len(s.options)
}

func (s *selector) prev() {
	if len(s.options) == 0 {
		return
	}
	if s.idx <= 0 {
		s.idx = len(s.options) - 1
		return
	}
	s.idx--
}

func (s *selector) clear() {
	s.idx = -1
}

func (s selector) View(focused bool) string {
	if len(s.options) == 0 {
		return inputPlaceholderStyle.Render("no activities loaded")
	}
	label := s.value()
	style := normalStyle
	if label == "" {
		label = "-- select an activity --"
		style = inputPlaceholderStyle
	}
	if !focused {
		return style.Render(label)
	}
	pos := fmt.Sprintf("(%d options)", len(s.options))
	if s.idx >= 0 {
		pos = fmt.Sprintf("(%d/%d)", s.idx+1, len(s.options))
	}
	return accentStyle.Render("◂ ") + selectedStyle.Render(label) + accentStyle.Render(" ▸ ") + metaStyle.Render(pos)
}
