package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

func printHelp(w io.Writer) {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4ade80")).
		Bold(true).
		Render("R O S T E R")

	tagline := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("Mergington High School extracurricular activities")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	commands := []struct{ cmd, desc string }{
		{"roster", "Browse activities, sign up and cancel (interactive TUI)"},
		{"roster demo", "Run the TUI against a built-in demo server"},
		{"roster serve", "Run the activities API (-addr host:port)"},
		{"roster export FILE", "Write the roster to an .xlsx workbook"},
		{"roster web", "Open the activities web page"},
		{"roster version", "Show version"},
		{"roster help", "You are here"},
	}

	fmt.Fprintf(w, "\n  %s\n\n  %s\n\n  Commands:\n", title, tagline)
	for _, c := range commands {
		fmt.Fprintf(w, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", c.cmd)), descStyle.Render(c.desc))
	}

	envStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	fmt.Fprintf(w, "\n  Environment (also read from .env):\n")
	for _, e := range []struct{ name, desc string }{
		{"ROSTER_API_URL", "API base URL (default " + defaultAPIURL + ")"},
		{"ROSTER_REFRESH_ON_SIGNUP", "reload the roster after a sign-up (default false)"},
		{"ROSTER_DEBUG_LOG", "write diagnostics to this file"},
		{"ROSTER_ADDR", "listen address for serve"},
	} {
		fmt.Fprintf(w, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-26s", e.name)), envStyle.Render(e.desc))
	}
	fmt.Fprintln(w)
}
