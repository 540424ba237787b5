package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

func printHelp(w io.Writer) {
	printLogo(w)

	subtitle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("Каталог недвижимости в терминале.")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	commands := []struct{ cmd, desc string }{
		{"estate", "Open the listing browser (interactive TUI)"},
		{"estate login", "Sign in with email and password"},
		{"estate register", "Create an account"},
		{"estate logout", "Clear your session"},
		{"estate whoami", "Show the signed-in user id"},
		{"estate --version", "Show version"},
		{"estate help", "You are here"},
	}
	flags := []struct{ flag, desc string }{
		{"-c, -config FILE", "JSON config file"},
		{"-api URL", "API base URL (ESTATE_API_URL)"},
		{"-timeout D", "request timeout, e.g. 30s"},
		{"-page-size N", "listings per page"},
		{"-session KIND", "file, sqlite or memory"},
		{"-session-path P", "session file location"},
		{"-log-file P", "log file location"},
		{"-log-level L", "debug, info, warn or error"},
	}

	fmt.Fprintf(w, "\n  %s\n\n  Commands:\n", subtitle)
	for _, c := range commands {
		fmt.Fprintf(w, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", c.cmd)), descStyle.Render(c.desc))
	}
	fmt.Fprint(w, "\n  Flags:\n")
	for _, f := range flags {
		fmt.Fprintf(w, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", f.flag)), descStyle.Render(f.desc))
	}
	fmt.Fprintln(w)
}
