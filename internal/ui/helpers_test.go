package ui

import "github.com/charmbracelet/x/ansi"

// stripANSI removes escape sequences so tests can assert on visible text
func stripANSI(s string) string {
	return ansi.Strip(s)
}
