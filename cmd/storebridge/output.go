package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(24)
	valueStyle   = lipgloss.NewStyle().Bold(true)
	variantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Width(10)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func title(w io.Writer, text string) {
	fmt.Fprintln(w, titleStyle.Render(text))
}

// field prints an aligned key/value line.
func field(w io.Writer, key, value string) {
	fmt.Fprintf(w, "  %s%s\n", keyStyle.Render(key), valueStyle.Render(value))
}

func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", okStyle.Render("✓"), fmt.Sprintf(format, args...))
}

func failure(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", failStyle.Render("✗"), fmt.Sprintf(format, args...))
}
