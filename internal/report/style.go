package report

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	commandStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	noteStyle    = lipgloss.NewStyle().Bold(true)
	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
)

func init() {
	// Styling is decorative only. Strip it entirely when stdout is not a
	// terminal so piped output stays machine-readable.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		plain := lipgloss.NewStyle()
		commandStyle = plain
		noteStyle = plain
		passStyle = plain
		failStyle = plain
	}
}

// bullet returns the list marker used for itemized file lists.
func bullet() string { return "•" }
