package helpers

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	// Styles.
	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Styler renders emphasized text, falling back to plain text when the
// destination is not a terminal.
type Styler struct {
	color bool
}

// NewStyler creates a Styler for w.
func NewStyler(w io.Writer) Styler {
	f, ok := w.(*os.File)
	return Styler{color: ok && term.IsTerminal(int(f.Fd())) && os.Getenv("NO_COLOR") == ""}
}

// Heading renders a section heading.
func (s Styler) Heading(text string) string {
	return s.render(headingStyle, text)
}

// Warn renders a warning line.
func (s Styler) Warn(text string) string {
	return s.render(warnStyle, text)
}

// Hint renders secondary text.
func (s Styler) Hint(text string) string {
	return s.render(hintStyle, text)
}

func (s Styler) render(style lipgloss.Style, text string) string {
	if !s.color {
		return text
	}
	return style.Render(text)
}
