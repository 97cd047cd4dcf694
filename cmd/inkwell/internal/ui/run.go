package ui

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cyberinsights/inkwell/internal/content"
)

// ErrCancelled is returned when the form is closed without confirming
var ErrCancelled = errors.New("post creation cancelled")

// RunNewPostTUI runs the form and returns the confirmed draft
func RunNewPostTUI(title string) (content.Draft, error) {
	if !isatty() {
		return content.Draft{}, fmt.Errorf("not running in a terminal, use --no-interactive flag")
	}

	p := tea.NewProgram(NewModel(title), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return content.Draft{}, fmt.Errorf("TUI error: %w", err)
	}

	m := finalModel.(Model)
	if m.step != StepComplete {
		return content.Draft{}, ErrCancelled
	}
	return m.Draft(), nil
}

// isatty checks if we're running in a terminal
func isatty() bool {
	fileInfo, _ := os.Stdout.Stat()
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
