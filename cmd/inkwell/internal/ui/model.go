// Package ui is the terminal form behind `inkwell new`.
package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cyberinsights/inkwell/internal/content"
)

// Step represents the current screen of the form
type Step int

const (
	StepForm Step = iota
	StepSummary
	StepComplete
)

// Form fields in tab order. The featured checkbox follows the text inputs.
const (
	fieldTitle = iota
	fieldSlug
	fieldDescription
	fieldAuthors
	fieldFeatured
)

// KeyMap defines the form's keyboard shortcuts. Letter keys are left to
// the text inputs.
type KeyMap struct {
	Next  key.Binding
	Prev  key.Binding
	Enter key.Binding
	Space key.Binding
	Back  key.Binding
	Quit  key.Binding
}

var DefaultKeyMap = KeyMap{
	Next: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab", "previous field"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Space: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "toggle"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// Model is the new-post form state
type Model struct {
	width  int
	height int

	step   Step
	inputs []textinput.Model
	focus  int

	featured   bool
	slugEdited bool
	now        func() time.Time

	errorMessage string
	quitting     bool
}

// NewModel creates the form, optionally prefilled with a title
func NewModel(title string) Model {
	titleInput := textinput.New()
	titleInput.Placeholder = "Fixing Web App Vulnerabilities"
	titleInput.CharLimit = 120
	titleInput.Width = 50
	titleInput.Focus()

	slugInput := textinput.New()
	slugInput.Placeholder = "fixing-web-app-vulnerabilities"
	slugInput.CharLimit = 80
	slugInput.Width = 50

	descInput := textinput.New()
	descInput.Placeholder = "One sentence for the home page card"
	descInput.CharLimit = 200
	descInput.Width = 50

	authorsInput := textinput.New()
	authorsInput.Placeholder = "Ada Lovelace, Alan Turing"
	authorsInput.CharLimit = 200
	authorsInput.Width = 50

	m := Model{
		step:   StepForm,
		inputs: []textinput.Model{titleInput, slugInput, descInput, authorsInput},
		now:    time.Now,
	}
	if title != "" {
		m.inputs[fieldTitle].SetValue(title)
		m.inputs[fieldSlug].SetValue(content.Slugify(title))
	}
	return m
}

// Init starts the cursor blinking
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, DefaultKeyMap.Quit) {
			m.quitting = true
			return m, tea.Quit
		}

		switch m.step {
		case StepForm:
			return m.handleFormKeys(msg)

		case StepSummary:
			switch {
			case key.Matches(msg, DefaultKeyMap.Enter):
				m.step = StepComplete
				return m, tea.Quit
			case key.Matches(msg, DefaultKeyMap.Back):
				m.step = StepForm
			}
			return m, nil
		}
	}

	return m, nil
}

func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, DefaultKeyMap.Next):
		m.setFocus((m.focus + 1) % (fieldFeatured + 1))
		return m, nil

	case key.Matches(msg, DefaultKeyMap.Prev):
		m.setFocus((m.focus + fieldFeatured) % (fieldFeatured + 1))
		return m, nil

	case key.Matches(msg, DefaultKeyMap.Enter):
		if err := m.validate(); err != "" {
			m.errorMessage = err
			return m, nil
		}
		m.errorMessage = ""
		m.step = StepSummary
		return m, nil

	case key.Matches(msg, DefaultKeyMap.Back):
		m.quitting = true
		return m, tea.Quit

	case m.focus == fieldFeatured:
		if key.Matches(msg, DefaultKeyMap.Space) {
			m.featured = !m.featured
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	switch m.focus {
	case fieldTitle:
		if !m.slugEdited {
			m.inputs[fieldSlug].SetValue(content.Slugify(m.inputs[fieldTitle].Value()))
		}
	case fieldSlug:
		m.slugEdited = true
	}
	return m, cmd
}

func (m *Model) setFocus(field int) {
	if m.focus < len(m.inputs) {
		m.inputs[m.focus].Blur()
	}
	m.focus = field
	if field < len(m.inputs) {
		m.inputs[field].Focus()
	}
}

func (m Model) validate() string {
	if strings.TrimSpace(m.inputs[fieldTitle].Value()) == "" {
		return "A title is required."
	}
	if !content.ValidSlug(m.inputs[fieldSlug].Value()) {
		return "Slugs use lowercase letters, digits and single hyphens."
	}
	return ""
}

// Step returns the current screen
func (m Model) Step() Step {
	return m.step
}

// Draft returns the post described by the form
func (m Model) Draft() content.Draft {
	var authors []string
	for _, a := range strings.Split(m.inputs[fieldAuthors].Value(), ",") {
		if a = strings.TrimSpace(a); a != "" {
			authors = append(authors, a)
		}
	}
	return content.Draft{
		Title:       strings.TrimSpace(m.inputs[fieldTitle].Value()),
		Slug:        m.inputs[fieldSlug].Value(),
		Description: strings.TrimSpace(m.inputs[fieldDescription].Value()),
		Authors:     authors,
		Featured:    m.featured,
		Date:        m.now(),
	}
}
