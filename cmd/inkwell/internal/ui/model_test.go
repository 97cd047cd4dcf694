package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func typeText(m Model, s string) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(Model)
}

func press(m Model, t tea.KeyType) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: t})
	return next.(Model), cmd
}

func TestModel_Flow(t *testing.T) {
	m := NewModel("")
	m.now = func() time.Time { return time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC) }

	m = typeText(m, "Threat Modeling 101")
	if got := m.inputs[fieldSlug].Value(); got != "threat-modeling-101" {
		t.Errorf("derived slug = %q", got)
	}

	m, _ = press(m, tea.KeyTab) // slug
	m, _ = press(m, tea.KeyTab) // description
	m = typeText(m, "Thinking like an attacker.")
	m, _ = press(m, tea.KeyTab) // authors
	m = typeText(m, "Ada, Lin ,")
	m, _ = press(m, tea.KeyTab) // featured
	m, _ = press(m, tea.KeySpace)
	if !m.featured {
		t.Fatal("space should toggle featured")
	}

	m, _ = press(m, tea.KeyEnter)
	if m.Step() != StepSummary {
		t.Fatalf("step = %v, want summary", m.Step())
	}
	if !strings.Contains(m.View(), "/posts/threat-modeling-101") {
		t.Error("summary should show the post URL")
	}

	m, cmd := press(m, tea.KeyEnter)
	if m.Step() != StepComplete || cmd == nil {
		t.Fatalf("confirming should complete and quit, step = %v", m.Step())
	}

	d := m.Draft()
	if d.Title != "Threat Modeling 101" || d.Slug != "threat-modeling-101" || !d.Featured {
		t.Errorf("draft = %+v", d)
	}
	if len(d.Authors) != 2 || d.Authors[0] != "Ada" || d.Authors[1] != "Lin" {
		t.Errorf("authors = %q", d.Authors)
	}
	if d.Date.Year() != 2025 {
		t.Errorf("date = %v", d.Date)
	}
}

func TestModel_EditedSlugSticks(t *testing.T) {
	m := NewModel("Original")
	m, _ = press(m, tea.KeyTab)
	m, _ = press(m, tea.KeyBackspace)
	m = typeText(m, "x")
	m, _ = press(m, tea.KeyShiftTab)
	m = typeText(m, " Title")

	if got := m.inputs[fieldSlug].Value(); got != "originax" {
		t.Errorf("slug = %q, edits should survive title changes", got)
	}
}

func TestModel_Validation(t *testing.T) {
	tests := []struct {
		name  string
		title string
		slug  string
		want  string
	}{
		{"missing title", "", "", "title is required"},
		{"bad slug", "Fine", "Not OK", "lowercase"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel(tt.title)
			if tt.slug != "" {
				m.inputs[fieldSlug].SetValue(tt.slug)
			}
			m, _ = press(m, tea.KeyEnter)
			if m.Step() != StepForm {
				t.Fatal("invalid form must not advance")
			}
			if !strings.Contains(m.errorMessage, tt.want) {
				t.Errorf("error = %q", m.errorMessage)
			}
			if !strings.Contains(m.View(), tt.want) {
				t.Error("error should be rendered")
			}
		})
	}
}

func TestModel_BackAndQuit(t *testing.T) {
	m := NewModel("Post")
	m, _ = press(m, tea.KeyEnter)
	m, _ = press(m, tea.KeyEsc)
	if m.Step() != StepForm {
		t.Error("esc on the summary returns to the form")
	}

	m, cmd := press(m, tea.KeyCtrlC)
	if !m.quitting || cmd == nil {
		t.Error("ctrl+c should quit")
	}
	if m.View() != "" {
		t.Error("quitting clears the screen")
	}
}
