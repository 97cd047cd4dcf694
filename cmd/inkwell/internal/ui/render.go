package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	primaryColor   = lipgloss.Color("#2563eb")
	secondaryColor = lipgloss.Color("#60a5fa")
	successColor   = lipgloss.Color("#10b981")
	errorColor     = lipgloss.Color("#ef4444")
	mutedColor     = lipgloss.Color("#94a3b8")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	normalStyle = lipgloss.NewStyle()

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
)

var fieldLabels = []string{"Title:", "Slug:", "Description:", "Authors (comma separated):"}

// View renders the current step
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.step {
	case StepSummary:
		body = m.renderSummary()
	case StepComplete:
		body = successStyle.Render("✅ Post scaffolded")
	default:
		body = m.renderForm()
	}

	if m.width == 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m Model) renderForm() string {
	title := titleStyle.Render("📝 New Post")
	subtitle := subtitleStyle.Render("Describe the article; the body starts as an outline")

	fields := make([]string, 0, len(m.inputs)+1)
	for i, input := range m.inputs {
		label := fieldLabels[i]
		if m.focus == i {
			label = selectedStyle.Render("▶ " + label)
		} else {
			label = normalStyle.Render("  " + label)
		}
		fields = append(fields, fmt.Sprintf("%s\n  %s", label, input.View()))
	}

	check := "☐"
	if m.featured {
		check = "☑"
	}
	featured := fmt.Sprintf("%s Feature on the home page", check)
	if m.focus == fieldFeatured {
		featured = selectedStyle.Render("▶ " + featured)
	} else {
		featured = normalStyle.Render("  " + featured)
	}
	fields = append(fields, featured)

	parts := []string{title, subtitle, boxStyle.Render(strings.Join(fields, "\n\n"))}
	if m.errorMessage != "" {
		parts = append(parts, errorStyle.Render("⚠️  "+m.errorMessage))
	}
	parts = append(parts, helpStyle.Render("Tab: Next field • Space: Toggle • Enter: Continue • Esc: Cancel"))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderSummary() string {
	d := m.Draft()

	authors := mutedStyle.Render("none")
	if len(d.Authors) > 0 {
		authors = strings.Join(d.Authors, ", ")
	}
	featured := "no"
	if d.Featured {
		featured = "yes"
	}

	rows := []string{
		fmt.Sprintf("Title:       %s", d.Title),
		fmt.Sprintf("URL:         /posts/%s", d.Slug),
		fmt.Sprintf("Description: %s", d.Description),
		fmt.Sprintf("Authors:     %s", authors),
		fmt.Sprintf("Featured:    %s", featured),
		mutedStyle.Render("The post is created as a draft."),
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("📋 Summary"),
		boxStyle.Render(strings.Join(rows, "\n")),
		helpStyle.Render("Enter: Create post • Esc: Back"),
	)
}
