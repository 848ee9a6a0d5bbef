package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// renderHeader returns a consistently styled header with an optional muted subtitle.
func renderHeader(title, subtitle string, width int) string {
	title = truncateEnd(title, width-2)
	subtitle = truncateMiddle(subtitle, width-2)
	rows := []string{HeaderStyle.Render(title)}
	if subtitle != "" {
		rows = append(rows, renderMuted(subtitle))
	}
	return lipgloss.JoinVertical(lipgloss.Top, rows...)
}

// renderInputFrame draws a rounded bordered container around a rendered input view.
func renderInputFrame(inputView string, focused, invalid bool, contentWidth int) string {
	borderColor := MutedColor
	switch {
	case invalid:
		borderColor = ErrorColor
	case focused:
		borderColor = AccentColor
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(contentWidth + 4).
		Render(inputView)
}

// renderField stacks a label, a framed input and an optional inline error.
func renderField(label, inputView string, focused bool, errText string, contentWidth int) string {
	rows := []string{
		FieldLabelStyle.Render(label),
		renderInputFrame(inputView, focused, errText != "", contentWidth),
	}
	if errText != "" {
		rows = append(rows, FieldErrorStyle.Render("✗ "+errText))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderCentered centers the provided content within the given width/height box.
func renderCentered(width, height int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func renderMuted(text string) string {
	return lipgloss.NewStyle().Foreground(MutedColor).Render(text)
}

func renderCheckbox(label string, checked bool) string {
	box := "[ ]"
	if checked {
		box = "[x]"
	}
	return lipgloss.NewStyle().Foreground(TextColor).Render(box + " " + label)
}
