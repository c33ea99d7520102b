package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// padRows lays out the standard 12-key pad with its E.161 letter groups.
var padRows = [][2][3]string{
	{{"1", "2", "3"}, {"", "abc", "def"}},
	{{"4", "5", "6"}, {"ghi", "jkl", "mno"}},
	{{"7", "8", "9"}, {"prs", "tuv", "wxy"}},
	{{"*", "0", "#"}, {"", "", ""}},
}

const panelWidth = 44
const panelContentWidth = panelWidth - 6 // border + padding chrome

// View renders the dialpad.
func (m Model) View() string {
	t := m.Theme

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Primary).MarginBottom(1)
	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Secondary).
		Padding(1, 2)
	labelStyle := lipgloss.NewStyle().Foreground(t.Secondary).Bold(true)
	numberStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	letterStyle := lipgloss.NewStyle().Foreground(t.Dimmed)
	helpStyle := lipgloss.NewStyle().Foreground(t.Dimmed)
	savedStyle := lipgloss.NewStyle().Foreground(t.Success)

	var b strings.Builder

	titleText := "  DIALTONE  "
	barTotal := panelContentWidth - len(titleText)
	barLeft := barTotal / 2
	barRight := barTotal - barLeft
	b.WriteString(titleStyle.Render(strings.Repeat("▓", barLeft) + titleText + strings.Repeat("▓", barRight)))
	b.WriteString("\n")

	// Number line
	b.WriteString(labelStyle.Render("Number: "))
	if len(m.Number) > 0 {
		b.WriteString(numberStyle.Render(string(m.Number)))
	} else {
		b.WriteString(helpStyle.Render("(type to dial)"))
	}
	b.WriteString("\n\n")

	// Keypad
	for _, row := range padRows {
		for col, key := range row[0] {
			if col > 0 {
				b.WriteString("   ")
			}
			b.WriteString(keyStyle.Render(fmt.Sprintf("[ %s ]", key)))
		}
		b.WriteString("\n")
		for col, letters := range row[1] {
			if col > 0 {
				b.WriteString("   ")
			}
			b.WriteString(letterStyle.Render(centerPad(letters, 7)))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Status
	b.WriteString(labelStyle.Render("Status:  "))
	b.WriteString(m.renderBadge())
	b.WriteString("\n")

	if m.LastSaved != "" {
		b.WriteString(savedStyle.Render("Saved: " + m.LastSaved))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter play · ctrl+s save · tab theme · esc quit"))

	return borderStyle.Width(panelWidth - 2).Render(b.String())
}

func (m Model) renderBadge() string {
	t := m.Theme
	idleBadge := lipgloss.NewStyle().Foreground(t.Success).Bold(true)
	playingBadge := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	errorBadge := lipgloss.NewStyle().Foreground(t.Error).Bold(true)

	switch m.State {
	case StatePlaying:
		return playingBadge.Render("● Playing...")
	case StateError:
		errText := m.LastError
		if len(errText) > 30 {
			errText = errText[:30] + "..."
		}
		return errorBadge.Render(fmt.Sprintf("● Error: %s", errText))
	default:
		return idleBadge.Render("● Idle")
	}
}

func centerPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}
