package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the dialpad.
type Theme struct {
	Name      string
	Primary   lipgloss.Color // title, pressed key
	Secondary lipgloss.Color // labels, border
	Accent    lipgloss.Color // dialed number
	Error     lipgloss.Color // error badge
	Success   lipgloss.Color // idle badge, saved path
	Text      lipgloss.Color // body text
	Dimmed    lipgloss.Color // help line, pad letters
}

var themes = map[string]Theme{
	"synthwave": {
		Name:      "Synthwave",
		Primary:   lipgloss.Color("#FF6AC1"),
		Secondary: lipgloss.Color("#00E5FF"),
		Accent:    lipgloss.Color("#B388FF"),
		Error:     lipgloss.Color("#FF8A80"),
		Success:   lipgloss.Color("#64FFDA"),
		Text:      lipgloss.Color("#E0E0E0"),
		Dimmed:    lipgloss.Color("#666666"),
	},
	"gruvbox": {
		Name:      "Gruvbox",
		Primary:   lipgloss.Color("#FB4934"),
		Secondary: lipgloss.Color("#83A598"),
		Accent:    lipgloss.Color("#D3869B"),
		Error:     lipgloss.Color("#FB4934"),
		Success:   lipgloss.Color("#B8BB26"),
		Text:      lipgloss.Color("#EBDBB2"),
		Dimmed:    lipgloss.Color("#928374"),
	},
	"monochrome": {
		Name:      "Monochrome",
		Primary:   lipgloss.Color("#FFFFFF"),
		Secondary: lipgloss.Color("#CCCCCC"),
		Accent:    lipgloss.Color("#AAAAAA"),
		Error:     lipgloss.Color("#FF0000"),
		Success:   lipgloss.Color("#FFFFFF"),
		Text:      lipgloss.Color("#FFFFFF"),
		Dimmed:    lipgloss.Color("#888888"),
	},
}

// themeOrder defines the fixed cycle order for theme toggling.
var themeOrder = []string{"synthwave", "gruvbox", "monochrome"}

// LoadTheme returns the theme with the given name (case-insensitive).
// Falls back to synthwave if the name is not recognized.
func LoadTheme(name string) Theme {
	if t, ok := themes[strings.ToLower(name)]; ok {
		return t
	}
	return themes["synthwave"]
}

// NextTheme returns the theme after the given one in the cycle order.
func NextTheme(current string) Theme {
	current = strings.ToLower(current)
	for i, name := range themeOrder {
		if name == current {
			next := themeOrder[(i+1)%len(themeOrder)]
			return themes[next]
		}
	}
	return themes[themeOrder[0]]
}
