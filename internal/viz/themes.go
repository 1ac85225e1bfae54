package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the colour scheme of the explorer plot.
type Theme struct {
	Name       string
	Curve      lipgloss.Color
	Derivative lipgloss.Color
	Iterate    lipgloss.Color
	Root       lipgloss.Color
	Axis       lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:       "cyberpunk",
		Curve:      lipgloss.Color("#00ffff"),
		Derivative: lipgloss.Color("#ff00ff"),
		Iterate:    lipgloss.Color("#ffff00"),
		Root:       lipgloss.Color("#00ff00"),
		Axis:       lipgloss.Color("#444466"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666666"),
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Curve:      lipgloss.Color("#00ff00"),
		Derivative: lipgloss.Color("#00aa00"),
		Iterate:    lipgloss.Color("#88ff88"),
		Root:       lipgloss.Color("#ffff00"),
		Axis:       lipgloss.Color("#005500"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Curve:      lipgloss.Color("#00a8cc"),
		Derivative: lipgloss.Color("#4488aa"),
		Iterate:    lipgloss.Color("#ffd700"),
		Root:       lipgloss.Color("#00ff88"),
		Axis:       lipgloss.Color("#224466"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
	}

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeOcean,
	}
)

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
