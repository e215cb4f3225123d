package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the colour scheme for styled output and heat maps. Field
// values are shaded from Negative through Neutral to Positive.
type Theme struct {
	Name     string
	Title    lipgloss.Color
	Accent   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Negative lipgloss.Color
	Neutral  lipgloss.Color
	Positive lipgloss.Color
}

var (
	ThemeThermal = Theme{
		Name:     "thermal",
		Title:    lipgloss.Color("#00ffff"),
		Accent:   lipgloss.Color("#ffcc00"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#666688"),
		Negative: lipgloss.Color("#2255ff"),
		Neutral:  lipgloss.Color("#101018"),
		Positive: lipgloss.Color("#ff3322"),
	}

	ThemeRetroGreen = Theme{
		Name:     "retro",
		Title:    lipgloss.Color("#00ff00"),
		Accent:   lipgloss.Color("#88ff88"),
		Text:     lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#005500"),
		Negative: lipgloss.Color("#004400"),
		Neutral:  lipgloss.Color("#001100"),
		Positive: lipgloss.Color("#88ff88"),
	}

	ThemeOcean = Theme{
		Name:     "ocean",
		Title:    lipgloss.Color("#00a8cc"),
		Accent:   lipgloss.Color("#ffd700"),
		Text:     lipgloss.Color("#e0f0ff"),
		Muted:    lipgloss.Color("#4488aa"),
		Negative: lipgloss.Color("#003366"),
		Neutral:  lipgloss.Color("#001a33"),
		Positive: lipgloss.Color("#66ddff"),
	}

	ThemeSunset = Theme{
		Name:     "sunset",
		Title:    lipgloss.Color("#ff6b6b"),
		Accent:   lipgloss.Color("#ff9ff3"),
		Text:     lipgloss.Color("#fff5f5"),
		Muted:    lipgloss.Color("#8b6b8c"),
		Negative: lipgloss.Color("#5f27cd"),
		Neutral:  lipgloss.Color("#2d1b2e"),
		Positive: lipgloss.Color("#feca57"),
	}

	CurrentTheme = ThemeThermal

	Themes = []Theme{
		ThemeThermal,
		ThemeRetroGreen,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to thermal.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeThermal
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = ThemeThermal
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
