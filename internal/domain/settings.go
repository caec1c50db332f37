package domain

import "fmt"

// Theme is the light/dark appearance.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme validates a theme name.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(s); t {
	case ThemeLight, ThemeDark:
		return t, nil
	}
	return "", fmt.Errorf("unknown theme: %q", s)
}

// PrimaryColors lists the accent colors with their display names.
var PrimaryColors = []struct {
	ID   string
	Name string
}{
	{"pink", "粉色"},
	{"sky", "天蓝"},
	{"cream", "奶油"},
	{"green", "薄荷"},
}

// IsPrimaryColor reports whether id is a known accent color.
func IsPrimaryColor(id string) bool {
	for _, c := range PrimaryColors {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Settings are the persisted user preferences.
type Settings struct {
	Theme        Theme  `json:"theme"`
	PrimaryColor string `json:"primaryColor"`
	Locale       string `json:"locale"`
}

// DefaultSettings mirrors a fresh install.
func DefaultSettings() Settings {
	return Settings{Theme: ThemeLight, PrimaryColor: "pink", Locale: "zh"}
}
