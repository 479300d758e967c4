package settings

import (
	"maps"
	"slices"
	"strings"

	"github.com/go-echarts/go-echarts/v2/types"
)

// ThemeSelection carries the resolved palette for an appearance mode.
type ThemeSelection struct {
	Mode       Mode              `json:"mode"`
	Tokens     map[string]string `json:"tokens"`
	ChartTheme string            `json:"chart_theme"`
}

var sharedTokens = map[string]string{
	"primary":         "#4facfe",
	"primary-light":   "#00f2fe",
	"primary-dark":    "#11998e",
	"secondary":       "#667eea",
	"secondary-light": "#764ba2",
	"success":         "#11998e",
	"warning":         "#fa709a",
	"error":           "#ff6b6b",
	"text":            "#ffffff",
	"background":      "linear-gradient(135deg, #0f0f23 0%, #1a1a2e 50%, #16213e 100%)",
	"border-radius":   "16px",
	"font-family":     `"Inter", "Roboto", "Helvetica", "Arial", sans-serif`,
}

var modeTokens = map[Mode]map[string]string{
	ModeLight: {
		"paper":          "rgba(255, 255, 255, 0.08)",
		"text-secondary": "#e0e0e0",
		"border":         "rgba(255, 255, 255, 0.1)",
	},
	ModeDark: {
		"paper":          "rgba(0, 0, 0, 0.2)",
		"text-secondary": "#b0b0b0",
		"border":         "rgba(255, 255, 255, 0.05)",
	},
}

// ThemeFor resolves the palette for mode. Unknown modes fall back to light.
func ThemeFor(mode Mode) *ThemeSelection {
	if !mode.Valid() {
		mode = ModeLight
	}
	tokens := maps.Clone(sharedTokens)
	maps.Copy(tokens, modeTokens[mode])
	chart := types.ThemeWesteros
	if mode == ModeDark {
		chart = types.ThemePurplePassion
	}
	return &ThemeSelection{Mode: mode, Tokens: tokens, ChartTheme: chart}
}

// CSSVariables normalizes token keys into CSS variable names.
func (theme *ThemeSelection) CSSVariables() map[string]string {
	if theme == nil || len(theme.Tokens) == 0 {
		return nil
	}
	vars := make(map[string]string, len(theme.Tokens))
	for key, value := range theme.Tokens {
		name := normalizeCSSVariable(key)
		if name == "" {
			continue
		}
		vars[name] = value
	}
	return vars
}

// CSSVariablesInline renders the CSS variables as a style string, sorted by
// name.
func (theme *ThemeSelection) CSSVariablesInline() string {
	vars := theme.CSSVariables()
	if len(vars) == 0 {
		return ""
	}
	var builder strings.Builder
	for _, key := range slices.Sorted(maps.Keys(vars)) {
		value := vars[key]
		if value == "" {
			continue
		}
		builder.WriteString(key)
		builder.WriteString(": ")
		builder.WriteString(value)
		builder.WriteString("; ")
	}
	return strings.TrimSpace(builder.String())
}

func normalizeCSSVariable(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "--") {
		return name
	}
	return "--" + name
}
