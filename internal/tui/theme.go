package tui

import (
	"os"
	"strconv"
	"strings"

	"todo-cli/internal/config"
	"todo-cli/internal/row"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// The TUI must remain readable on both light and dark terminal backgrounds,
// so chrome colors are adaptive and faint styling is only used on dark ones.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted   = ac("240", "243")
	colorHeader  = ac("235", "252")
	colorError   = ac("160", "203")
	colorInputBg = ac("254", "234")
)

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleHeader() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorError)
}

func rowTheme(glyphs string) row.Theme {
	t := row.DefaultTheme()
	if glyphs == config.GlyphsASCII {
		t = t.WithGlyphs(row.ASCIIGlyphs)
	}
	return t
}

// profileFor picks the color profile for the TUI from the environment and the
// profile termenv detected. NO_COLOR wins; COLORTERM and TERM may only raise
// the detected profile, never lower it. CLICOLOR is not consulted.
func profileFor(getenv func(string) string, detected termenv.Profile) termenv.Profile {
	env := func(k string) string { return strings.ToLower(strings.TrimSpace(getenv(k))) }
	if env("NO_COLOR") != "" {
		return termenv.Ascii
	}
	want := detected
	switch ct := env("COLORTERM"); {
	case ct == "truecolor" || ct == "24bit":
		want = termenv.TrueColor
	case strings.HasSuffix(env("TERM"), "256color"):
		want = termenv.ANSI256
	}
	// termenv orders profiles from richest (TrueColor) to none (Ascii).
	if detected == termenv.Ascii || want > detected {
		return detected
	}
	return want
}

// darkBackgroundFor reports whether the terminal background is dark, and
// whether the environment says anything about it at all.
func darkBackgroundFor(getenv func(string) string) (dark, known bool) {
	switch strings.ToLower(strings.TrimSpace(getenv("TODO_TUI_THEME"))) {
	case "light":
		return false, true
	case "dark":
		return true, true
	}
	// COLORFGBG is "fg;bg" or "fg;default;bg"; bg 0-6 are dark ANSI colors.
	fgbg := getenv("COLORFGBG")
	if fgbg == "" {
		return false, false
	}
	bg, err := strconv.Atoi(strings.TrimSpace(fgbg[strings.LastIndex(fgbg, ";")+1:]))
	if err != nil {
		return false, false
	}
	return bg < 7, true
}

func applyTerminalPreferences() {
	lipgloss.SetColorProfile(profileFor(os.Getenv, termenv.ColorProfile()))
	if dark, ok := darkBackgroundFor(os.Getenv); ok {
		lipgloss.SetHasDarkBackground(dark)
	}
}
