package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorAqua   = lipgloss.Color("#689d6a")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleAqua   = lipgloss.NewStyle().Foreground(ColorAqua)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusStyle returns the style used for a derived day status.
func StatusStyle(s domain.Status) lipgloss.Style {
	switch s {
	case domain.StatusDone:
		return StyleGreen
	case domain.StatusLate:
		return StyleRed
	case domain.StatusToday:
		return StyleYellow
	default:
		return StyleDim
	}
}

// StatusIcon is the single-glyph marker used in compact layouts.
func StatusIcon(s domain.Status) string {
	switch s {
	case domain.StatusDone:
		return "✔"
	case domain.StatusLate:
		return "!"
	case domain.StatusToday:
		return "●"
	default:
		return "○"
	}
}

// StatusBadge renders a colored status marker such as "✔ DONE".
func StatusBadge(s domain.Status) string {
	return StatusStyle(s).Render(StatusIcon(s) + " " + strings.ToUpper(string(s)))
}

// TypeStyle returns the accent color of a day type.
func TypeStyle(t domain.DayType) lipgloss.Style {
	switch t {
	case domain.DayRevision:
		return StyleBlue
	case domain.DayMock:
		return StylePurple
	case domain.DayPractice:
		return StyleAqua
	case domain.DayHeavy:
		return StyleHeader
	default:
		return StyleFg
	}
}

// TypeBadge renders a day type as a short capitalized label.
func TypeBadge(t domain.DayType) string {
	if t == "" {
		return StyleDim.Render("--")
	}
	label := strings.ToUpper(string(t[:1])) + string(t[1:])
	return TypeStyle(t).Render(label)
}

// ConfidenceBadge renders a confidence level, or a dim placeholder when the
// day has no record.
func ConfidenceBadge(c domain.Confidence) string {
	switch c {
	case domain.ConfidenceHigh:
		return StyleGreen.Render("high")
	case domain.ConfidenceMedium:
		return StyleYellow.Render("medium")
	case domain.ConfidenceLow:
		return StyleRed.Render("low")
	default:
		return StyleDim.Render("--")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
