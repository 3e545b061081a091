package cli

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/alexanderramin/examplan/internal/cli/formatter"
	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// huhTheme returns a huh theme built from the Gruvbox palette.
func huhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// confidenceForm asks how well a completed day went. result starts at medium.
func confidenceForm(date civil.Date, result *domain.Confidence) *huh.Form {
	*result = domain.ConfidenceMedium
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[domain.Confidence]().
				Title(fmt.Sprintf("How confident are you about %s?", date)).
				Options(
					huh.NewOption("Low: needs another pass", domain.ConfidenceLow),
					huh.NewOption("Medium: mostly there", domain.ConfidenceMedium),
					huh.NewOption("High: solid", domain.ConfidenceHigh),
				).
				Value(result),
		),
	).WithTheme(huhTheme()).WithShowHelp(false)
}

func pickConfidence(date civil.Date) (domain.Confidence, error) {
	var c domain.Confidence
	if err := confidenceForm(date, &c).Run(); err != nil {
		return "", err
	}
	return c, nil
}
