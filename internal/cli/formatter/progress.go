package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a bar like [████░░░░]  45% for a completion ratio
// in [0,1]. Out-of-range ratios are clamped.
func RenderProgress(ratio float64, width int) string {
	ratio = min(max(ratio, 0), 1)
	width = max(width, 2)

	filled := min(int(ratio*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case ratio < 0.33:
		style = StyleRed
	case ratio < 0.66:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), ratio*100)
}

// RenderCount renders "done/total" with a short bar for per-category rows.
func RenderCount(done, total, width int) string {
	if total <= 0 {
		return Dim("no days")
	}
	return fmt.Sprintf("%s %d/%d", RenderProgress(float64(done)/float64(total), width), done, total)
}
