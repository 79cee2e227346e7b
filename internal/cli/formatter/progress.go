package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/siterisk/internal/domain"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░] 45%.
// Task progress is neutral, so the bar is always blue.
func RenderProgress(pct int, width int) string {
	filled, empty := split(float64(pct)/100, width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, empty)
	return fmt.Sprintf("[%s] %3d%%", StyleBlue.Render(bar), clampPct(pct))
}

// RenderScoreBar renders a risk score as a bar colored by its level,
// followed by the score.
func RenderScoreBar(score int, width int) string {
	filled, empty := split(float64(score)/100, width)
	style := RiskColor(domain.RiskLevelFromScore(score))
	bar := style.Render(strings.Repeat(filledBlock, filled)) + StyleDim.Render(strings.Repeat(emptyBlock, empty))
	return fmt.Sprintf("%s %3d", bar, score)
}

func split(frac float64, width int) (filled, empty int) {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	if width < 2 {
		width = 2
	}
	filled = int(frac*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	return filled, width - filled
}

func clampPct(p int) int {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}
