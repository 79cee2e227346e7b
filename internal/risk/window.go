package risk

import (
	"strings"
	"time"

	"github.com/alexanderramin/siterisk/internal/domain"
)

const (
	DefaultStartHour = 8
	DefaultEndHour   = 12

	// DefaultReason is used when no qualitative condition matches.
	DefaultReason = "standard safe window"
	// AllHighReason accompanies the default window when every hour is high risk.
	AllHighReason = "no low or medium risk hours today, standard safe window"

	reasonSeparator = ", "
	largeCrew       = 20
)

// Window is a recommended contiguous range of working hours.
type Window struct {
	StartHour int    `json:"start_hour"`
	EndHour   int    `json:"end_hour"`
	Reason    string `json:"reason"`
}

// Recommendation is a full hourly assessment for one task snapshot.
type Recommendation struct {
	Curve  []domain.HourlyRiskPoint
	Window Window
}

// Recommend computes the curve and the window for a task.
func Recommend(task domain.ConstructionTask, base int, month time.Month) Recommendation {
	curve := CalculateHourly(task, base, month)
	return Recommendation{Curve: curve, Window: RecommendWindow(task, curve)}
}

// RecommendWindow anchors on the lowest-scoring low-risk hour, falling back
// to the lowest medium-risk hour. An all-high curve yields the default
// window. It never fails.
func RecommendWindow(task domain.ConstructionTask, curve []domain.HourlyRiskPoint) Window {
	anchor, ok := lowestAtLevel(curve, domain.RiskLow)
	if !ok {
		anchor, ok = lowestAtLevel(curve, domain.RiskMedium)
	}
	if !ok {
		return Window{StartHour: DefaultStartHour, EndHour: DefaultEndHour, Reason: AllHighReason}
	}

	return Window{
		StartHour: max(FirstHour, anchor.Hour-1),
		EndHour:   min(LastHour, anchor.Hour+2),
		Reason:    reasonFor(anchor.Hour, task),
	}
}

func lowestAtLevel(curve []domain.HourlyRiskPoint, level domain.RiskLevel) (domain.HourlyRiskPoint, bool) {
	var filtered []domain.HourlyRiskPoint
	for _, p := range curve {
		if p.Level == level {
			filtered = append(filtered, p)
		}
	}
	return minScore(filtered)
}

func reasonFor(anchor int, task domain.ConstructionTask) string {
	var reasons []string
	if anchor <= 10 {
		reasons = append(reasons, "low fatigue in morning")
	}
	if anchor >= 16 {
		reasons = append(reasons, "high fatigue late afternoon, avoid")
	}
	if IsHeightWork(task.Process) {
		reasons = append(reasons, "height work safer in morning")
	}
	if task.Workers > largeCrew {
		reasons = append(reasons, "large crew raises afternoon risk")
	}
	if len(reasons) == 0 {
		return DefaultReason
	}
	return strings.Join(reasons, reasonSeparator)
}
