// Package risk expands a base risk score into an hourly curve for the working
// day and picks a recommended work window from it. Everything here is pure.
package risk

import (
	"strings"
	"time"

	"github.com/alexanderramin/siterisk/internal/domain"
)

const (
	FirstHour = 6
	LastHour  = 18

	minHourlyScore = 1
	maxHourlyScore = 100
)

// HoursPerDay is the number of points in a curve.
const HoursPerDay = LastHour - FirstHour + 1

// CurveInput is the complete input of the hourly calculator. Two equal
// inputs always produce the same curve.
type CurveInput struct {
	Process      string
	Workers      int
	ProgressRate int
	BaseScore    int
	Month        time.Month
}

// InputFor collects the calculator input from a task snapshot.
func InputFor(task domain.ConstructionTask, base int, month time.Month) CurveInput {
	return CurveInput{
		Process:      task.Process,
		Workers:      task.Workers,
		ProgressRate: task.ProgressRate,
		BaseScore:    base,
		Month:        month,
	}
}

// MonthOf returns the calendar month of now in its own location.
func MonthOf(now time.Time) time.Month {
	return now.Month()
}

// CalculateHourly returns 13 points for hours 6..18 ascending. Each point is
// the base score plus independent additive offsets, clamped to [1,100].
func CalculateHourly(task domain.ConstructionTask, base int, month time.Month) []domain.HourlyRiskPoint {
	return Curve(InputFor(task, base, month))
}

// Curve computes the hourly curve for a prepared input.
func Curve(in CurveInput) []domain.HourlyRiskPoint {
	points := make([]domain.HourlyRiskPoint, 0, HoursPerDay)
	for h := FirstHour; h <= LastHour; h++ {
		points = append(points, domain.NewHourlyRiskPoint(h, scoreForHour(h, in)))
	}
	return points
}

func scoreForHour(hour int, in CurveInput) int {
	adjusted := in.BaseScore
	adjusted += timeOfDayAdjustment(hour)
	adjusted += processTimeAdjustment(hour, in.Process)
	adjusted += seasonalAdjustment(hour, in.Month)
	adjusted += crewSizeTimeAdjustment(hour, in.Workers)
	adjusted += progressTimeAdjustment(hour, in.ProgressRate)
	return clamp(adjusted, minHourlyScore, maxHourlyScore)
}

func timeOfDayAdjustment(hour int) int {
	switch {
	case hour >= 6 && hour <= 7:
		return -5 // early morning
	case hour >= 8 && hour <= 10:
		return 0
	case hour >= 11 && hour <= 12:
		return 5 // pre-lunch fatigue
	case hour >= 13 && hour <= 14:
		return 3 // post-lunch dip
	case hour >= 15 && hour <= 16:
		return 8 // fatigue peak
	case hour >= 17 && hour <= 18:
		return 2 // wrap-up
	default:
		return 0
	}
}

// processRule is a two-tier afternoon bonus for one process family.
type processRule struct {
	keywords []string
	highFrom int
	high     int
	lowFrom  int
	low      int
}

// processRules is checked in order and only the first matching block applies.
var processRules = []processRule{
	{keywords: []string{"고소", "height"}, highFrom: 14, high: 10, lowFrom: 12, low: 5},
	{keywords: []string{"용접", "welding"}, highFrom: 15, high: 8, lowFrom: 13, low: 4},
	{keywords: []string{"굴착", "excavation"}, highFrom: 16, high: 6, lowFrom: 14, low: 3},
}

func processTimeAdjustment(hour int, process string) int {
	rule, ok := matchProcessRule(process)
	if !ok {
		return 0
	}
	switch {
	case hour >= rule.highFrom:
		return rule.high
	case hour >= rule.lowFrom:
		return rule.low
	default:
		return 0
	}
}

func matchProcessRule(process string) (processRule, bool) {
	lower := strings.ToLower(process)
	for _, r := range processRules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r, true
			}
		}
	}
	return processRule{}, false
}

// IsHeightWork reports whether the process name matches the height-work keywords.
func IsHeightWork(process string) bool {
	lower := strings.ToLower(process)
	return strings.Contains(lower, "고소") || strings.Contains(lower, "height")
}

func seasonalAdjustment(hour int, month time.Month) int {
	switch month {
	case time.June, time.July, time.August:
		if hour >= 14 {
			return 5
		}
		if hour >= 12 {
			return 3
		}
	case time.December, time.January, time.February:
		if hour <= 7 || hour >= 17 {
			return 4
		}
	}
	return 0
}

func crewSizeTimeAdjustment(hour, workers int) int {
	switch {
	case workers > 30:
		if hour >= 15 {
			return 6
		}
		if hour >= 13 {
			return 3
		}
	case workers > 15:
		if hour >= 16 {
			return 4
		}
		if hour >= 14 {
			return 2
		}
	}
	return 0
}

func progressTimeAdjustment(hour, progress int) int {
	switch {
	case progress <= 20:
		if hour >= 15 {
			return 5
		}
		if hour >= 13 {
			return 2
		}
	case progress >= 80:
		if hour >= 16 {
			return 4
		}
		if hour >= 14 {
			return 2
		}
	}
	return 0
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Peak returns the highest-scoring point, earliest hour on ties.
func Peak(curve []domain.HourlyRiskPoint) (domain.HourlyRiskPoint, bool) {
	if len(curve) == 0 {
		return domain.HourlyRiskPoint{}, false
	}
	best := curve[0]
	for _, p := range curve[1:] {
		if p.Score > best.Score {
			best = p
		}
	}
	return best, true
}

// Trough returns the lowest-scoring point, earliest hour on ties.
func Trough(curve []domain.HourlyRiskPoint) (domain.HourlyRiskPoint, bool) {
	return minScore(curve)
}

func minScore(points []domain.HourlyRiskPoint) (domain.HourlyRiskPoint, bool) {
	if len(points) == 0 {
		return domain.HourlyRiskPoint{}, false
	}
	best := points[0]
	for _, p := range points[1:] {
		if p.Score < best.Score {
			best = p
		}
	}
	return best, true
}
