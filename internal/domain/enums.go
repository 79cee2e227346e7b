package domain

import (
	"fmt"
	"strings"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

const (
	lowRiskCeiling    = 30
	mediumRiskCeiling = 70
)

// RiskLevelFromScore buckets a score: <=30 low, 31-70 medium, otherwise high.
func RiskLevelFromScore(score int) RiskLevel {
	switch {
	case score <= lowRiskCeiling:
		return RiskLow
	case score <= mediumRiskCeiling:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// HourlyRiskPoint is one hour of a risk curve. It is computed on demand and
// never persisted.
type HourlyRiskPoint struct {
	Hour  int       `json:"hour"`
	Score int       `json:"score"`
	Level RiskLevel `json:"risk_level"`
}

// NewHourlyRiskPoint derives the level from the score.
func NewHourlyRiskPoint(hour, score int) HourlyRiskPoint {
	return HourlyRiskPoint{Hour: hour, Score: score, Level: RiskLevelFromScore(score)}
}

type SortCriterion string

const (
	SortByStartTime SortCriterion = "start_time"
	SortByRiskDesc  SortCriterion = "risk_desc"
	SortByRiskAsc   SortCriterion = "risk_asc"
)

// ParseSortCriterion accepts the canonical names plus a few CLI spellings.
func ParseSortCriterion(s string) (SortCriterion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "start", "start_time", "start-time":
		return SortByStartTime, nil
	case "risk", "risk_desc", "risk-desc", "high":
		return SortByRiskDesc, nil
	case "risk_asc", "risk-asc", "low":
		return SortByRiskAsc, nil
	default:
		return "", fmt.Errorf("unknown sort criterion %q (want start, risk-desc or risk-asc)", s)
	}
}

type WeatherType string

const (
	WeatherClear    WeatherType = "clear"
	WeatherCloud    WeatherType = "cloud"
	WeatherFog      WeatherType = "fog"
	WeatherWind     WeatherType = "wind"
	WeatherDownpour WeatherType = "downpour"
	WeatherBlizzard WeatherType = "blizzard"
)

// ValidWeatherTypes is the canonical weather vocabulary.
var ValidWeatherTypes = map[WeatherType]bool{
	WeatherClear: true, WeatherCloud: true, WeatherFog: true,
	WeatherWind: true, WeatherDownpour: true, WeatherBlizzard: true,
}

// KoreanName returns the label used on site boards.
func (w WeatherType) KoreanName() string {
	switch w {
	case WeatherBlizzard:
		return "강설"
	case WeatherDownpour:
		return "강우"
	case WeatherWind:
		return "강풍"
	case WeatherFog:
		return "안개"
	case WeatherCloud:
		return "흐림"
	default:
		return "맑음"
	}
}

type WorkerBucket string

const (
	Workers1To4    WorkerBucket = "1_4"
	Workers5To9    WorkerBucket = "5_9"
	Workers10To19  WorkerBucket = "10_19"
	Workers20To49  WorkerBucket = "20_49"
	Workers50To99  WorkerBucket = "50_99"
	Workers100Plus WorkerBucket = "100+"
)

// BucketWorkers maps a crew size onto the bucketed model encoding.
// Sizes below one fall into the smallest bucket.
func BucketWorkers(n int) WorkerBucket {
	switch {
	case n < 5:
		return Workers1To4
	case n < 10:
		return Workers5To9
	case n < 20:
		return Workers10To19
	case n < 50:
		return Workers20To49
	case n < 100:
		return Workers50To99
	default:
		return Workers100Plus
	}
}
