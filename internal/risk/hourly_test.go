package risk

import (
	"testing"
	"time"

	"github.com/alexanderramin/siterisk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func task(process string, workers, progress int) domain.ConstructionTask {
	return domain.ConstructionTask{
		ID:           "t-1",
		Category:     "건축물",
		Subcategory:  "공동주택",
		Process:      process,
		ProgressRate: progress,
		Workers:      workers,
		StartTime:    time.Date(2025, 7, 15, 8, 0, 0, 0, time.UTC),
	}
}

func scoreAt(t *testing.T, curve []domain.HourlyRiskPoint, hour int) domain.HourlyRiskPoint {
	t.Helper()
	for _, p := range curve {
		if p.Hour == hour {
			return p
		}
	}
	t.Fatalf("hour %d missing from curve", hour)
	return domain.HourlyRiskPoint{}
}

func TestCalculateHourly_Shape(t *testing.T) {
	curve := CalculateHourly(task("welding", 10, 50), 50, time.March)
	require.Len(t, curve, HoursPerDay)
	for i, p := range curve {
		assert.Equal(t, FirstHour+i, p.Hour)
	}
}

func TestCalculateHourly_SummerWelding(t *testing.T) {
	curve := CalculateHourly(task("welding", 10, 50), 50, time.July)

	h8 := scoreAt(t, curve, 8)
	assert.Equal(t, 50, h8.Score)
	assert.Equal(t, domain.RiskMedium, h8.Level)

	// 50 + 8 fatigue peak + 8 welding + 5 summer afternoon
	h16 := scoreAt(t, curve, 16)
	assert.Equal(t, 71, h16.Score)
	assert.Equal(t, domain.RiskHigh, h16.Level)
}

func TestCalculateHourly_WinterExcavationLargeCrew(t *testing.T) {
	curve := CalculateHourly(task("excavation", 40, 10), 20, time.January)

	// 20 + 2 wrap-up + 6 excavation + 4 winter edge + 6 crew + 5 early progress
	h17 := scoreAt(t, curve, 17)
	assert.Equal(t, 43, h17.Score)
	assert.Equal(t, domain.RiskMedium, h17.Level)
}

func TestCalculateHourly_TimeOfDayOnly(t *testing.T) {
	curve := CalculateHourly(task("foundation", 10, 50), 50, time.April)
	want := map[int]int{
		6: 45, 7: 45, 8: 50, 9: 50, 10: 50, 11: 55, 12: 55,
		13: 53, 14: 53, 15: 58, 16: 58, 17: 52, 18: 52,
	}
	for hour, score := range want {
		assert.Equal(t, score, scoreAt(t, curve, hour).Score, "hour %d", hour)
	}
}

func TestCalculateHourly_ProcessTiers(t *testing.T) {
	cases := []struct {
		process string
		hour    int
		bonus   int
	}{
		{"고소 작업", 11, 0},
		{"고소 작업", 12, 5},
		{"Height work", 14, 10},
		{"용접", 13, 4},
		{"welding", 15, 8},
		{"굴착", 14, 3},
		{"EXCAVATION", 16, 6},
		{"painting", 16, 0},
	}
	for _, tc := range cases {
		base := CalculateHourly(task("painting", 10, 50), 40, time.April)
		curve := CalculateHourly(task(tc.process, 10, 50), 40, time.April)
		got := scoreAt(t, curve, tc.hour).Score - scoreAt(t, base, tc.hour).Score
		assert.Equal(t, tc.bonus, got, "process %q hour %d", tc.process, tc.hour)
	}
}

func TestCalculateHourly_FirstProcessBlockWins(t *testing.T) {
	// "height welding" matches the height block first; welding adds nothing.
	base := CalculateHourly(task("painting", 10, 50), 40, time.April)
	curve := CalculateHourly(task("height welding", 10, 50), 40, time.April)
	assert.Equal(t, 10, scoreAt(t, curve, 15).Score-scoreAt(t, base, 15).Score)
}

func TestCalculateHourly_Seasonal(t *testing.T) {
	neutral := CalculateHourly(task("painting", 10, 50), 40, time.April)
	summer := CalculateHourly(task("painting", 10, 50), 40, time.August)
	winter := CalculateHourly(task("painting", 10, 50), 40, time.December)

	delta := func(curve []domain.HourlyRiskPoint, hour int) int {
		return scoreAt(t, curve, hour).Score - scoreAt(t, neutral, hour).Score
	}

	assert.Equal(t, 0, delta(summer, 11))
	assert.Equal(t, 3, delta(summer, 12))
	assert.Equal(t, 5, delta(summer, 14))
	assert.Equal(t, 4, delta(winter, 6))
	assert.Equal(t, 4, delta(winter, 7))
	assert.Equal(t, 0, delta(winter, 12))
	assert.Equal(t, 4, delta(winter, 18))
}

func TestCalculateHourly_CrewAndProgress(t *testing.T) {
	neutral := CalculateHourly(task("painting", 10, 50), 40, time.April)
	cases := []struct {
		name     string
		workers  int
		progress int
		hour     int
		want     int
	}{
		{"crew over 30 at 13", 31, 50, 13, 3},
		{"crew over 30 at 15", 31, 50, 15, 6},
		{"crew of 30 uses middle tier", 30, 50, 16, 4},
		{"crew over 15 at 14", 16, 50, 14, 2},
		{"crew of 15 adds nothing", 15, 50, 17, 0},
		{"early progress at 13", 10, 20, 13, 2},
		{"early progress at 15", 10, 0, 15, 5},
		{"late progress at 14", 10, 80, 14, 2},
		{"late progress at 16", 10, 100, 16, 4},
		{"mid progress adds nothing", 10, 79, 16, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			curve := CalculateHourly(task("painting", tc.workers, tc.progress), 40, time.April)
			got := scoreAt(t, curve, tc.hour).Score - scoreAt(t, neutral, tc.hour).Score
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCalculateHourly_Clamped(t *testing.T) {
	high := CalculateHourly(task("height", 40, 10), 100, time.July)
	assert.Equal(t, 100, scoreAt(t, high, 16).Score)

	low := CalculateHourly(task("painting", 10, 50), 0, time.April)
	assert.Equal(t, 1, scoreAt(t, low, 6).Score, "floor is 1, not 0")
	assert.Equal(t, domain.RiskLow, scoreAt(t, low, 6).Level)
}

func TestCalculateHourly_Deterministic(t *testing.T) {
	in := task("용접", 22, 85)
	assert.Equal(t, CalculateHourly(in, 63, time.June), CalculateHourly(in, 63, time.June))
}

func TestPeakAndTrough(t *testing.T) {
	curve := CalculateHourly(task("foundation", 10, 50), 50, time.April)

	peak, ok := Peak(curve)
	require.True(t, ok)
	assert.Equal(t, 15, peak.Hour, "earliest of the tied fatigue-peak hours")
	assert.Equal(t, 58, peak.Score)

	trough, ok := Trough(curve)
	require.True(t, ok)
	assert.Equal(t, 6, trough.Hour)

	_, ok = Peak(nil)
	assert.False(t, ok)
}

func TestMonthOf(t *testing.T) {
	kst := time.FixedZone("KST", 9*3600)
	// 2025-06-30 20:00 UTC is already July in Seoul.
	at := time.Date(2025, 6, 30, 20, 0, 0, 0, time.UTC).In(kst)
	assert.Equal(t, time.July, MonthOf(at))
}
