package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyProcess(t *testing.T) {
	cases := []struct {
		name string
		want WorkProcess
	}{
		{"welding", ProcessWelding},
		{"Steel WELDING", ProcessWelding},
		{"용접 작업", ProcessWelding},
		{"고소 작업", ProcessHeight},
		{"Work at Height", ProcessHeight},
		{"excavation", ProcessExcavation},
		{"굴착", ProcessExcavation},
		{"concrete_pouring", ProcessConcrete},
		{"rebar_connection", ProcessRebar},
		{"transportation", ProcessTransport},
		{"해체, 철거", ProcessDemolition},
		{"foundation", ProcessOthers},
		{"", ProcessOthers},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyProcess(tc.name), "process=%q", tc.name)
	}
}

func TestChecklist_EveryProcessHasItems(t *testing.T) {
	for _, p := range AllWorkProcesses {
		items := p.Checklist()
		require.NotEmpty(t, items, "process %s", p)
		for _, it := range items {
			assert.NotEmpty(t, it.Title)
			assert.NotEmpty(t, it.Content)
		}
		assert.NotEmpty(t, p.Title())
	}
}

func TestRiskLevelFromScore(t *testing.T) {
	cases := []struct {
		score int
		want  RiskLevel
	}{
		{0, RiskLow},
		{1, RiskLow},
		{30, RiskLow},
		{31, RiskMedium},
		{70, RiskMedium},
		{71, RiskHigh},
		{100, RiskHigh},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RiskLevelFromScore(tc.score), "score=%d", tc.score)
	}
}

func TestBucketWorkers(t *testing.T) {
	cases := []struct {
		n    int
		want WorkerBucket
	}{
		{0, Workers1To4},
		{1, Workers1To4},
		{4, Workers1To4},
		{5, Workers5To9},
		{9, Workers5To9},
		{10, Workers10To19},
		{19, Workers10To19},
		{20, Workers20To49},
		{49, Workers20To49},
		{50, Workers50To99},
		{99, Workers50To99},
		{100, Workers100Plus},
		{400, Workers100Plus},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, BucketWorkers(tc.n), "workers=%d", tc.n)
	}
}

func TestParseSortCriterion(t *testing.T) {
	for in, want := range map[string]SortCriterion{
		"":          SortByStartTime,
		"start":     SortByStartTime,
		"risk-desc": SortByRiskDesc,
		"RISK":      SortByRiskDesc,
		"risk_asc":  SortByRiskAsc,
	} {
		got, err := ParseSortCriterion(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got)
	}

	_, err := ParseSortCriterion("alphabetical")
	assert.Error(t, err)
}

func TestValidateClassification(t *testing.T) {
	large, err := ValidateClassification("building", "공동주택")
	require.NoError(t, err)
	assert.Equal(t, "건축물", large, "english key resolves to the canonical name")

	_, err = ValidateClassification("건축물", "지하철")
	assert.ErrorIs(t, err, ErrInvalidTask)

	_, err = ValidateClassification("spaceport", "기타")
	assert.ErrorIs(t, err, ErrInvalidTask)
}
