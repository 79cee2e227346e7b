package cli

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStart(t *testing.T) {
	kst := time.FixedZone("KST", 9*60*60)
	now := time.Date(2025, 7, 15, 9, 41, 27, 0, kst)

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "empty is now to the minute", input: "", want: time.Date(2025, 7, 15, 9, 41, 0, 0, kst)},
		{name: "clock means today", input: "14:30", want: time.Date(2025, 7, 15, 14, 30, 0, 0, kst)},
		{name: "date and clock", input: "2025-07-16 07:00", want: time.Date(2025, 7, 16, 7, 0, 0, 0, kst)},
		{name: "T separator", input: "2025-07-16T07:00", want: time.Date(2025, 7, 16, 7, 0, 0, 0, kst)},
		{name: "rfc3339", input: "2025-07-16T07:00:00Z", want: time.Date(2025, 7, 16, 7, 0, 0, 0, time.UTC)},
		{name: "garbage", input: "after lunch", wantErr: true},
		{name: "bad clock", input: "25:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseStart(tt.input, now, kst)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Month
		wantErr bool
	}{
		{input: "1", want: time.January},
		{input: "12", want: time.December},
		{input: "aug", want: time.August},
		{input: "September", want: time.September},
		{input: "0", wantErr: true},
		{input: "13", wantErr: true},
		{input: "ju", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseMonth(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDraftAnswers_ToDraft(t *testing.T) {
	now := time.Date(2025, 7, 15, 9, 0, 0, 0, time.UTC)
	a := draftAnswers{
		Category:    "building",
		Subcategory: "공장",
		Process:     "  rebar tying ",
		Progress:    "35",
		Workers:     "8",
		Start:       "13:00",
	}

	draft, err := a.toDraft(now, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "building", draft.Category)
	assert.Equal(t, "rebar tying", draft.Process)
	assert.Equal(t, 35, draft.ProgressRate)
	assert.Equal(t, 8, draft.Workers)
	assert.Equal(t, time.Date(2025, 7, 15, 13, 0, 0, 0, time.UTC), draft.StartTime)
	assert.Nil(t, draft.Score)

	a.Workers = "several"
	_, err = a.toDraft(now, time.UTC)
	assert.ErrorContains(t, err, "invalid workers")
}

func TestWizardValidators(t *testing.T) {
	assert.Error(t, validateRequired("  "))
	assert.NoError(t, validateRequired("welding"))

	assert.NoError(t, validatePositiveInt(""))
	assert.NoError(t, validatePositiveInt("3"))
	assert.Error(t, validatePositiveInt("0"))
	assert.Error(t, validatePositiveInt("x"))

	assert.NoError(t, validatePercent("0"))
	assert.NoError(t, validatePercent("100"))
	assert.Error(t, validatePercent("101"))
	assert.Error(t, validatePercent("-1"))
}

func TestEditFromFlags_OnlyChangedFields(t *testing.T) {
	var v editValues
	flags := pflag.NewFlagSet("edit", pflag.ContinueOnError)
	flags.StringVar(&v.process, "process", "", "")
	flags.StringVar(&v.start, "start", "", "")
	flags.IntVar(&v.workers, "workers", 0, "")
	flags.IntVar(&v.progress, "progress", 0, "")
	require.NoError(t, flags.Parse([]string{"--workers", "25", "--start", "07:30"}))

	now := time.Date(2025, 7, 15, 9, 0, 0, 0, time.UTC)
	edit, err := editFromFlags(flags, v, now, time.UTC)
	require.NoError(t, err)
	require.NotNil(t, edit.Workers)
	assert.Equal(t, 25, *edit.Workers)
	require.NotNil(t, edit.StartTime)
	assert.Equal(t, time.Date(2025, 7, 15, 7, 30, 0, 0, time.UTC), *edit.StartTime)
	assert.Nil(t, edit.Process)
	assert.Nil(t, edit.ProgressRate)
	assert.Nil(t, edit.Category)
}
