package domain

import "time"

// TaskEdit carries the fields a user touched in an edit. Nil means untouched.
type TaskEdit struct {
	Category     *string
	Subcategory  *string
	Process      *string
	ProgressRate *int
	Workers      *int
	StartTime    *time.Time
}

// TaskPatch is the set of changed-field deltas handed to the repository.
// Only non-nil fields are written.
type TaskPatch struct {
	Category     *string
	Subcategory  *string
	Process      *string
	ProgressRate *int
	Workers      *int
	StartTime    *time.Time
	RiskScore    *int
	NeedsRescore *bool
}

// Diff compares each edited field with the stored task and keeps only the
// ones whose value actually differs.
func Diff(current ConstructionTask, edit TaskEdit) TaskPatch {
	var p TaskPatch
	if edit.Category != nil && *edit.Category != current.Category {
		p.Category = ptr(*edit.Category)
	}
	if edit.Subcategory != nil && *edit.Subcategory != current.Subcategory {
		p.Subcategory = ptr(*edit.Subcategory)
	}
	if edit.Process != nil && *edit.Process != current.Process {
		p.Process = ptr(*edit.Process)
	}
	if edit.ProgressRate != nil && *edit.ProgressRate != current.ProgressRate {
		p.ProgressRate = ptr(*edit.ProgressRate)
	}
	if edit.Workers != nil && *edit.Workers != current.Workers {
		p.Workers = ptr(*edit.Workers)
	}
	if edit.StartTime != nil && !edit.StartTime.Equal(current.StartTime) {
		p.StartTime = ptr(*edit.StartTime)
	}
	return p
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// IsMaterial reports whether the patch touches an input of the risk model.
// A start time change alone does not.
func (p TaskPatch) IsMaterial() bool {
	return p.Category != nil || p.Subcategory != nil || p.Process != nil ||
		p.ProgressRate != nil || p.Workers != nil
}

// WithScore returns a copy of p that also records a fresh score and clears
// the rescore flag.
func (p TaskPatch) WithScore(score int) TaskPatch {
	p.RiskScore = ptr(score)
	p.NeedsRescore = ptr(false)
	return p
}

// WithNeedsRescore returns a copy of p that flags the task for re-prediction.
func (p TaskPatch) WithNeedsRescore() TaskPatch {
	p.NeedsRescore = ptr(true)
	return p
}

// Fields lists the changed field names in storage column order.
func (p TaskPatch) Fields() []string {
	var fields []string
	if p.Category != nil {
		fields = append(fields, "category")
	}
	if p.Subcategory != nil {
		fields = append(fields, "subcategory")
	}
	if p.Process != nil {
		fields = append(fields, "process")
	}
	if p.ProgressRate != nil {
		fields = append(fields, "progress_rate")
	}
	if p.Workers != nil {
		fields = append(fields, "workers")
	}
	if p.StartTime != nil {
		fields = append(fields, "start_time")
	}
	if p.RiskScore != nil {
		fields = append(fields, "risk_score")
	}
	if p.NeedsRescore != nil {
		fields = append(fields, "needs_rescore")
	}
	return fields
}

func ptr[T any](v T) *T {
	return &v
}
