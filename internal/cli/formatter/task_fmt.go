package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/siterisk/internal/contract"
	"github.com/alexanderramin/siterisk/internal/domain"
)

const rescoreMark = "⟳"

// FormatTaskList renders tasks as a table inside a box.
func FormatTaskList(tasks []*domain.ConstructionTask, now time.Time) string {
	headers := []string{"ID", "START", "TYPE", "PROCESS", "CREW", "PROGRESS", "RISK", ""}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		flag := ""
		if t.NeedsRescore {
			flag = StyleYellow.Render(rescoreMark)
		}
		rows = append(rows, []string{
			TruncID(t.ID),
			StyleFg.Render(StartLabel(t.StartTime, now)),
			StylePurple.Render(t.ConstructionType()),
			Bold(t.Process),
			fmt.Sprintf("%d", t.Workers),
			RenderProgress(t.ProgressRate, 10),
			ScoreBadge(t.RiskScore),
			flag,
		})
	}

	out := RenderTable(headers, rows)
	if hasRescore(tasks) {
		out += "\n" + Dim(rescoreMark+" score predates the last edit; run 'siterisk task rescore ID'")
	}
	return RenderBox(fmt.Sprintf("Tasks (%d)", len(tasks)), out)
}

func hasRescore(tasks []*domain.ConstructionTask) bool {
	for _, t := range tasks {
		if t.NeedsRescore {
			return true
		}
	}
	return false
}

// FormatTaskDetail renders one task's fields.
func FormatTaskDetail(t *domain.ConstructionTask, now time.Time) string {
	const w = 9
	var b strings.Builder
	b.WriteString(Bold(t.Process) + "  " + StylePurple.Render(t.ConstructionType()) + "\n\n")
	b.WriteString(field("ID", w, Dim(t.ID)))
	b.WriteString(field("START", w, StyleFg.Render(StartLabel(t.StartTime, now))))
	b.WriteString(field("CREW", w, fmt.Sprintf("%d workers", t.Workers)))
	b.WriteString(field("PROGRESS", w, RenderProgress(t.ProgressRate, 20)))
	b.WriteString(field("RISK", w, ScoreBadge(t.RiskScore)))
	b.WriteString(field("PROCESS", w, t.WorkProcess().Title()))
	if t.NeedsRescore {
		b.WriteString(field("", w, StyleYellow.Render(rescoreMark+" needs rescore")))
	}
	return RenderBox("", strings.TrimRight(b.String(), "\n"))
}

// FormatCreated is the one-line confirmation after a task is saved.
func FormatCreated(t *domain.ConstructionTask) string {
	return fmt.Sprintf("Created task %s  %s  %s",
		TruncID(t.ID), Bold(t.Process), ScoreBadge(t.RiskScore))
}

// FormatEditResult summarizes what an edit saved.
func FormatEditResult(r *contract.EditResult) string {
	if !r.Saved() {
		return Dim("No changes.")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Updated task %s (%s)", TruncID(r.Task.ID), strings.Join(r.Changed, ", "))
	switch {
	case r.Rescored:
		fmt.Fprintf(&b, "\nNew risk score %s", ScoreBadge(r.Task.RiskScore))
	case r.RescoreErr != nil:
		fmt.Fprintf(&b, "\n%s %s", StyleYellow.Render("Rescore failed, task flagged:"), r.RescoreErr)
	case r.Task.NeedsRescore:
		b.WriteString("\n" + StyleYellow.Render("Task flagged for rescore."))
	}
	return b.String()
}
