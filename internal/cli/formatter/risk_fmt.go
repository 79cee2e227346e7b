package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/siterisk/internal/contract"
	"github.com/alexanderramin/siterisk/internal/domain"
)

const curveBarWidth = 25

// FormatRiskView renders the hourly curve, recommended window and the
// safety checklist for a task.
func FormatRiskView(v *contract.TaskRiskView) string {
	var b strings.Builder
	b.WriteString(Bold(v.Task.Process) + "  " + StylePurple.Render(v.Task.ConstructionType()) + "\n")
	fmt.Fprintf(&b, "%s %s   %s %s\n\n",
		Dim("BASE"), ScoreBadge(v.Task.RiskScore),
		Dim("MONTH"), StyleFg.Render(v.Month.String()))

	b.WriteString(Header("Hourly risk") + "\n")
	b.WriteString(FormatCurve(v.Curve, v.Window.StartHour, v.Window.EndHour))
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s %s-%s  %s\n",
		StyleGreen.Render("▶ Recommended window"),
		HourLabel(v.Window.StartHour), HourLabel(v.Window.EndHour),
		Dim(v.Window.Reason))
	fmt.Fprintf(&b, "%s %s (%d)   %s %s (%d)\n",
		Dim("PEAK"), StyleRed.Render(HourLabel(v.Peak.Hour)), v.Peak.Score,
		Dim("LOWEST"), StyleGreen.Render(HourLabel(v.Trough.Hour)), v.Trough.Score)

	if len(v.Checklist) > 0 {
		b.WriteString("\n" + Header(v.Process.Title()+" checklist") + "\n")
		b.WriteString(FormatChecklist(v.Checklist))
	}
	return RenderBox("Risk assessment", strings.TrimRight(b.String(), "\n"))
}

// FormatCurve draws one bar per hour. Hours inside [start, end] are marked.
func FormatCurve(curve []domain.HourlyRiskPoint, start, end int) string {
	var b strings.Builder
	for _, p := range curve {
		marker := "  "
		if p.Hour >= start && p.Hour <= end {
			marker = StyleGreen.Render("▶ ")
		}
		fmt.Fprintf(&b, "%s%s %s %s\n",
			marker, Dim(HourLabel(p.Hour)),
			RenderScoreBar(p.Score, curveBarWidth),
			RiskColor(p.Level).Render(strings.ToUpper(string(p.Level))))
	}
	return b.String()
}

// FormatChecklist numbers the checklist items.
func FormatChecklist(items []domain.ChecklistItem) string {
	var b strings.Builder
	for i, it := range items {
		fmt.Fprintf(&b, "%2d. %s\n    %s\n", i+1, Bold(it.Title), Dim(it.Content))
	}
	return b.String()
}

// FormatToday renders the daily summary card.
func FormatToday(s *contract.TodaySummary, loc *time.Location) string {
	if s.Total == 0 {
		return RenderBox("Today", Dim("No tasks recorded today."))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d   %s %s\n",
		Dim("TASKS"), s.Total,
		Dim("AVERAGE"), RiskColor(domain.RiskLevelFromScore(int(s.AverageScore+0.5))).Render(fmt.Sprintf("%.1f", s.AverageScore)))
	fmt.Fprintf(&b, "%s %d   %s %d   %s %d\n",
		StyleGreen.Render("LOW"), s.CountLow,
		StyleYellow.Render("MEDIUM"), s.CountMedium,
		StyleRed.Render("HIGH"), s.CountHigh)
	if s.NeedsRescore > 0 {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("%s %d awaiting rescore", rescoreMark, s.NeedsRescore)) + "\n")
	}

	b.WriteString("\n" + Header("Highest risk") + "\n")
	for i, t := range s.Top {
		fmt.Fprintf(&b, "%d. %s  %s  %s  %s\n",
			i+1, ScoreBadge(t.RiskScore), TruncID(t.ID), Bold(t.Process),
			Dim(t.StartTime.In(loc).Format("15:04")))
	}
	title := "Today " + s.GeneratedAt.In(loc).Format("2006-01-02")
	return RenderBox(title, strings.TrimRight(b.String(), "\n"))
}
