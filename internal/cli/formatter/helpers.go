package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// HourLabel formats an hour of the day as "06:00".
func HourLabel(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// StartLabel formats a task start time relative to now: the clock time for
// today, the date and time otherwise.
func StartLabel(t, now time.Time) string {
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return t.Format("15:04")
	}
	return t.Format("Jan 2 15:04")
}

// field renders one "LABEL  value" metadata line with the label padded to width.
func field(label string, width int, value string) string {
	pad := width - lipgloss.Width(label)
	if pad < 0 {
		pad = 0
	}
	return StyleDim.Render(label+strings.Repeat(" ", pad)) + "  " + value + "\n"
}
