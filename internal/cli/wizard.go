package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/siterisk/internal/cli/formatter"
	"github.com/alexanderramin/siterisk/internal/contract"
	"github.com/alexanderramin/siterisk/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func siteriskHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// draftAnswers collects the task-entry form as raw strings.
type draftAnswers struct {
	Category    string
	Subcategory string
	Process     string
	Progress    string
	Workers     string
	Start       string
}

func categoryForm(a *draftAnswers) *huh.Form {
	options := make([]huh.Option[string], 0, len(domain.WorkTypeCatalog))
	for _, wt := range domain.WorkTypeCatalog {
		options = append(options, huh.NewOption(wt.Large, wt.Large))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Category").
				Options(options...).
				Value(&a.Category),
		),
	).WithTheme(siteriskHuhTheme()).WithShowHelp(false)
}

func detailsForm(a *draftAnswers) *huh.Form {
	wt, _ := domain.LookupWorkType(a.Category)
	subs := make([]huh.Option[string], 0, len(wt.Medium))
	for _, m := range wt.Medium {
		subs = append(subs, huh.NewOption(m, m))
	}

	suggestions := make([]string, 0, len(domain.AllWorkProcesses))
	for _, p := range domain.AllWorkProcesses {
		suggestions = append(suggestions, string(p))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Subcategory").
				Options(subs...).
				Value(&a.Subcategory),
			huh.NewInput().
				Title("Process").
				Placeholder("welding").
				Suggestions(suggestions).
				Value(&a.Process).
				Validate(validateRequired),
			huh.NewInput().
				Title("Progress (%)").
				Placeholder("0").
				Value(&a.Progress).
				Validate(validatePercent),
			huh.NewInput().
				Title("Workers").
				Placeholder("1").
				Value(&a.Workers).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Start (HH:MM or YYYY-MM-DD HH:MM, blank for now)").
				Value(&a.Start),
		),
	).WithTheme(siteriskHuhTheme()).WithShowHelp(false)
}

// runDraftWizard asks for the category first so the subcategory list can
// follow it.
func runDraftWizard(a *draftAnswers) error {
	if err := categoryForm(a).Run(); err != nil {
		return err
	}
	return detailsForm(a).Run()
}

func (a draftAnswers) toDraft(now time.Time, loc *time.Location) (contract.TaskDraft, error) {
	draft := contract.NewTaskDraft(now)
	draft.Category = a.Category
	draft.Subcategory = a.Subcategory
	draft.Process = strings.TrimSpace(a.Process)

	if a.Progress != "" {
		p, err := strconv.Atoi(strings.TrimSpace(a.Progress))
		if err != nil {
			return draft, fmt.Errorf("invalid progress %q", a.Progress)
		}
		draft.ProgressRate = p
	}
	if a.Workers != "" {
		w, err := strconv.Atoi(strings.TrimSpace(a.Workers))
		if err != nil {
			return draft, fmt.Errorf("invalid workers %q", a.Workers)
		}
		draft.Workers = w
	}
	start, err := parseStart(a.Start, now, loc)
	if err != nil {
		return draft, err
	}
	draft.StartTime = start
	return draft, nil
}

func wizardConfirm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(siteriskHuhTheme()).WithShowHelp(false)
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

// validatePositiveInt accepts empty or a positive integer.
func validatePositiveInt(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

// validatePercent accepts empty or an integer in 0..100.
func validatePercent(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < domain.MinProgress || v > domain.MaxProgress {
		return fmt.Errorf("enter a number from 0 to 100")
	}
	return nil
}
