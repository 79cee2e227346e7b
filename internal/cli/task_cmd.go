package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/siterisk/internal/cli/formatter"
	"github.com/alexanderramin/siterisk/internal/contract"
	"github.com/alexanderramin/siterisk/internal/domain"
	"github.com/alexanderramin/siterisk/internal/predictor"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage construction tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskShowCmd(app),
		newTaskEditCmd(app),
		newTaskRemoveCmd(app),
		newTaskRescoreCmd(app),
	)

	return cmd
}

// withScoreHint points the user at --score when the predictor could not
// produce one.
func withScoreHint(err error) error {
	if errors.Is(err, predictor.ErrModelUnavailable) ||
		errors.Is(err, predictor.ErrScoreNotFound) ||
		errors.Is(err, predictor.ErrInferenceFailed) {
		return fmt.Errorf("%w\nretry later, or enter a score manually with --score", err)
	}
	return err
}

func newTaskAddCmd(app *App) *cobra.Command {
	var (
		category, subcategory, process, start string
		progress, workers, score              int
		interactive                           bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a task and score its risk",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			now := app.now()

			var draft contract.TaskDraft
			if interactive {
				if !app.interactive() {
					return fmt.Errorf("--interactive needs a terminal")
				}
				var answers draftAnswers
				if err := runDraftWizard(&answers); err != nil {
					return err
				}
				d, err := answers.toDraft(now, app.loc())
				if err != nil {
					return err
				}
				draft = d
			} else {
				for _, name := range []string{"category", "subcategory", "process"} {
					if !cmd.Flags().Changed(name) {
						return fmt.Errorf("--%s is required (or use --interactive)", name)
					}
				}
				startTime, err := parseStart(start, now, app.loc())
				if err != nil {
					return err
				}
				draft = contract.NewTaskDraft(now)
				draft.Category = category
				draft.Subcategory = subcategory
				draft.Process = process
				draft.ProgressRate = progress
				draft.Workers = workers
				draft.StartTime = startTime
			}
			if cmd.Flags().Changed("score") {
				draft.Score = &score
			}

			stop := func() {}
			if draft.Score == nil && app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Scoring task...")
			}
			task, err := app.Tasks.Create(ctx, draft)
			stop()
			if err != nil {
				return withScoreHint(err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCreated(task))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Large category, Korean name or key (see 'siterisk catalog')")
	cmd.Flags().StringVar(&subcategory, "subcategory", "", "Medium category")
	cmd.Flags().StringVar(&process, "process", "", "Work process, e.g. welding")
	cmd.Flags().IntVar(&progress, "progress", 0, "Progress rate 0-100")
	cmd.Flags().IntVar(&workers, "workers", 1, "Crew size")
	cmd.Flags().StringVar(&start, "start", "", "Start time, HH:MM or YYYY-MM-DD HH:MM (default now)")
	cmd.Flags().IntVar(&score, "score", 0, "Manual base risk score 0-100, skips the model")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill the task in with a form")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var sortBy string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List today's tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			by, err := domain.ParseSortCriterion(sortBy)
			if err != nil {
				return err
			}
			tasks, err := app.Tasks.List(cmd.Context(), by)
			if err != nil {
				return err
			}

			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks found.")
				return nil
			}
			localize(tasks, app.loc())
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTaskList(tasks, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&sortBy, "sort", "start", "Sort order: start, risk-desc or risk-asc")

	return cmd
}

func newTaskShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := app.Tasks.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			localize([]*domain.ConstructionTask{task}, app.loc())
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTaskDetail(task, app.now()))
			return nil
		},
	}
}

func newTaskEditCmd(app *App) *cobra.Command {
	var (
		category, subcategory, process, start string
		progress, workers                     int
	)

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change task fields; material changes are rescored",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			task, err := app.Tasks.Resolve(ctx, args[0])
			if err != nil {
				return err
			}

			edit, err := editFromFlags(cmd.Flags(), editValues{
				category: category, subcategory: subcategory, process: process,
				progress: progress, workers: workers, start: start,
			}, app.now(), app.loc())
			if err != nil {
				return err
			}

			res, err := app.Tasks.Edit(ctx, task.ID, edit)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEditResult(res))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Large category")
	cmd.Flags().StringVar(&subcategory, "subcategory", "", "Medium category")
	cmd.Flags().StringVar(&process, "process", "", "Work process")
	cmd.Flags().IntVar(&progress, "progress", 0, "Progress rate 0-100")
	cmd.Flags().IntVar(&workers, "workers", 0, "Crew size")
	cmd.Flags().StringVar(&start, "start", "", "Start time, HH:MM or YYYY-MM-DD HH:MM")

	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			task, err := app.Tasks.Resolve(ctx, args[0])
			if err != nil {
				return err
			}

			if !yes {
				if !app.interactive() {
					return fmt.Errorf("refusing to delete %s without --yes", task.ShortID())
				}
				confirmed := false
				if err := wizardConfirm(fmt.Sprintf("Delete %s (%s)?", task.ShortID(), task.Process), &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if err := app.Tasks.Delete(ctx, task.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", task.ShortID())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}

func newTaskRescoreCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rescore ID",
		Short: "Run the model again for a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			task, err := app.Tasks.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			updated, err := app.Tasks.Rescore(ctx, task.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rescored task %s: %s -> %s\n",
				updated.ShortID(), formatter.ScoreBadge(task.RiskScore), formatter.ScoreBadge(updated.RiskScore))
			return nil
		},
	}
}

type editValues struct {
	category, subcategory, process, start string
	progress, workers                     int
}

// editFromFlags keeps only the flags the user actually set.
func editFromFlags(flags *pflag.FlagSet, v editValues, now time.Time, loc *time.Location) (domain.TaskEdit, error) {
	var edit domain.TaskEdit
	if flags.Changed("category") {
		edit.Category = &v.category
	}
	if flags.Changed("subcategory") {
		edit.Subcategory = &v.subcategory
	}
	if flags.Changed("process") {
		edit.Process = &v.process
	}
	if flags.Changed("progress") {
		edit.ProgressRate = &v.progress
	}
	if flags.Changed("workers") {
		edit.Workers = &v.workers
	}
	if flags.Changed("start") {
		t, err := parseStart(v.start, now, loc)
		if err != nil {
			return edit, err
		}
		edit.StartTime = &t
	}
	return edit, nil
}

// localize converts stored UTC times to the site zone for display.
func localize(tasks []*domain.ConstructionTask, loc *time.Location) {
	for _, t := range tasks {
		t.StartTime = t.StartTime.In(loc)
	}
}
