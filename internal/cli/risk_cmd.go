package cli

import (
	"fmt"

	"github.com/alexanderramin/siterisk/internal/cli/formatter"
	"github.com/alexanderramin/siterisk/internal/contract"
	"github.com/spf13/cobra"
)

func newRiskCmd(app *App) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "risk ID",
		Short: "Show the hourly risk curve and the safest work window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			task, err := app.Tasks.Resolve(ctx, args[0])
			if err != nil {
				return err
			}

			now := app.now()
			req := contract.NewAssessRequest(task.ID)
			req.Now = &now
			if month != "" {
				m, err := parseMonth(month)
				if err != nil {
					return err
				}
				req.Month = m
			}

			view, err := app.Risk.Assess(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRiskView(view))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Assume this month (1-12 or name) for seasonal effects")

	return cmd
}

func newTodayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Summarize today's tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := app.Risk.Today(cmd.Context(), app.now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatToday(summary, app.loc()))
			return nil
		},
	}
}

func newResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every task now",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				if !app.interactive() {
					return fmt.Errorf("refusing to reset without --yes")
				}
				confirmed := false
				if err := wizardConfirm("Delete all tasks?", &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			n, err := app.Reset.ResetNow(cmd.Context(), app.now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d task(s).\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List work categories and processes",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCatalog())
			return nil
		},
	}
}
