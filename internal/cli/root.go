package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/siterisk/internal/cli/formatter"
	"github.com/alexanderramin/siterisk/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Tasks service.TaskService
	Risk  service.RiskService
	Reset service.ResetService

	// Location is the site's time zone for parsing and display.
	Location *time.Location
	// Now defaults to time.Now.
	Now func() time.Time
	// IsInteractive reports whether prompts and spinners may be shown.
	IsInteractive func() bool
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now().In(a.loc())
	}
	return time.Now().In(a.loc())
}

func (a *App) loc() *time.Location {
	if a.Location != nil {
		return a.Location
	}
	return time.Local
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "siterisk" command and registers all
// subcommands against the provided App. Every invocation first applies the
// daily reset.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "siterisk",
		Short:         "Construction task risk scoring and safe work windows",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Reset == nil {
				return nil
			}
			reset, err := app.Reset.CheckAndReset(cmd.Context(), app.now())
			if err != nil {
				return err
			}
			if reset {
				fmt.Fprintln(cmd.ErrOrStderr(), formatter.Dim("New day: yesterday's tasks were cleared."))
			}
			return nil
		},
	}

	root.AddCommand(
		newTaskCmd(app),
		newRiskCmd(app),
		newTodayCmd(app),
		newResetCmd(app),
		newCatalogCmd(),
	)

	return root
}
