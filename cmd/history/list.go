package history

import (
	"github.com/hance08/teller/internal/app"
	"github.com/hance08/teller/internal/constants"
	"github.com/hance08/teller/internal/ui/views"
	"github.com/spf13/cobra"
)

type listFlags struct {
	Limit int
}

type listRunner struct {
	app   *app.App
	flags *listFlags
}

func NewListCmd(a *app.App) *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "l"},
		Short:   "List recent runs",
		Long: `List recent runs, newest first.

The ID column shows the first characters of each run ID; any unique prefix
can be passed to "history show".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &listRunner{
				app:   a,
				flags: flags,
			}
			return runner.Run()
		},
	}

	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", constants.DefaultHistoryLimit, "Maximum number of runs to display")

	return cmd
}

func (r *listRunner) Run() error {
	runs, err := r.app.Service.History.ListRuns(r.flags.Limit)
	if err != nil {
		return err
	}

	return views.NewRunListView().Render(runs, r.flags.Limit)
}
