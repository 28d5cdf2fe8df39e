package history

import (
	"github.com/hance08/teller/internal/app"
	"github.com/hance08/teller/internal/ui/views"
	"github.com/spf13/cobra"
)

type ShowCommandRunner struct {
	app    *app.App
	events int
}

func NewShowCmd(a *app.App) *cobra.Command {
	runner := &ShowCommandRunner{app: a}

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show a recorded run",
		Long:  `Show a run's settings, its transaction log and the final balances.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runner.Run(args)
		},
	}

	cmd.Flags().IntVarP(&runner.events, "events", "e", 0, "Maximum number of transactions to display (0 = all)")

	return cmd
}

func (r *ShowCommandRunner) Run(args []string) error {
	detail, err := r.app.Service.History.GetRunDetail(args[0], r.events)
	if err != nil {
		return err
	}

	return views.RenderRunDetail(detail)
}
