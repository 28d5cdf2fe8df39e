package history

import (
	"github.com/AlecAivazis/survey/v2"
	"github.com/hance08/teller/internal/app"
	"github.com/hance08/teller/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type clearRunner struct {
	app *app.App
	yes bool

	confirm func() (bool, error)
}

func NewClearCmd(a *app.App) *cobra.Command {
	runner := &clearRunner{app: a, confirm: confirmClear}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every recorded run",
		Long:  `Delete every recorded run with its transactions and balances. This action cannot be undone.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runner.Run()
		},
	}

	cmd.Flags().BoolVarP(&runner.yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}

func confirmClear() (bool, error) {
	pterm.Warning.Println("This action cannot be undone!")

	var confirmation bool
	confirmPrompt := &survey.Confirm{
		Message: "Do you want to delete all recorded runs?",
		Default: false,
	}
	if err := survey.AskOne(confirmPrompt, &confirmation, ui.IconOption()); err != nil {
		return false, err
	}
	return confirmation, nil
}

func (r *clearRunner) Run() error {
	history := r.app.Service.History
	if !history.Enabled() {
		// Same error the service would give, before prompting for nothing.
		_, err := history.Clear()
		return err
	}

	if !r.yes {
		ok, err := r.confirm()
		if err != nil {
			return err
		}
		if !ok {
			pterm.Info.Println("Deletion cancelled")
			return nil
		}
	}

	n, err := history.Clear()
	if err != nil {
		return err
	}

	pterm.Success.Printf("%d runs deleted\n", n)
	return nil
}
