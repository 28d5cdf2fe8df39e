package history

import (
	"github.com/hance08/teller/internal/app"
	"github.com/spf13/cobra"
)

func NewHistoryCmd(a *app.App) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Browse recorded runs",
		Long:  `List, inspect and clear the runs recorded in the history database.`,
	}

	historyCmd.AddCommand(NewListCmd(a))
	historyCmd.AddCommand(NewShowCmd(a))
	historyCmd.AddCommand(NewClearCmd(a))

	return historyCmd
}
