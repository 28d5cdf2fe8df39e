package ledger

import (
	"github.com/hance08/teller/internal/app"
	"github.com/spf13/cobra"
)

func NewLedgerCmd(a *app.App) *cobra.Command {
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Generate and check ledger files",
		Long: `Generate random ledger files and check existing ones.

A ledger holds four whitespace separated integers per entry:
account, other account, amount and mode (0 deposit, 1 withdraw, 2 transfer).`,
	}

	ledgerCmd.AddCommand(NewGenCmd(a))
	ledgerCmd.AddCommand(NewCheckCmd(a))

	return ledgerCmd
}
