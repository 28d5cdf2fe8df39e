package ledger

import (
	"errors"
	"fmt"

	"github.com/hance08/teller/internal/app"
	ledgerfile "github.com/hance08/teller/internal/ledger"
	"github.com/hance08/teller/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type checkRunner struct {
	app *app.App
}

func NewCheckCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a ledger file",
		Long: `Load a ledger file the same way a run does and report the number of
entries per mode, or the first malformed record.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &checkRunner{app: a}
			return runner.Run(args[0])
		},
	}
}

func (r *checkRunner) Run(path string) error {
	store := ledgerfile.NewStore()
	n, err := store.Load(path)

	var malformed *ledgerfile.MalformedRecordError
	switch {
	case err == nil:
	case errors.As(err, &malformed):
		pterm.Warning.Printf("Line %d: %s\n", malformed.Line, malformed.Reason)
	default:
		return err
	}

	entries := store.Entries()
	var amount uint64
	for _, e := range entries {
		amount += e.Amount
	}

	if err := views.RenderLedgerCheck(views.LedgerCheckItem{
		Path:   path,
		Counts: ledgerfile.CountByMode(entries),
		Total:  n,
		Amount: amount,
	}); err != nil {
		return err
	}

	if malformed != nil {
		return fmt.Errorf("ledger is malformed after %d entries: %w", n, err)
	}

	if accounts := r.app.Service.Config.Bank.Accounts; accounts > 0 {
		if out := outOfRange(entries, accounts); out > 0 {
			pterm.Warning.Printf("%d entries reference accounts outside [0, %d) and will fail\n", out, accounts)
		}
	}

	pterm.Success.Println("Ledger is well formed")
	return nil
}

func outOfRange(entries []ledgerfile.Entry, accounts int) int {
	n := 0
	for _, e := range entries {
		if e.Account >= accounts || (e.Mode == ledgerfile.Transfer && e.Other >= accounts) {
			n++
		}
	}
	return n
}
