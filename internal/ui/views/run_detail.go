package views

import (
	"fmt"

	"github.com/hance08/teller/internal/service"
	"github.com/hance08/teller/internal/ui"
	"github.com/pterm/pterm"
)

func RenderRunDetail(detail *service.RunDetail) error {
	run := detail.Run

	ui.PrintL1Title("Run %s", ShortID(run.ID))
	pterm.Println()
	ui.PrintL2Title("Run Info")
	infoData := pterm.TableData{
		{"Field", "Value"},
		{"ID", run.ID},
		{"Started", run.StartedAt.Format(dateTimeFormat)},
		{"Duration", run.FinishedAt.Sub(run.StartedAt).String()},
		{"Ledger", run.LedgerPath},
		{"Producers", fmt.Sprintf("%d", run.Producers)},
		{"Consumers", fmt.Sprintf("%d", run.Consumers)},
		{"Buffer Capacity", fmt.Sprintf("%d", run.Capacity)},
		{"Entries", fmt.Sprintf("%d", run.Entries)},
	}
	if err := pterm.DefaultTable.
		WithHasHeader().
		WithHeaderStyle(pterm.NewStyle(pterm.FgGray)).
		WithData(infoData).
		Render(); err != nil {
		return err
	}

	pterm.Println()
	ui.PrintL2Title("Transactions")
	for _, ev := range detail.Events {
		if ev.OK {
			pterm.Println(ev.Message)
		} else {
			pterm.Println(pterm.Red(ev.Message))
		}
	}
	if len(detail.Events) < run.Entries {
		pterm.Info.Printf("Showing %d of %d transactions\n", len(detail.Events), run.Entries)
	}

	pterm.Println()
	ui.PrintL2Title("Final Balances")
	balances := make([]int64, len(detail.Balances))
	for _, bal := range detail.Balances {
		if bal.AccountID >= 0 && bal.AccountID < len(balances) {
			balances[bal.AccountID] = bal.Balance
		}
	}
	if err := pterm.DefaultTable.
		WithHasHeader().
		WithHeaderStyle(pterm.NewStyle(pterm.FgGray)).
		WithData(BalanceTable(balances)).
		Render(); err != nil {
		return err
	}

	pterm.Printf("Success: %d Fails: %d\n", run.Succeeded, run.Failed)
	return nil
}
