package views

import (
	"fmt"

	"github.com/hance08/teller/internal/ledger"
	"github.com/pterm/pterm"
)

type LedgerCheckItem struct {
	Path   string
	Counts map[ledger.Mode]int
	Total  int
	Amount uint64
}

func RenderLedgerCheck(item LedgerCheckItem) error {
	pterm.DefaultSection.Printf("Ledger %s", item.Path)

	tableData := pterm.TableData{{"Mode", "Entries"}}
	for _, m := range []ledger.Mode{ledger.Deposit, ledger.Withdraw, ledger.Transfer} {
		tableData = append(tableData, []string{m.String(), fmt.Sprintf("%d", item.Counts[m])})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}

	pterm.Info.Printf("Total: %d entries, $%d requested\n", item.Total, item.Amount)
	return nil
}
