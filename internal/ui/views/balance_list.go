package views

import (
	"fmt"
	"io"
	"os"

	"github.com/hance08/teller/internal/bank"
	"github.com/pterm/pterm"
)

// BalanceTable builds the final dump table: one row per account.
func BalanceTable(balances []int64) pterm.TableData {
	tableData := pterm.TableData{{"ID#", "Balance"}}
	for id, bal := range balances {
		tableData = append(tableData, []string{fmt.Sprintf("%d", id), fmt.Sprintf("%d", bal)})
	}
	return tableData
}

// CountsLine is the summary line printed under the balance table.
func CountsLine(snap bank.Snapshot) string {
	return fmt.Sprintf("Success: %d Fails: %d", snap.Succeeded, snap.Failed)
}

type BalanceListView struct {
	title string
	out   io.Writer
}

func NewBalanceListView(title string) *BalanceListView {
	return &BalanceListView{title: title, out: os.Stdout}
}

func (v *BalanceListView) Render(snap bank.Snapshot) error {
	pterm.DefaultSection.Println(v.title)

	table, err := pterm.DefaultTable.WithHasHeader().WithData(BalanceTable(snap.Balances)).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(v.out, table)
	fmt.Fprintln(v.out, CountsLine(snap))
	return nil
}
