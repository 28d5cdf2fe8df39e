package views

import (
	"fmt"

	"github.com/hance08/teller/internal/store"
	"github.com/pterm/pterm"
)

const (
	dateTimeFormat = "2006-01-02 15:04:05"
	shortIDLen     = 8
)

// ShortID is the prefix shown in tables; `history show` accepts it.
func ShortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

func RunListTable(runs []*store.Run) pterm.TableData {
	tableData := pterm.TableData{
		{"ID", "Started", "Ledger", "P/C/Cap", "Entries", "Success", "Fails"},
	}

	for _, run := range runs {
		fails := fmt.Sprintf("%d", run.Failed)
		if run.Failed > 0 {
			fails = pterm.Red(fails)
		}

		tableData = append(tableData, []string{
			ShortID(run.ID),
			run.StartedAt.Format(dateTimeFormat),
			run.LedgerPath,
			fmt.Sprintf("%d/%d/%d", run.Producers, run.Consumers, run.Capacity),
			fmt.Sprintf("%d", run.Entries),
			pterm.Green(fmt.Sprintf("%d", run.Succeeded)),
			fails,
		})
	}
	return tableData
}

type RunListView struct{}

func NewRunListView() *RunListView {
	return &RunListView{}
}

func (v *RunListView) Render(runs []*store.Run, limit int) error {
	if len(runs) == 0 {
		pterm.Warning.Println("No runs recorded")
		return nil
	}

	pterm.DefaultSection.Printf("Showing recent runs (limit: %d)", limit)

	if err := pterm.DefaultTable.WithHasHeader().WithData(RunListTable(runs)).Render(); err != nil {
		return err
	}
	pterm.Info.Printf("Total: %d runs\n", len(runs))
	return nil
}
