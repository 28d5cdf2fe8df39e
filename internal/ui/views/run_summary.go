package views

import (
	"fmt"

	"github.com/hance08/teller/internal/service"
	"github.com/pterm/pterm"
)

// RenderRunSummary prints how the run went, after the balance dump.
func RenderRunSummary(report *service.RunReport) {
	pterm.DefaultSection.Println("Run Summary")

	tableData := pterm.TableData{
		{"Field", "Value"},
		{"Ledger", report.LedgerPath},
		{"Entries", fmt.Sprintf("%d", report.Stats.MaxItems)},
		{"Produced", fmt.Sprintf("%d", report.Stats.Produced)},
		{"Consumed", fmt.Sprintf("%d", report.Stats.Consumed)},
		{"Elapsed", report.Stats.Elapsed.String()},
	}
	if report.RunID != "" {
		tableData = append(tableData, []string{"Run ID", ShortID(report.RunID)})
	}

	pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()

	total := report.Snapshot.Succeeded + report.Snapshot.Failed
	if total == report.Stats.MaxItems {
		pterm.Success.Printf("✓ All %d entries processed exactly once\n", total)
	} else {
		pterm.Warning.Printf("⚠ Warning: %d outcomes recorded for %d entries\n", total, report.Stats.MaxItems)
	}
}
