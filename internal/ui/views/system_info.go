package views

import (
	"fmt"

	"github.com/pterm/pterm"
)

type SystemInfoItem struct {
	ConfigPath     string
	HistoryEnabled bool
	HistoryPath    string
	HistoryExists  bool // true = Found, false = Not Found
	Accounts       int
	LogFile        string
	AppDataDir     string
}

func RenderSystemInfo(data SystemInfoItem) error {
	historyStatus := pterm.Green("Found")
	switch {
	case !data.HistoryEnabled:
		historyStatus = pterm.Gray("Disabled")
	case !data.HistoryExists:
		historyStatus = pterm.Red("Not Found (Will be created)")
	}

	tableData := pterm.TableData{
		{"Configuration File", data.ConfigPath},
		{"History Database", data.HistoryPath},
		{"History Status", historyStatus},
		{"Accounts", fmt.Sprintf("%d", data.Accounts)},
		{"Log File", data.LogFile},
		{"AppData Directory", data.AppDataDir},
	}

	return pterm.DefaultTable.WithData(tableData).Render()
}
