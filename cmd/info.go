package cmd

import (
	"os"

	"github.com/hance08/teller/internal/app"
	"github.com/hance08/teller/internal/ui/views"
	"github.com/spf13/cobra"
)

type infoRunner struct {
	app *app.App
}

func NewInfoCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display application information",
		Long:  `Display current configuration, history database path, and system details.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &infoRunner{
				app: a,
			}

			return runner.Run()
		},
	}
}

func (r *infoRunner) Run() error {
	cfg := r.app.Service.Config

	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = "(None, using defaults)"
	}

	historyPath, err := app.HistoryPath(cfg)
	if err != nil {
		historyPath = "Unknown"
	}

	historyExists := false
	if _, err := os.Stat(historyPath); err == nil {
		historyExists = true
	}

	logFile := app.LogPath(cfg)
	if logFile == "" {
		logFile = "(Disabled)"
	}

	items := views.SystemInfoItem{
		ConfigPath:     configPath,
		HistoryEnabled: cfg.History.Enabled,
		HistoryPath:    historyPath,
		HistoryExists:  historyExists,
		Accounts:       cfg.Bank.Accounts,
		LogFile:        logFile,
		AppDataDir:     getAppDataDirOrUnknown(),
	}

	if err := views.RenderSystemInfo(items); err != nil {
		return err
	}
	return nil
}

func getAppDataDirOrUnknown() string {
	dir, err := app.DataDir()
	if err != nil {
		return "Unknown"
	}
	return dir
}
