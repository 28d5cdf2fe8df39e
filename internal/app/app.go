package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hance08/teller/internal/config"
	"github.com/hance08/teller/internal/constants"
	"github.com/hance08/teller/internal/logx"
	"github.com/hance08/teller/internal/metrics"
	"github.com/hance08/teller/internal/service"
	"github.com/hance08/teller/internal/store"
)

type App struct {
	Service *service.Service
	Store   store.Repository
	Metrics *metrics.Metrics
}

// NewApp initialize logging, the history database and the services, then
// return App entity. The history database is only opened when enabled.
func NewApp(cfg *config.Config) (*App, func(), error) {
	logCfg := cfg.Log
	logCfg.File = LogPath(cfg)
	if err := logx.Setup(logCfg); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize log: %w", err)
	}

	a := &App{Metrics: metrics.New(constants.AppName)}

	var repo store.Repository
	var dbStore *store.Store
	if cfg.History.Enabled {
		dbPath, err := HistoryPath(cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create history directory: %w", err)
		}

		dbStore, err = store.NewStore(dbPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		repo = dbStore
		a.Store = dbStore
	}

	a.Service = service.NewService(repo, cfg, a.Metrics)

	cleanup := func() {
		if dbStore != nil {
			if err := dbStore.Close(); err != nil {
				fmt.Printf("Error closing DB: %v\n", err)
			}
		}
		_ = logx.Close()
	}

	return a, cleanup, nil
}

// HistoryPath resolves the history database path, falling back to
// history.db in the app data directory.
func HistoryPath(cfg *config.Config) (string, error) {
	if cfg.History.Path != "" {
		return ExpandPath(cfg.History.Path)
	}
	appDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(appDir, "history.db"), nil
}

// LogPath resolves the diagnostic log file, falling back to logs/teller.log
// in the app data directory. It is empty when no directory can be found.
func LogPath(cfg *config.Config) string {
	if cfg.Log.File != "" {
		if p, err := ExpandPath(cfg.Log.File); err == nil {
			return p
		}
		return cfg.Log.File
	}
	appDir, err := DataDir()
	if err != nil {
		return ""
	}
	return filepath.Join(appDir, "logs", constants.AppName+".log")
}

// DataDir is where the config file and history database live by default.
func DataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, "."+constants.AppName), nil
	}

	return filepath.Join(configDir, constants.AppName), nil
}

func ExpandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			return home, nil
		}
		if path[1] == '/' || path[1] == '\\' {
			return filepath.Join(home, path[2:]), nil
		}
	}
	return path, nil
}
