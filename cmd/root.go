package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/hance08/teller/cmd/history"
	"github.com/hance08/teller/cmd/ledger"
	"github.com/hance08/teller/internal/app"
	"github.com/hance08/teller/internal/config"
	"github.com/hance08/teller/internal/constants"
	"github.com/hance08/teller/internal/errhandler"
	"github.com/hance08/teller/internal/validation"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	cfg     *config.Config
)

func Execute() {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgLightRed, pterm.FgBlack),
	}

	application := &app.App{}
	var cleanup func()

	rootCmd := &cobra.Command{
		Use:   "teller <num_producers> <num_consumers> <buffer_capacity> <ledger_file>",
		Short: "teller replays a transaction ledger against a set of bank accounts",
		Long: `teller replays a transaction ledger against a fixed set of bank accounts.

Producers read ledger entries into a bounded buffer and consumers apply them
to the accounts concurrently. Every entry is applied exactly once; the final
balances are printed when the run is over.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(); err != nil {
				return err
			}

			a, c, err := app.NewApp(cfg)
			if err != nil {
				return err
			}
			*application = *a
			cleanup = c
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "set the config file path")
	setupRunCmd(rootCmd, application)

	rootCmd.AddCommand(NewInfoCmd(application))
	rootCmd.AddCommand(ledger.NewLedgerCmd(application))
	rootCmd.AddCommand(history.NewHistoryCmd(application))

	err := rootCmd.Execute()
	if cleanup != nil {
		cleanup()
	}
	if err == nil {
		return
	}

	if errors.Is(err, validation.ErrArgCount) {
		fmt.Fprintln(os.Stderr, constants.RunUsage)
		os.Exit(1)
	}
	if errhandler.IsCancelled(err) {
		errhandler.HandleError(err)
	}

	pterm.Error.WithWriter(os.Stderr).Println(capitalize(err.Error()))
	os.Exit(1)
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		appDir, err := app.DataDir()
		if err != nil {
			return fmt.Errorf("error getting app dir: %w", err)
		}

		viper.AddConfigPath(appDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	setDefaults(config.NewDefault())

	if cfgFile == "" {
		if err := createDefaultConfig(); err != nil {
			return fmt.Errorf("failed to ensure config file: %w", err)
		}
	}

	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // allow using environment variables to override

	if err := viper.ReadInConfig(); err != nil {

		if cfgFile != "" {
			return fmt.Errorf("failed to read config file: %w", err)
		}

		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return fmt.Errorf("config file error: %w", err)
		}
	}

	cfg = config.NewDefault()
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode into struct, %v", err)
	}

	cfg.ConfigPath = viper.ConfigFileUsed()

	return cfg.Validate()
}

// setDefaults registers every key so AutomaticEnv can override it and the
// generated config file lists it.
func setDefaults(d *config.Config) {
	viper.SetDefault("bank.accounts", d.Bank.Accounts)
	viper.SetDefault("log.file", d.Log.File)
	viper.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	viper.SetDefault("log.max_age_days", d.Log.MaxAgeDays)
	viper.SetDefault("log.max_backups", d.Log.MaxBackups)
	viper.SetDefault("log.debug", d.Log.Debug)
	viper.SetDefault("history.enabled", d.History.Enabled)
	viper.SetDefault("history.path", d.History.Path)
	viper.SetDefault("metrics.addr", d.Metrics.Addr)
	viper.SetDefault("ledger.seed", d.Ledger.Seed)
	viper.SetDefault("ledger.count", d.Ledger.Count)
}

func createDefaultConfig() error {
	appDir, err := app.DataDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(appDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(appDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
