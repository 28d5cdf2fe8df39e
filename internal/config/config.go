package config

import (
	"errors"
	"fmt"

	"github.com/hance08/teller/internal/constants"
)

type Config struct {
	Bank       BankConfig    `mapstructure:"bank"`
	Log        LogConfig     `mapstructure:"log"`
	History    HistoryConfig `mapstructure:"history"`
	Metrics    MetricsConfig `mapstructure:"metrics"`
	Ledger     LedgerConfig  `mapstructure:"ledger"`
	ConfigPath string        `mapstructure:"-"`
}

type BankConfig struct {
	Accounts int `mapstructure:"accounts"`
}

type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	MaxBackups int    `mapstructure:"max_backups"`
	Debug      bool   `mapstructure:"debug"`
}

type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

type LedgerConfig struct {
	Seed  int64 `mapstructure:"seed"`
	Count int   `mapstructure:"count"`
}

func NewDefault() *Config {
	return &Config{
		Bank: BankConfig{Accounts: constants.DefaultAccounts},
		Log: LogConfig{
			File:       "",
			MaxSizeMB:  constants.LogMaxSizeMB,
			MaxAgeDays: constants.LogMaxAgeDays,
			MaxBackups: constants.LogMaxBackups,
		},
		History: HistoryConfig{Enabled: true, Path: ""},
		Metrics: MetricsConfig{Addr: ""},
		Ledger:  LedgerConfig{Seed: constants.DefaultLedgerSeed, Count: constants.DefaultLedgerCount},
	}
}

// Validate checks the values that cannot be corrected at runtime.
func (c *Config) Validate() error {
	var errs []error
	if c.Bank.Accounts < 1 {
		errs = append(errs, fmt.Errorf("bank.accounts must be at least 1, got %d", c.Bank.Accounts))
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxAgeDays < 0 || c.Log.MaxBackups < 0 {
		errs = append(errs, errors.New("log rotation limits cannot be negative"))
	}
	if c.Ledger.Count < 0 {
		errs = append(errs, fmt.Errorf("ledger.count cannot be negative, got %d", c.Ledger.Count))
	}
	return errors.Join(errs...)
}
