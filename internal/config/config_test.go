package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := NewDefault()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 10, cfg.Bank.Accounts)
	assert.Equal(t, int64(377), cfg.Ledger.Seed)
	assert.True(t, cfg.History.Enabled)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := NewDefault()
	cfg.Bank.Accounts = 0
	cfg.Log.MaxBackups = -1

	err := cfg.Validate()
	assert.ErrorContains(t, err, "bank.accounts")
	assert.ErrorContains(t, err, "log rotation")
}
