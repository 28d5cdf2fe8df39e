package validation

import (
	"testing"

	"github.com/hance08/teller/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRunArgs(t *testing.T) {
	got, err := ParseRunArgs([]string{"2", "3", "1", "ledger.txt"})
	require.NoError(t, err)
	assert.Equal(t, engine.Config{Producers: 2, Consumers: 3, Capacity: 1}, got.Engine)
	assert.Equal(t, "ledger.txt", got.LedgerPath)
}

func TestParseRunArgsErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"too few", []string{"1", "1", "1"}, "wrong number of arguments"},
		{"too many", []string{"1", "1", "1", "a", "b"}, "wrong number of arguments"},
		{"non numeric producers", []string{"x", "1", "1", "l"}, "num_producers must be an integer"},
		{"zero consumers", []string{"1", "0", "1", "l"}, "num_consumers must be at least 1"},
		{"negative capacity", []string{"1", "1", "-4", "l"}, "buffer_capacity must be at least 1"},
		{"empty path", []string{"1", "1", "1", "  "}, "ledger_file can't be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRunArgs(tt.args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseRunArgsCountSentinel(t *testing.T) {
	_, err := ParseRunArgs(nil)
	assert.ErrorIs(t, err, ErrArgCount)
}

func TestPromptValidators(t *testing.T) {
	assert.NoError(t, ValidatePositive("3"))
	assert.Error(t, ValidatePositive("0"))
	assert.Error(t, ValidatePositive("abc"))

	assert.NoError(t, ValidateCount("0"))
	assert.NoError(t, ValidateCount(" 12 "))
	assert.Error(t, ValidateCount("-1"))
	assert.Error(t, ValidateCount("1.5"))
}
