// Package validation checks user supplied values before they reach the
// engine.
package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hance08/teller/internal/engine"
)

var ErrArgCount = errors.New("wrong number of arguments")

const RunArgCount = 4

// RunArgs is the parsed form of `teller <producers> <consumers> <capacity> <ledger_file>`.
type RunArgs struct {
	Engine     engine.Config
	LedgerPath string
}

// ParseRunArgs parses the positional arguments of the root command.
func ParseRunArgs(args []string) (RunArgs, error) {
	if len(args) != RunArgCount {
		return RunArgs{}, fmt.Errorf("%w: expected %d, got %d", ErrArgCount, RunArgCount, len(args))
	}

	producers, err := ParsePositiveInt("num_producers", args[0])
	if err != nil {
		return RunArgs{}, err
	}
	consumers, err := ParsePositiveInt("num_consumers", args[1])
	if err != nil {
		return RunArgs{}, err
	}
	capacity, err := ParsePositiveInt("buffer_capacity", args[2])
	if err != nil {
		return RunArgs{}, err
	}

	path := strings.TrimSpace(args[3])
	if path == "" {
		return RunArgs{}, fmt.Errorf("ledger_file can't be empty")
	}

	return RunArgs{
		Engine:     engine.Config{Producers: producers, Consumers: consumers, Capacity: capacity},
		LedgerPath: path,
	}, nil
}

// ParsePositiveInt parses s as an integer >= 1. name is used in errors.
func ParsePositiveInt(name, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, s)
	}
	if n < 1 {
		return 0, fmt.Errorf("%s must be at least 1, got %d", name, n)
	}
	return n, nil
}

// ValidatePositive is a prompt validator for integers >= 1.
func ValidatePositive(s string) error {
	_, err := ParsePositiveInt("value", s)
	return err
}

// ValidateCount is a prompt validator for integers >= 0.
func ValidateCount(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid number format")
	}
	if n < 0 {
		return fmt.Errorf("count can't be negative")
	}
	return nil
}
