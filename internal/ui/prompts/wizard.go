package prompts

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/hance08/teller/internal/ledger"
	"github.com/hance08/teller/internal/validation"
)

const (
	seedFixed  = "Fixed (reproducible)"
	seedRandom = "Random"
)

// GenOptions are the answers of the ledger generation wizard.
type GenOptions struct {
	Count    int
	Accounts int
	Seed     int64
}

// PromptLedgerGen asks for the size of a generated ledger, starting from
// the given defaults.
func PromptLedgerGen(defaults GenOptions) (GenOptions, error) {
	opts := defaults

	count, err := PromptInput("How many entries?", strconv.Itoa(defaults.Count), validation.ValidateCount)
	if err != nil {
		return opts, err
	}
	if opts.Count, err = strconv.Atoi(count); err != nil {
		return opts, err
	}

	accounts, err := PromptInput("Over how many accounts?", strconv.Itoa(defaults.Accounts), validation.ValidatePositive)
	if err != nil {
		return opts, err
	}
	if opts.Accounts, err = strconv.Atoi(accounts); err != nil {
		return opts, err
	}

	seedMode, err := PromptSelect("Seed:", []string{seedFixed, seedRandom}, seedFixed)
	if err != nil {
		return opts, err
	}
	if seedMode == seedRandom {
		opts.Seed = rand.New(rand.NewSource(time.Now().UnixNano())).Int63()
	} else if opts.Seed == 0 {
		opts.Seed = ledger.DefaultSeed
	}

	return opts, nil
}
