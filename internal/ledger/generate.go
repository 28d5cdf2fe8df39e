package ledger

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"

	"github.com/hance08/teller/internal/constants"
)

// DefaultSeed keeps generated ledgers reproducible between runs.
const DefaultSeed = constants.DefaultLedgerSeed

const maxGeneratedAmount = 1000

// Generate returns n random entries over accounts ids [0, accounts).
func Generate(rng *rand.Rand, n, accounts int) []Entry {
	if accounts < 1 {
		accounts = 1
	}

	entries := make([]Entry, n)
	for i := range entries {
		e := Entry{
			ID:      i,
			Account: rng.Intn(accounts),
			Amount:  uint64(rng.Intn(maxGeneratedAmount) + 1),
			Mode:    Mode(rng.Intn(3)),
		}
		if e.Mode == Transfer {
			e.Other = rng.Intn(accounts)
		}
		entries[i] = e
	}
	return entries
}

// Write encodes entries in the ledger file format, one record per line.
func Write(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintf(bw, "%d %d %d %d\n", e.Account, e.Other, e.Amount, int(e.Mode)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// CountByMode tallies entries per mode.
func CountByMode(entries []Entry) map[Mode]int {
	counts := make(map[Mode]int, 3)
	for _, e := range entries {
		counts[e.Mode]++
	}
	return counts
}
