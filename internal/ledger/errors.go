package ledger

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrSourceUnavailable = errors.New("ledger source unavailable")
	ErrMalformedRecord   = errors.New("malformed ledger record")
)

// MalformedRecordError reports the first record that could not be parsed.
// Records before it stay loaded.
type MalformedRecordError struct {
	Line   int
	Record int
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("%v: record %d (line %d): %s", ErrMalformedRecord, e.Record, e.Line, e.Reason)
}

func (e *MalformedRecordError) Unwrap() error {
	return ErrMalformedRecord
}
