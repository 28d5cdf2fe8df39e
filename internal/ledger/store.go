package ledger

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
	"unicode"

	"github.com/pkg/errors"
)

const fieldsPerRecord = 4

// Store is the ordered collection of loaded entries. Producers pop from the
// front concurrently; every access goes through mu.
type Store struct {
	mu      sync.Mutex
	pending []Entry
	total   int
}

func NewStore() *Store {
	return &Store{}
}

// Load opens path and appends every record it contains. See LoadFrom.
func (s *Store) Load(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer f.Close()

	return s.LoadFrom(f)
}

type token struct {
	text string
	line int
}

// wordScanner splits a ledger into whitespace separated fields, so record
// layout across lines does not matter, and remembers the line each field
// started on.
type wordScanner struct {
	*bufio.Scanner
	line     int
	nextLine int
}

func newWordScanner(r io.Reader) *wordScanner {
	ws := &wordScanner{nextLine: 1}
	ws.Scanner = bufio.NewScanner(r)
	ws.Scanner.Split(ws.split)
	return ws
}

func (ws *wordScanner) split(data []byte, atEOF bool) (int, []byte, error) {
	advance, word, err := bufio.ScanWords(data, atEOF)
	if word != nil {
		lead := len(data) - len(bytes.TrimLeftFunc(data, unicode.IsSpace))
		ws.line = ws.nextLine + bytes.Count(data[:lead], newline)
	}
	ws.nextLine += bytes.Count(data[:advance], newline)
	return advance, word, err
}

var newline = []byte{'\n'}

// LoadFrom reads whitespace-separated integers from r, four per record
// (account, other, amount, mode), and appends each record with the next
// sequential ID. Parsing stops at the first malformed record and returns a
// *MalformedRecordError; records loaded before it are kept. The returned
// count is the number of records appended by this call.
func (s *Store) LoadFrom(r io.Reader) (int, error) {
	scanner := newWordScanner(r)

	var (
		pending []token
		loaded  int
	)

	for scanner.Scan() {
		pending = append(pending, token{text: scanner.Text(), line: scanner.line})
		if len(pending) < fieldsPerRecord {
			continue
		}

		entry, err := parseRecord(pending)
		if err != nil {
			return loaded, &MalformedRecordError{
				Line:   pending[0].line,
				Record: s.Total(),
				Reason: err.Error(),
			}
		}
		s.append(entry)
		loaded++
		pending = pending[:0]
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return loaded, &MalformedRecordError{
				Line:   scanner.nextLine,
				Record: s.Total(),
				Reason: "field too long",
			}
		}
		return loaded, errors.Wrap(err, "read ledger")
	}

	if len(pending) > 0 {
		return loaded, &MalformedRecordError{
			Line:   pending[0].line,
			Record: s.Total(),
			Reason: "incomplete record: expected " + strconv.Itoa(fieldsPerRecord) + " fields, got " + strconv.Itoa(len(pending)),
		}
	}

	return loaded, nil
}

func parseRecord(fields []token) (Entry, error) {
	account, err := strconv.Atoi(fields[0].text)
	if err != nil {
		return Entry{}, errors.Errorf("account %q is not an integer", fields[0].text)
	}
	if account < 0 {
		return Entry{}, errors.Errorf("account %d is negative", account)
	}

	other, err := strconv.Atoi(fields[1].text)
	if err != nil {
		return Entry{}, errors.Errorf("other account %q is not an integer", fields[1].text)
	}

	amount, err := strconv.ParseUint(fields[2].text, 10, 63)
	if err != nil {
		return Entry{}, errors.Errorf("amount %q is not a non-negative integer", fields[2].text)
	}

	m, err := strconv.Atoi(fields[3].text)
	if err != nil {
		return Entry{}, errors.Errorf("mode %q is not an integer", fields[3].text)
	}
	mode := Mode(m)
	if !mode.Valid() {
		return Entry{}, errors.Errorf("mode %d is not 0 (deposit), 1 (withdraw) or 2 (transfer)", m)
	}
	if mode == Transfer && other < 0 {
		return Entry{}, errors.Errorf("transfer destination %d is negative", other)
	}

	return Entry{Account: account, Other: other, Amount: amount, Mode: mode}, nil
}

func (s *Store) append(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.total
	s.pending = append(s.pending, e)
	s.total++
}

// Pop removes and returns the front entry. It reports false once the store
// has been drained.
func (s *Store) Pop() (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) == 0 {
		return Entry{}, false
	}
	e := s.pending[0]
	s.pending[0] = Entry{}
	s.pending = s.pending[1:]
	return e, true
}

// Len returns the number of entries not yet popped.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Total returns the number of entries ever loaded into the store. After
// loading this is the number of entries the consumers must process.
func (s *Store) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// Entries returns a copy of the entries not yet popped.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.pending))
	copy(out, s.pending)
	return out
}
