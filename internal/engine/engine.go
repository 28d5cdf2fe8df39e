// Package engine runs the producer and consumer pools that move ledger
// entries through a bounded buffer into the bank.
package engine

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hance08/teller/internal/bank"
	"github.com/hance08/teller/internal/buffer"
	"github.com/hance08/teller/internal/ledger"
	"github.com/hance08/teller/internal/logx"
)

var (
	ErrInvalidConfig = errors.New("invalid engine configuration")
	ErrAlreadyRun    = errors.New("engine has already run")
	ErrUnknownMode   = errors.New("unknown ledger mode")
)

type Config struct {
	Producers int
	Consumers int
	Capacity  int
}

func (c Config) Validate() error {
	if c.Producers < 1 {
		return fmt.Errorf("%w: need at least 1 producer, got %d", ErrInvalidConfig, c.Producers)
	}
	if c.Consumers < 1 {
		return fmt.Errorf("%w: need at least 1 consumer, got %d", ErrInvalidConfig, c.Consumers)
	}
	if c.Capacity < 1 {
		return fmt.Errorf("%w: buffer capacity must be at least 1, got %d", ErrInvalidConfig, c.Capacity)
	}
	return nil
}

// Recorder is notified after every buffer put and take with the buffer
// depth observed at that moment.
type Recorder interface {
	Produced(depth int)
	Consumed(depth int)
}

type nopRecorder struct{}

func (nopRecorder) Produced(int) {}
func (nopRecorder) Consumed(int) {}

type Option func(*Engine)

func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		if r != nil {
			e.recorder = r
		}
	}
}

// Stats summarises a finished run.
type Stats struct {
	MaxItems int
	Produced int64
	Consumed int64
	Elapsed  time.Duration
}

// Engine owns everything one run shares between goroutines: the bank, the
// ledger store, the bounded buffer and the claim counter.
type Engine struct {
	cfg      Config
	bank     *bank.Bank
	ledger   *ledger.Store
	buffer   *buffer.BoundedBuffer[ledger.Entry]
	recorder Recorder

	maxItems int64
	claimed  atomic.Int64
	produced atomic.Int64
	consumed atomic.Int64
	started  atomic.Bool
}

func New(b *bank.Bank, store *ledger.Store, cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	buf, err := buffer.New[ledger.Entry](cfg.Capacity)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:      cfg,
		bank:     b,
		ledger:   store,
		buffer:   buf,
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Run processes every entry currently in the ledger store exactly once and
// returns when all producers and consumers have finished. Consumers are
// started before producers so a buffer smaller than the ledger never stalls.
// An Engine can only run once.
func (e *Engine) Run() (Stats, error) {
	if !e.started.CompareAndSwap(false, true) {
		return Stats{}, ErrAlreadyRun
	}

	e.maxItems = int64(e.ledger.Len())
	logx.Info("ENGINE", fmt.Sprintf("starting run: entries=%d producers=%d consumers=%d capacity=%d",
		e.maxItems, e.cfg.Producers, e.cfg.Consumers, e.cfg.Capacity))

	start := time.Now()
	var wg sync.WaitGroup

	for i := 0; i < e.cfg.Consumers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			e.consume(workerID)
		}(i)
	}

	for i := 0; i < e.cfg.Producers; i++ {
		wg.Add(1)
		go func(producerID int) {
			defer wg.Done()
			e.produce(producerID)
		}(i)
	}

	wg.Wait()

	stats := Stats{
		MaxItems: int(e.maxItems),
		Produced: e.produced.Load(),
		Consumed: e.consumed.Load(),
		Elapsed:  time.Since(start),
	}
	logx.Info("ENGINE", fmt.Sprintf("run finished: produced=%d consumed=%d elapsed=%s",
		stats.Produced, stats.Consumed, stats.Elapsed))
	return stats, nil
}

// produce moves entries from the ledger into the buffer until the ledger is
// empty. The ledger lock is held only inside Pop, never across Put.
func (e *Engine) produce(producerID int) {
	logx.Debug("PRODUCER", "producer ", producerID, " started")
	n := 0
	for {
		entry, ok := e.ledger.Pop()
		if !ok {
			break
		}
		e.buffer.Put(entry)
		e.produced.Add(1)
		e.recorder.Produced(e.buffer.Len())
		n++
	}
	logx.Debug("PRODUCER", "producer ", producerID, " done after ", n, " entries")
}

// consume claims a slot on the distribution counter before every take, so
// across all consumers exactly maxItems takes happen.
func (e *Engine) consume(workerID int) {
	logx.Debug("CONSUMER", "consumer ", workerID, " started")
	n := 0
	for e.claimed.Add(1)-1 < e.maxItems {
		entry := e.buffer.Take()
		e.consumed.Add(1)
		e.recorder.Consumed(e.buffer.Len())

		if err := e.apply(workerID, entry); errors.Is(err, ErrUnknownMode) {
			logx.Error("CONSUMER", err)
		}
		n++
	}
	logx.Debug("CONSUMER", "consumer ", workerID, " done after ", n, " entries")
}

func (e *Engine) apply(workerID int, entry ledger.Entry) error {
	switch entry.Mode {
	case ledger.Deposit:
		return e.bank.Deposit(workerID, entry.ID, entry.Account, entry.Amount)
	case ledger.Withdraw:
		return e.bank.Withdraw(workerID, entry.ID, entry.Account, entry.Amount)
	case ledger.Transfer:
		return e.bank.Transfer(workerID, entry.ID, entry.Account, entry.Other, entry.Amount)
	default:
		return fmt.Errorf("%w: entry %d has mode %d", ErrUnknownMode, entry.ID, int(entry.Mode))
	}
}
