package toml

import (
	"context"
	"sync"

	"github.com/mcravey/makemefly/internal/ports"
	"github.com/spf13/viper"
)

// UsageLedger enforces the global daily API-call cap. The full
// read-roll-over-test-write cycle runs under one lock so two workers can
// never both observe room for the last call.
type UsageLedger struct {
	path  string
	cap   int
	clock ports.Clock
	mu    *sync.Mutex
}

var _ ports.UsageLedger = (*UsageLedger)(nil)

func NewUsageLedger(cfg *viper.Viper, clock ports.Clock) (*UsageLedger, error) {
	cfg, err := LoadConfig(cfg)
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	path, err := normalizeLedgerPath(cfg.GetString(usagePathKey))
	if err != nil {
		return nil, err
	}

	return &UsageLedger{
		path:  path,
		cap:   cfg.GetInt(usageCapKey),
		clock: clock,
		mu:    lockForPath(path),
	}, nil
}

func (l *UsageLedger) Usage(ctx context.Context) (int, int, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	record, err := l.read()
	if err != nil {
		return 0, 0, err
	}

	if record.Date != dayKey(l.clock.Now()) {
		record = usageSchema{Date: dayKey(l.clock.Now())}
		if err := writeRecord(l.path, record); err != nil {
			return 0, 0, err
		}
	}

	return record.Calls, l.cap, nil
}

func (l *UsageLedger) TryIncrement(ctx context.Context, n int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	record, err := l.read()
	if err != nil {
		return false, err
	}

	today := dayKey(l.clock.Now())
	if record.Date != today {
		record = usageSchema{Date: today}
	}

	if record.Calls+n > l.cap {
		// Persist the possibly rolled-over state but record nothing.
		if err := writeRecord(l.path, record); err != nil {
			return false, err
		}
		return false, nil
	}

	record.Calls += n
	if err := writeRecord(l.path, record); err != nil {
		return false, err
	}

	return true, nil
}

func (l *UsageLedger) read() (usageSchema, error) {
	var record usageSchema
	if err := readRecord(l.path, &record); err != nil {
		return usageSchema{}, err
	}

	return record, nil
}
