package toml

import (
	"context"
	"sync"

	"github.com/mcravey/makemefly/internal/ports"
	"github.com/spf13/viper"
)

// ClientLedger enforces the per-client daily search cap. Unlike the usage
// ledger it rejects at the cap rather than on would-exceed; the two boundary
// policies are intentionally different.
type ClientLedger struct {
	path  string
	cap   int
	clock ports.Clock
	mu    *sync.Mutex
}

var _ ports.ClientLedger = (*ClientLedger)(nil)

func NewClientLedger(cfg *viper.Viper, clock ports.Clock) (*ClientLedger, error) {
	cfg, err := LoadConfig(cfg)
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	path, err := normalizeLedgerPath(cfg.GetString(clientsPathKey))
	if err != nil {
		return nil, err
	}

	return &ClientLedger{
		path:  path,
		cap:   cfg.GetInt(clientsCapKey),
		clock: clock,
		mu:    lockForPath(path),
	}, nil
}

func (l *ClientLedger) Admit(ctx context.Context, clientID string) (bool, error) {
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
		// Day rollover clears every client, not just this one.
		record = clientsSchema{Date: today}
		record.applyDefaults()
	}

	if record.Clients[clientID] >= l.cap {
		return false, nil
	}

	record.Clients[clientID]++
	if err := writeRecord(l.path, record); err != nil {
		return false, err
	}

	return true, nil
}

func (l *ClientLedger) ClientUsage(ctx context.Context, clientID string) (int, int, error) {
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
		return 0, l.cap, nil
	}

	return record.Clients[clientID], l.cap, nil
}

func (l *ClientLedger) read() (clientsSchema, error) {
	var record clientsSchema
	if err := readRecord(l.path, &record); err != nil {
		return clientsSchema{}, err
	}
	record.applyDefaults()

	return record, nil
}
