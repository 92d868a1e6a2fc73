package toml

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func newUsageLedgerAt(t *testing.T, path string, cap int, clock *fixedClock) *UsageLedger {
	t.Helper()

	config := viper.New()
	config.Set("usage.path", path)
	config.Set("usage.daily_cap", cap)

	ledger, err := NewUsageLedger(config, clock)
	require.NoError(t, err)
	return ledger
}

func newClientLedgerAt(t *testing.T, path string, cap int, clock *fixedClock) *ClientLedger {
	t.Helper()

	config := viper.New()
	config.Set("clients.path", path)
	config.Set("clients.daily_cap", cap)

	ledger, err := NewClientLedger(config, clock)
	require.NoError(t, err)
	return ledger
}

func TestUsageLedgerExactCapSequence(t *testing.T) {
	t.Parallel()

	clock := &fixedClock{now: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)}
	ledger := newUsageLedgerAt(t, filepath.Join(t.TempDir(), "api_usage.toml"), 5, clock)

	for i := 0; i < 5; i++ {
		ok, err := ledger.TryIncrement(context.Background(), 1)
		require.NoError(t, err)
		assert.True(t, ok, "increment %d should succeed", i+1)
	}

	ok, err := ledger.TryIncrement(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, ok)

	used, cap, err := ledger.Usage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, used)
	assert.Equal(t, 5, cap)
}

func TestUsageLedgerRejectsOnlyWhenIncrementWouldExceed(t *testing.T) {
	t.Parallel()

	clock := &fixedClock{now: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)}
	ledger := newUsageLedgerAt(t, filepath.Join(t.TempDir(), "api_usage.toml"), 5, clock)

	ok, err := ledger.TryIncrement(context.Background(), 4)
	require.NoError(t, err)
	require.True(t, ok)

	// 4+2 > 5 rejects and records nothing.
	ok, err = ledger.TryIncrement(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, ok)

	used, _, err := ledger.Usage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, used)

	// 4+1 == 5 still fits.
	ok, err = ledger.TryIncrement(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUsageLedgerDayRolloverResetsCount(t *testing.T) {
	t.Parallel()

	clock := &fixedClock{now: time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC)}
	ledger := newUsageLedgerAt(t, filepath.Join(t.TempDir(), "api_usage.toml"), 3, clock)

	for i := 0; i < 3; i++ {
		ok, err := ledger.TryIncrement(context.Background(), 1)
		require.NoError(t, err)
		require.True(t, ok)
	}

	clock.now = clock.now.Add(2 * time.Hour)

	used, _, err := ledger.Usage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, used)

	ok, err := ledger.TryIncrement(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUsageLedgerMissingAndCorruptFilesReadAsZero(t *testing.T) {
	t.Parallel()

	clock := &fixedClock{now: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)}

	missing := newUsageLedgerAt(t, filepath.Join(t.TempDir(), "api_usage.toml"), 10, clock)
	used, cap, err := missing.Usage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, used)
	assert.Equal(t, 10, cap)

	corruptPath := filepath.Join(t.TempDir(), "api_usage.toml")
	require.NoError(t, os.WriteFile(corruptPath, []byte("not [valid toml"), 0o600))
	corrupt := newUsageLedgerAt(t, corruptPath, 10, clock)

	used, _, err = corrupt.Usage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, used)
}

func TestUsageLedgerNeverExceedsCapUnderConcurrency(t *testing.T) {
	t.Parallel()

	clock := &fixedClock{now: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)}
	ledger := newUsageLedgerAt(t, filepath.Join(t.TempDir(), "api_usage.toml"), 8, clock)

	var wg sync.WaitGroup
	granted := make(chan bool, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := ledger.TryIncrement(context.Background(), 1)
			assert.NoError(t, err)
			granted <- ok
		}()
	}
	wg.Wait()
	close(granted)

	allowed := 0
	for ok := range granted {
		if ok {
			allowed++
		}
	}
	assert.Equal(t, 8, allowed)

	used, _, err := ledger.Usage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, used)
}

func TestUsageLedgerSharedStateAcrossInstances(t *testing.T) {
	t.Parallel()

	clock := &fixedClock{now: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)}
	path := filepath.Join(t.TempDir(), "api_usage.toml")

	first := newUsageLedgerAt(t, path, 5, clock)
	second := newUsageLedgerAt(t, path, 5, clock)

	ok, err := first.TryIncrement(context.Background(), 3)
	require.NoError(t, err)
	require.True(t, ok)

	used, _, err := second.Usage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, used)
}

func TestClientLedgerAdmitUntilCapThenRejects(t *testing.T) {
	t.Parallel()

	clock := &fixedClock{now: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)}
	ledger := newClientLedgerAt(t, filepath.Join(t.TempDir(), "client_limits.toml"), 3, clock)

	for i := 0; i < 3; i++ {
		ok, err := ledger.Admit(context.Background(), "client-a")
		require.NoError(t, err)
		assert.True(t, ok, "admission %d should succeed", i+1)
	}

	ok, err := ledger.Admit(context.Background(), "client-a")
	require.NoError(t, err)
	assert.False(t, ok)

	// A different client is unaffected.
	ok, err = ledger.Admit(context.Background(), "client-b")
	require.NoError(t, err)
	assert.True(t, ok)

	used, cap, err := ledger.ClientUsage(context.Background(), "client-a")
	require.NoError(t, err)
	assert.Equal(t, 3, used)
	assert.Equal(t, 3, cap)
}

func TestClientLedgerDayRolloverClearsAllClients(t *testing.T) {
	t.Parallel()

	clock := &fixedClock{now: time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC)}
	ledger := newClientLedgerAt(t, filepath.Join(t.TempDir(), "client_limits.toml"), 2, clock)

	for _, id := range []string{"client-a", "client-a", "client-b"} {
		ok, err := ledger.Admit(context.Background(), id)
		require.NoError(t, err)
		require.True(t, ok)
	}

	clock.now = clock.now.Add(2 * time.Hour)

	used, _, err := ledger.ClientUsage(context.Background(), "client-a")
	require.NoError(t, err)
	assert.Equal(t, 0, used)

	ok, err := ledger.Admit(context.Background(), "client-a")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestClientLedgerUnknownClientReadsAsZero(t *testing.T) {
	t.Parallel()

	clock := &fixedClock{now: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)}
	ledger := newClientLedgerAt(t, filepath.Join(t.TempDir(), "client_limits.toml"), 4, clock)

	used, cap, err := ledger.ClientUsage(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.Equal(t, 0, used)
	assert.Equal(t, 4, cap)
}
