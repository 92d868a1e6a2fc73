package ports

import "context"

// UsageLedger meters upstream API calls against a global daily cap. Both
// operations are atomic with respect to concurrent callers in this process.
type UsageLedger interface {
	// Usage reports (calls used today, daily cap).
	Usage(ctx context.Context) (used int, cap int, err error)
	// TryIncrement reserves n calls. It returns false, without recording
	// anything, when used+n would exceed the cap.
	TryIncrement(ctx context.Context, n int) (bool, error)
}

// ClientLedger meters whole searches per client identifier against a smaller
// daily cap.
type ClientLedger interface {
	// Admit records one search for the client. It returns false when the
	// client is already at the cap.
	Admit(ctx context.Context, clientID string) (bool, error)
	// ClientUsage reports (searches used today, daily cap) for one client.
	ClientUsage(ctx context.Context, clientID string) (used int, cap int, err error)
}
