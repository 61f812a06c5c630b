package domain

import "context"

// SnapshotRepository holds the latest published snapshot for delivery.
type SnapshotRepository interface {
	SaveSnapshot(Snapshot)
	GetSnapshot() Snapshot
}

// UniverseProvider returns the deduplicated, sorted set of tickers to
// scan. Implementations recover from fetch failures internally by
// returning a fixed fallback list; this call never fails.
type UniverseProvider interface {
	Tickers(ctx context.Context) []string
}

// BarProvider fetches the daily history for one instrument.
type BarProvider interface {
	DailyBars(ctx context.Context, ticker, lookback string) (*PriceSeries, error)
}

// LedgerStore persists the trade ledger. Load returns an empty slice
// for a missing file; corruption surfaces as an error so the caller
// can apply its recovery policy.
type LedgerStore interface {
	Load() ([]LedgerEntry, error)
	Save([]LedgerEntry) error
}

// SnapshotWriter publishes the cycle result for downstream consumers.
type SnapshotWriter interface {
	Write(Snapshot) error
}

// SignalArchive optionally records each cycle's surfaced signals for
// later study. Failures are logged and never abort a cycle.
type SignalArchive interface {
	SaveCycle(ctx context.Context, snap Snapshot, threshold, bias int) error
}
