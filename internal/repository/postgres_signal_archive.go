package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"swing-screener-backend/internal/domain"
)

// PostgresSignalArchive records every published cycle so the signal
// history can be studied later (hit rates per pattern, score
// calibration). Optional: only wired when DATABASE_URL is set.
type PostgresSignalArchive struct {
	pool *pgxpool.Pool
}

func NewPostgresSignalArchive(pool *pgxpool.Pool) *PostgresSignalArchive {
	return &PostgresSignalArchive{pool: pool}
}

func (r *PostgresSignalArchive) SaveCycle(ctx context.Context, snap domain.Snapshot, threshold, bias int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin archive tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var cycleID int64
	err = tx.QueryRow(ctx, `
		insert into scan_cycles(market_healthy, threshold, bias, signal_count)
		values ($1, $2, $3, $4)
		returning id
	`, snap.MarketHealthy, threshold, bias, len(snap.Signals)).Scan(&cycleID)
	if err != nil {
		return fmt.Errorf("insert cycle: %w", err)
	}

	for _, sig := range snap.Signals {
		_, err = tx.Exec(ctx, `
			insert into scan_signals(cycle_id, ticker, score, pattern, price, buy_at, goal, stop_loss, rsi)
			values ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, cycleID, sig.Ticker, sig.Score, string(sig.Pattern), sig.CurrentPrice, sig.BuyAt, sig.Goal, sig.StopLoss, sig.RSI)
		if err != nil {
			return fmt.Errorf("insert signal %s: %w", sig.Ticker, err)
		}
	}

	return tx.Commit(ctx)
}
