package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate creates the archive tables. No external migration tool; the
// schema is small and the statements are idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`create table if not exists scan_cycles (
			id bigserial primary key,
			ran_at timestamptz not null default now(),
			market_healthy boolean not null,
			threshold int not null,
			bias int not null,
			signal_count int not null
		);`,
		`create table if not exists scan_signals (
			id bigserial primary key,
			cycle_id bigint not null references scan_cycles(id) on delete cascade,
			ticker text not null,
			score int not null,
			pattern text not null,
			price double precision not null,
			buy_at double precision not null,
			goal double precision not null,
			stop_loss double precision not null,
			rsi double precision not null
		);`,
		`create index if not exists scan_signals_cycle_idx on scan_signals(cycle_id);`,
		`create index if not exists scan_signals_ticker_idx on scan_signals(ticker);`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
