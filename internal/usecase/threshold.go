package usecase

import (
	"swing-screener-backend/internal/config"
	"swing-screener-backend/internal/domain"
)

// ThresholdBias derives the cycle's threshold adjustment from the
// resolved trades in the ledger. A small sample gives zero bias; a
// poor win rate tightens admission, a strong one loosens it slightly.
// Band boundaries are exclusive: a win rate exactly on a watermark
// stays in the dead band. Recomputed from scratch every cycle — the
// ledger is the only memory.
func ThresholdBias(entries []domain.LedgerEntry, strat config.Strategy) int {
	resolved, wins := 0, 0
	for _, e := range entries {
		if e.Status == domain.TradeOpen {
			continue
		}
		resolved++
		if e.Status == domain.TradeWin {
			wins++
		}
	}

	if resolved == 0 || resolved < strat.MinResolvedTrades {
		return 0
	}

	winRate := float64(wins) / float64(resolved) * 100
	switch {
	case winRate < strat.LowWinRate:
		return strat.TightenBias
	case winRate > strat.HighWinRate:
		return strat.LoosenBias
	default:
		return 0
	}
}

// EffectiveThreshold is the admission bar for the cycle.
func EffectiveThreshold(entries []domain.LedgerEntry, strat config.Strategy) int {
	return strat.BaseStrictness + ThresholdBias(entries, strat)
}
