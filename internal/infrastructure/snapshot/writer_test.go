package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swing-screener-backend/internal/domain"
)

func TestWriteSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "public", "signals.json")
	w := NewFileWriter(path)

	snap := domain.Snapshot{
		MarketHealthy: true,
		Signals: []domain.Candidate{
			{Ticker: "MSFT", Score: 85, Pattern: domain.PatternFlag, CurrentPrice: 430.12, BuyAt: 432.5, Goal: 473.13, StopLoss: 408.61, RSI: 58.3},
		},
		LastUpdated: "2025-11-03 21:00:00",
	}
	require.NoError(t, w.Write(snap))

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	var got domain.Snapshot
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, snap, got)
}

func TestWriteNilSignalsBecomesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signals.json")
	require.NoError(t, NewFileWriter(path).Write(domain.Snapshot{LastUpdated: "2025-11-03 21:00:00"}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"signals": []`, "frontend expects an array, not null")
}
