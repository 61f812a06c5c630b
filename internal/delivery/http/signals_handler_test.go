package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swing-screener-backend/internal/domain"
	"swing-screener-backend/internal/repository"
)

func TestHandleGetSignals(t *testing.T) {
	repo := repository.NewInMemorySnapshotRepository()
	repo.SaveSnapshot(domain.Snapshot{
		MarketHealthy: true,
		Signals: []domain.Candidate{
			{Ticker: "AAPL", Score: 90, Pattern: domain.PatternPennant, CurrentPrice: 190.5},
		},
		LastUpdated: "2025-11-03 21:00:00",
	})
	h := NewSignalsHandler(repo)

	rec := httptest.NewRecorder()
	h.HandleGetSignals(rec, httptest.NewRequest(http.MethodGet, "/api/signals", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got domain.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.MarketHealthy)
	require.Len(t, got.Signals, 1)
	assert.Equal(t, "AAPL", got.Signals[0].Ticker)
}

func TestHandleGetSignalsEmptyRepo(t *testing.T) {
	h := NewSignalsHandler(repository.NewInMemorySnapshotRepository())

	rec := httptest.NewRecorder()
	h.HandleGetSignals(rec, httptest.NewRequest(http.MethodGet, "/api/signals", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"signals":[]`, "empty state is still a valid payload")
}

func TestHandleGetSignalsRejectsPost(t *testing.T) {
	h := NewSignalsHandler(repository.NewInMemorySnapshotRepository())

	rec := httptest.NewRecorder()
	h.HandleGetSignals(rec, httptest.NewRequest(http.MethodPost, "/api/signals", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
