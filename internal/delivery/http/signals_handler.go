package http

import (
	"encoding/json"
	"net/http"

	"swing-screener-backend/internal/domain"
)

// SignalsHandler serves the latest scan snapshot over plain HTTP for
// clients that don't hold a websocket open.
type SignalsHandler struct {
	repo domain.SnapshotRepository
}

func NewSignalsHandler(repo domain.SnapshotRepository) *SignalsHandler {
	return &SignalsHandler{repo: repo}
}

func (h *SignalsHandler) HandleGetSignals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := h.repo.GetSnapshot()
	if snap.Signals == nil {
		snap.Signals = []domain.Candidate{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	json.NewEncoder(w).Encode(snap)
}
