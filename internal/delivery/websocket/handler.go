package websocket

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"swing-screener-backend/internal/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for now
	},
}

// Handler streams the latest snapshot to connected clients. Scans run
// on a daily schedule, so a slow poll loop is plenty.
type Handler struct {
	repo domain.SnapshotRepository
}

func NewHandler(repo domain.SnapshotRepository) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	log.Info().Str("remote", r.RemoteAddr).Msg("websocket client connected")

	// Send current state immediately so the client isn't blank until
	// the next tick.
	if err := conn.WriteJSON(h.repo.GetSnapshot()); err != nil {
		log.Warn().Err(err).Msg("websocket write failed")
		return
	}

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if err := conn.WriteJSON(h.repo.GetSnapshot()); err != nil {
			log.Debug().Err(err).Msg("websocket client gone")
			return
		}
	}
}
