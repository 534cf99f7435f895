package http

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"

	"adaptive-quiz-service/internal/app"
	"adaptive-quiz-service/internal/domain"
)

// WSHandler streams live leaderboard updates over websockets.
type WSHandler struct {
	service  *app.QuizService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type outboundMessage struct {
	Type    string                    `json:"type"`
	Entries []domain.LeaderboardEntry `json:"entries,omitempty"`
	Error   string                    `json:"error,omitempty"`
}

// ServeWS upgrades the request and pushes standings for the requested scope:
// an initial snapshot, then a refresh after every matching submission.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	scope := app.Scope{Subject: r.URL.Query().Get("subject")}
	if g := r.URL.Query().Get("grade"); g != "" {
		grade, err := strconv.Atoi(g)
		if err != nil {
			http.Error(w, "invalid grade", http.StatusBadRequest)
			return
		}
		scope.Grade = grade
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	updates, cancel, err := h.service.SubscribeLeaderboard(r.Context(), scope)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage{Type: "error", Error: err.Error()})
		return
	}
	defer cancel()

	done := make(chan struct{})

	// Reads only serve to detect the client going away.
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case entries, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(outboundMessage{Type: "leaderboard", Entries: entries}); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}
