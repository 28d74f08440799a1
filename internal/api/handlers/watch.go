package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// Watch streams selection view updates over a websocket. The client receives
// the current view on connect, one event per transition afterwards, and the
// final event carries the selection payload; the server then closes the
// connection.
func (h *SelectionHandler) Watch(w http.ResponseWriter, r *http.Request) {
	session, err := h.manager.Get(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "selection session not found", http.StatusNotFound)
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade websocket")
		return
	}
	defer ws.Close()
	log.Info().Str("sessionID", session.ID).Msg("Selection watcher connected")

	events, cancel := session.Watch()
	defer cancel()

	// Drain client frames so we notice a disconnect.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := ws.WriteJSON(session.View()); err != nil {
		return
	}

	for {
		select {
		case event, open := <-events:
			if !open {
				log.Info().Str("sessionID", session.ID).Msg("Selection session completed, closing watcher")
				return
			}
			if err := ws.WriteJSON(event); err != nil {
				log.Info().Str("sessionID", session.ID).Err(err).Msg("Selection watcher disconnected")
				return
			}
		case <-done:
			return
		}
	}
}
