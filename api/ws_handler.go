package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/diyhub/backend/events"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
	wsBuffer     = 16
)

type wsHandler struct {
	logger   zerolog.Logger
	hub      *events.Hub
	upgrader websocket.Upgrader
}

func newWSHandler(deps handlerDeps) wsHandler {
	logger, _ := deps.forHandler("wsHandler")
	origins := deps.acceptedOrigins

	return wsHandler{
		logger: logger,
		hub:    deps.hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || originAllowed(origins, origin)
			},
		},
	}
}

// serveWS streams comment events. ?topic=<type>_<id>_comments narrows the feed to one target.
func (h wsHandler) serveWS() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		topic := strings.TrimSpace(r.URL.Query().Get("topic"))
		if topic == "" {
			topic = events.AllTopics
		}

		// Subscribe before the upgrade so nothing published after the handshake is missed
		subID, ch := h.hub.Subscribe(topic, wsBuffer)

		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.hub.Unsubscribe(topic, subID)
			h.logger.Warn().Err(err).Msg("websocket upgrade failed")
			return
		}

		logger := h.logger.With().Str("topic", topic).Str("subscriber", subID).Logger()
		logger.Debug().Msg("websocket connected")

		go h.readPump(conn, topic, subID)
		h.writePump(conn, ch, logger)
	}
}

// readPump discards client messages and unsubscribes once the peer goes away, which closes ch
// and ends writePump
func (h wsHandler) readPump(conn *websocket.Conn, topic, subID string) {
	defer h.hub.Unsubscribe(topic, subID)

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h wsHandler) writePump(conn *websocket.Conn, ch <-chan events.Event, logger zerolog.Logger) {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
		logger.Debug().Msg("websocket closed")
	}()

	for {
		select {
		case event, ok := <-ch:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
