// internal/httpserver/ws.go
//
// GET /round/ws: submit words over a WebSocket. Each text frame is a
// {"word": "..."} object; the server answers every frame with one verdict
// object, in order. Frames are handled one at a time, so a connection is a
// single caller of its round.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait).
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1024

	// Deadline for evaluating a single frame.
	evalTimeout = 5 * time.Second
)

// upgrader accepts the configured client origin; any origin outside production.
func (s *Server) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || !s.opts.Production || origin == s.opts.ClientOrigin
		},
	}
}

// handleRoundSocket upgrades the request and serves submissions until the
// peer disconnects.
func (s *Server) handleRoundSocket(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	up := s.upgrader()
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go pinger(ctx, conn)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	log.Debug().Str("roundId", sess.ID).Msg("websocket connected")
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("roundId", sess.ID).Msg("websocket read error")
			}
			return
		}

		var v verdict
		var req submitReq
		if err := json.Unmarshal(data, &req); err != nil {
			v = verdict{Error: "bad_json"}
		} else {
			ectx, ecancel := context.WithTimeout(ctx, evalTimeout)
			v, _ = s.submit(ectx, sess, req.Word)
			ecancel()
		}

		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(v); err != nil {
			log.Debug().Err(err).Str("roundId", sess.ID).Msg("websocket write error")
			return
		}
	}
}

// pinger keeps the connection alive until ctx is done. WriteControl may be
// called concurrently with the reader loop's writes.
func pinger(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
