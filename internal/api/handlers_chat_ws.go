// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/pelismatch/internal/logging"
	"github.com/tomtom215/pelismatch/internal/metrics"
)

const (
	wsWriteWait      = 10 * time.Second
	wsPongWait       = 60 * time.Second
	wsPingPeriod     = (wsPongWait * 9) / 10
	wsMaxMessageSize = 4 << 10
	wsSendBuffer     = 16
)

// wsFrame is an outbound WebSocket message: a reply or an error.
type wsFrame struct {
	*ChatResponse
	Error *APIError `json:"error,omitempty"`
}

// ChatWebSocket runs a conversation over a WebSocket. Each inbound
// {"message": "..."} frame is one turn on the connection's session token;
// replies are ChatResponse frames. Turns are processed in order.
//
// GET /api/v1/chat/ws
func (h *Handler) ChatWebSocket(w http.ResponseWriter, r *http.Request) {
	token, _ := h.sessionToken(r)

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		logging.Ctx(r.Context()).Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	metrics.WSConnections.Inc()
	defer metrics.WSConnections.Dec()

	c := &chatConn{
		h:     h,
		conn:  conn,
		token: token,
		send:  make(chan wsFrame, wsSendBuffer),
		done:  make(chan struct{}),
	}
	ctx := logging.ContextWithSession(r.Context(), token)
	logging.Ctx(ctx).Debug().Msg("Chat WebSocket connected")

	go c.writePump()
	c.readPump(ctx)
	<-c.done
}

// getUpgrader creates a WebSocket upgrader with origin checking and timeouts.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin accepts origins listed in security.cors_origins. A
// missing Origin is accepted only when the list contains "*".
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	for _, allowed := range h.config.Security.CORSOrigins {
		if allowed == "*" || (origin != "" && strings.EqualFold(allowed, origin)) {
			return true
		}
	}
	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}

type chatConn struct {
	h     *Handler
	conn  *websocket.Conn
	token string
	send  chan wsFrame
	done  chan struct{} // closed when writePump exits
}

// readPump reads turns until the client goes away, then closes send.
func (c *chatConn) readPump(ctx context.Context) {
	defer close(c.send)

	c.conn.SetReadLimit(wsMaxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(wsPongWait)); err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("failed to set read deadline")
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		var req ChatRequest
		if err := c.conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Ctx(ctx).Debug().Err(err).Msg("chat websocket closed")
			}
			return
		}
		if err := c.conn.SetReadDeadline(time.Now().Add(wsPongWait)); err != nil {
			return
		}

		frame := c.handle(ctx, req)
		select {
		case c.send <- frame:
		case <-c.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (c *chatConn) handle(ctx context.Context, req ChatRequest) wsFrame {
	if strings.TrimSpace(req.Message) == "" {
		return wsFrame{Error: &APIError{Code: ErrCodeValidationFailed, Message: "message is required"}}
	}
	if len(req.Message) > wsMaxMessageSize {
		return wsFrame{Error: &APIError{Code: ErrCodeValidationFailed, Message: "message is too long"}}
	}

	reply, err := c.h.turn(ctx, c.token, req.Message)
	if err != nil {
		cl := classify(err)
		logging.Ctx(ctx).Warn().Err(err).Msg("chat websocket turn failed")
		return wsFrame{Error: &APIError{Code: cl.code, Message: cl.message}}
	}
	return wsFrame{ChatResponse: &ChatResponse{Reply: *reply, SessionToken: c.token}}
}

// writePump writes queued frames and keeps the connection alive with pings.
func (c *chatConn) writePump() {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
		close(c.done)
	}()

	for {
		select {
		case frame, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteJSON(frame); err != nil {
				logging.Debug().Err(err).Msg("failed to write chat frame")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// sanitizeLogValue truncates and strips control characters from a header
// value before it is logged.
func sanitizeLogValue(v string) string {
	const maxLen = 100
	if len(v) > maxLen {
		v = v[:maxLen]
	}
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, v)
}
