package handlers

import (
	"context"
	"strconv"
	"time"

	"pumpversuch/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 1 * time.Second
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000 // 10s in ms
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// snapshot is what a connected page redraws from.
type snapshot struct {
	Session  models.Session  `json:"session"`
	Analysis models.Analysis `json:"analysis"`
}

// The zero CheckOrigin only accepts same-host origins, which is what the page uses.
var upgrader = websocket.Upgrader{}

// @Summary      Session stream
// @Description  WebSocket that pushes {"type":"snapshot","data":{session, analysis}} on connect and every interval.
// @Tags         session
// @Param        interval     query  string  false  "Go duration, at most 10s"  example(2s)
// @Param        interval_ms  query  int     false  "Milliseconds, at most 10000"
// @Success      101  {string}  string  "Switching Protocols"
// @Router       /api/v1/ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	interval := h.parseInterval(c)
	sessionID := currentSession(c).ID

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err, "session", sessionID)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go h.startReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	ctx := c.Request.Context()
	if err := h.sendSnapshot(ctx, conn, sessionID); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "err", err, "session", sessionID)
		}
		return
	}

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case <-ticker.C:
			if err := h.sendSnapshot(ctx, conn, sessionID); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err, "session", sessionID)
				}
				return
			}
		}
	}
}

// parseInterval reads ?interval=2s or ?interval_ms=2000 with bounds.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}

	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}

	return defaultInterval
}

// startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Debugw("ws_read_closed", "err", err)
			}
			return
		}
	}
}

// sendSnapshot loads the session as it is now and writes it with a write deadline.
func (h *Handler) sendSnapshot(ctx context.Context, conn *websocket.Conn, sessionID string) error {
	sess, err := h.services.Protocol.Get(ctx, sessionID)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_get_session_failed", "err", err, "session", sessionID)
		}
		return err
	}
	a, err := h.services.Analysis.Analyze(ctx, sessionID)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(wsEnvelope{Type: "snapshot", Data: snapshot{Session: sess, Analysis: a}})
}

