package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"pumpversuch/internal/models"
	"pumpversuch/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	sessionHeader    = "X-Session-ID"
	sessionCookie    = "pv_session"
	sessionCookieAge = 7 * 24 * 60 * 60 // seconds

	ctxSession = "session"
)

// sessionMiddleware resolves the caller's session from the header or the
// cookie. A missing or unknown ID starts a new session.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	id := strings.TrimSpace(c.GetHeader(sessionHeader))
	if id == "" {
		id, _ = c.Cookie(sessionCookie)
	}

	var (
		sess models.Session
		err  error
	)
	if id != "" {
		sess, err = h.services.Protocol.Get(ctx, id)
	}
	if id == "" || errors.Is(err, service.ErrSessionNotFound) {
		sess, err = h.services.Protocol.Create(ctx)
		if err == nil && h.log != nil {
			h.log.Infow("session_created", "session", sess.ID, "requested", id)
		}
	}
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadSession, "session_resolve_failed", err, "session", id)
		c.Abort()
		return
	}

	c.Header(sessionHeader, sess.ID)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, sess.ID, sessionCookieAge, "/", "", false, true)

	c.Set(ctxSession, sess)
	c.Next()
}

// currentSession returns the session stored by sessionMiddleware.
func currentSession(c *gin.Context) models.Session {
	v, _ := c.Get(ctxSession)
	sess, _ := v.(models.Session)
	return sess
}

// requestLogger writes one line per request through the application logger.
func (h *Handler) requestLogger(c *gin.Context) {
	if h.log == nil {
		c.Next()
		return
	}
	start := time.Now()
	c.Next()
	h.log.Infow("http_request",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"status", c.Writer.Status(),
		"duration", time.Since(start),
		"session", c.Writer.Header().Get(sessionHeader),
	)
}
