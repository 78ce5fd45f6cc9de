package handlers

import (
	"bytes"
	"net/http"

	"pumpversuch/internal/models"
	"pumpversuch/internal/pumptest"

	"github.com/gin-gonic/gin"
)

const pageTitle = "Bohrprotokoll: Langzeit-Pumpversuch"

type pageData struct {
	Title       string
	Session     models.Session
	StepMinutes int
}

// page renders the protocol form. Everything after the first paint goes
// through the JSON API.
func (h *Handler) page(c *gin.Context) {
	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, pageData{
		Title:       pageTitle,
		Session:     currentSession(c),
		StepMinutes: pumptest.StepMinutes,
	})
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to render page", "page_render_failed", err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
