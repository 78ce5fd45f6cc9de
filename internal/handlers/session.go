package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"pumpversuch/internal/charts"
	"pumpversuch/internal/export"
	"pumpversuch/internal/models"
	"pumpversuch/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	errLoadSession     = "failed to load session"
	errSaveSession     = "failed to save session"
	errAnalyze         = "failed to analyze table"
	errInvalidBodyPref = "invalid body: "
	errInvalidIndex    = "row index must be a non-negative integer"

	maxImportBytes = 1 << 20 // 1 MB
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// failSession maps domain errors to client errors; everything else is a 500.
func (h *Handler) failSession(c *gin.Context, userMsg, logKey string, err error, kv ...interface{}) {
	sessionID := currentSession(c).ID
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidParameters),
		errors.Is(err, service.ErrRowOutOfRange),
		errors.Is(err, export.ErrMalformedCSV):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, charts.ErrNoSamples):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, userMsg, logKey, err, append(kv, "session", sessionID)...)
	}
}

// Respond with the session and its analysis (best-effort).
func (h *Handler) respondWithSession(c *gin.Context, sess models.Session) {
	resp := gin.H{"status": statusOK, "session": sess}
	if a, err := h.services.Analysis.Analyze(c.Request.Context(), sess.ID); err == nil {
		resp["analysis"] = a
	}
	c.JSON(http.StatusOK, resp)
}

// ParametersRequest is the form payload of PUT /session/parameters.
type ParametersRequest struct {
	// Optional; blank keeps the current name
	ProjectName string `json:"project_name" example:"BV Müller - Brunnen 1"`
	// Static water level in metres below ground
	StaticWaterLevel *float64 `json:"static_water_level" binding:"required" example:"2.1"`
	// Target flow rate in m³/h
	TargetFlowRate *float64 `json:"target_flow_rate" binding:"required" example:"5"`
	// Pumping phase in hours, at least 1
	PumpDurationHours *int `json:"pump_duration_hours" binding:"required" example:"8"`
	// Whole test in hours, at least the pumping phase
	TotalDurationHours *int `json:"total_duration_hours" binding:"required" example:"9"`
}

func (r ParametersRequest) update() service.SessionUpdate {
	return service.SessionUpdate{
		ProjectName: r.ProjectName,
		Parameters: models.Parameters{
			StaticWaterLevel:   *r.StaticWaterLevel,
			TargetFlowRate:     *r.TargetFlowRate,
			PumpDurationHours:  *r.PumpDurationHours,
			TotalDurationHours: *r.TotalDurationHours,
		},
	}
}

// SampleRequest is one measurement row.
type SampleRequest struct {
	TimeMinutes *int     `json:"time_min" binding:"required" example:"15"`
	WaterLevel  *float64 `json:"water_level_m" binding:"required" example:"2.77"`
}

func (r SampleRequest) sample() models.Sample {
	return models.Sample{TimeMinutes: *r.TimeMinutes, WaterLevel: *r.WaterLevel}
}

// SamplesRequest replaces the whole table.
type SamplesRequest struct {
	Samples []models.Sample `json:"samples"`
}

// @Summary      Current session
// @Description  Returns parameters, table and derived analysis. Creates a session when none is known.
// @Tags         session
// @Produce      json
// @Param        X-Session-ID  header  string  false  "Session ID (alternatively cookie pv_session)"
// @Success      200  {object}  map[string]interface{}  "status, session, analysis"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/session [get]
func (h *Handler) getSession(c *gin.Context) {
	h.respondWithSession(c, currentSession(c))
}

// @Summary      End session
// @Description  Deletes the session and its log and clears the cookie. The next request starts a new one.
// @Tags         session
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/session [delete]
func (h *Handler) deleteSession(c *gin.Context) {
	if err := h.services.Protocol.Delete(c.Request.Context(), currentSession(c).ID); err != nil {
		h.failSession(c, errSaveSession, "session_delete_failed", err)
		return
	}
	c.Header(sessionHeader, "")
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

// @Summary      Set parameters
// @Description  Changing static level or a duration regenerates the table; project name and flow rate keep edits.
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        payload  body  ParametersRequest  true  "Form values"
// @Success      200  {object}  map[string]interface{}  "status, session, analysis"
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/session/parameters [put]
func (h *Handler) setParameters(c *gin.Context) {
	var req ParametersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	sess, err := h.services.Protocol.SetParameters(c.Request.Context(), currentSession(c).ID, req.update())
	if err != nil {
		h.failSession(c, errSaveSession, "session_parameters_failed", err)
		return
	}
	h.respondWithSession(c, sess)
}

// @Summary      Reset table
// @Description  Discards edits and writes the default table for the current parameters.
// @Tags         session
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, session, analysis"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/session/reset [post]
func (h *Handler) resetSession(c *gin.Context) {
	sess, err := h.services.Protocol.Reset(c.Request.Context(), currentSession(c).ID)
	if err != nil {
		h.failSession(c, errSaveSession, "session_reset_failed", err)
		return
	}
	h.respondWithSession(c, sess)
}

// @Summary      Replace table
// @Tags         samples
// @Accept       json
// @Produce      json
// @Param        payload  body  SamplesRequest  true  "Rows in display order"
// @Success      200  {object}  map[string]interface{}  "status, session, analysis"
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/session/samples [put]
func (h *Handler) replaceSamples(c *gin.Context) {
	var req SamplesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	sess, err := h.services.Protocol.ReplaceSamples(c.Request.Context(), currentSession(c).ID, req.Samples)
	if err != nil {
		h.failSession(c, errSaveSession, "samples_replace_failed", err)
		return
	}
	h.respondWithSession(c, sess)
}

// @Summary      Add row
// @Description  Appends the given row, or without a body a row 15 minutes after the last one.
// @Tags         samples
// @Accept       json
// @Produce      json
// @Param        payload  body  SampleRequest  false  "Row to append"
// @Success      200  {object}  map[string]interface{}  "status, session, analysis"
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/session/samples [post]
func (h *Handler) addSample(c *gin.Context) {
	var row *models.Sample
	if c.Request.ContentLength != 0 {
		var req SampleRequest
		err := c.ShouldBindJSON(&req)
		switch {
		case err == nil:
			s := req.sample()
			row = &s
		case errors.Is(err, io.EOF):
			// empty chunked body: continue the table
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
			return
		}
	}
	sess, err := h.services.Protocol.AddSample(c.Request.Context(), currentSession(c).ID, row)
	if err != nil {
		h.failSession(c, errSaveSession, "samples_add_failed", err)
		return
	}
	h.respondWithSession(c, sess)
}

// @Summary      Edit row
// @Tags         samples
// @Accept       json
// @Produce      json
// @Param        index    path  int            true  "Zero-based row index"
// @Param        payload  body  SampleRequest  true  "New values"
// @Success      200  {object}  map[string]interface{}  "status, session, analysis"
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/session/samples/{index} [patch]
func (h *Handler) updateSample(c *gin.Context) {
	index, ok := rowIndex(c)
	if !ok {
		return
	}
	var req SampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	sess, err := h.services.Protocol.UpdateSample(c.Request.Context(), currentSession(c).ID, index, req.sample())
	if err != nil {
		h.failSession(c, errSaveSession, "samples_update_failed", err)
		return
	}
	h.respondWithSession(c, sess)
}

// @Summary      Delete row
// @Tags         samples
// @Produce      json
// @Param        index  path  int  true  "Zero-based row index"
// @Success      200  {object}  map[string]interface{}  "status, session, analysis"
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/session/samples/{index} [delete]
func (h *Handler) removeSample(c *gin.Context) {
	index, ok := rowIndex(c)
	if !ok {
		return
	}
	sess, err := h.services.Protocol.RemoveSample(c.Request.Context(), currentSession(c).ID, index)
	if err != nil {
		h.failSession(c, errSaveSession, "samples_remove_failed", err)
		return
	}
	h.respondWithSession(c, sess)
}

// @Summary      Import CSV
// @Description  Replaces the table with a file in the export format. Accepts a raw text/csv body or a multipart field "file".
// @Tags         samples
// @Accept       text/csv
// @Accept       multipart/form-data
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, session, analysis"
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/session/samples/import [post]
func (h *Handler) importCSV(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes)

	var body io.Reader = c.Request.Body
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
			return
		}
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
			return
		}
		defer func() { _ = f.Close() }()
		body = f
	}

	sess, err := h.services.Protocol.ImportCSV(c.Request.Context(), currentSession(c).ID, body)
	if err != nil {
		h.failSession(c, errSaveSession, "samples_import_failed", err)
		return
	}
	h.respondWithSession(c, sess)
}

// @Summary      Analysis
// @Description  Flow rate and drawdown per row, deepest point and summary figures.
// @Tags         session
// @Produce      json
// @Success      200  {object}  models.Analysis
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/session/analysis [get]
func (h *Handler) getAnalysis(c *gin.Context) {
	a, err := h.services.Analysis.Analyze(c.Request.Context(), currentSession(c).ID)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errAnalyze, "analysis_failed", err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func rowIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidIndex})
		return 0, false
	}
	return index, true
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}
