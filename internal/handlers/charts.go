package handlers

import (
	"net/http"
	"strconv"

	"pumpversuch/internal/charts"
	"pumpversuch/internal/service"

	"github.com/gin-gonic/gin"
)

const errRenderChart = "failed to render chart"

// @Summary      Chart
// @Description  PNG of one diagram, or all of them stacked. The stack holds level and flow; hysteresis=true adds the third chart.
// @Tags         charts
// @Produce      png
// @Param        kind        path   string  true   "Diagram"  Enums(level,flow,hysteresis,stack)
// @Param        hysteresis  query  bool    false  "Stack only: include the Q-s chart"
// @Success      200  {file}    binary
// @Failure      400  {object}  map[string]string
// @Failure      422  {object}  map[string]string  "table is empty"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/session/charts/{kind} [get]
func (h *Handler) getChart(c *gin.Context) {
	kind, err := charts.ParseKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req := service.ChartRequest{Kind: kind}
	if qs := c.Query("hysteresis"); qs != "" {
		if req.WithHysteresis, err = strconv.ParseBool(qs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'hysteresis'; use true or false"})
			return
		}
	}

	png, err := h.services.Charts.Render(c.Request.Context(), currentSession(c).ID, req)
	if err != nil {
		h.failSession(c, errRenderChart, "chart_render_failed", err, "kind", kind)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}
