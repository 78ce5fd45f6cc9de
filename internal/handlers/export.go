package handlers

import (
	"fmt"
	"net/http"

	"pumpversuch/internal/export"

	"github.com/gin-gonic/gin"
)

const (
	errExport = "failed to export table"

	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// @Summary      Download CSV
// @Description  Table as pumpversuch_daten.csv with columns "Zeit [min]" and "Wasserstand [m]".
// @Tags         export
// @Produce      text/csv
// @Success      200  {file}    binary
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/session/export.csv [get]
func (h *Handler) exportCSV(c *gin.Context) {
	raw, err := h.services.Export.CSV(c.Request.Context(), currentSession(c).ID)
	if err != nil {
		h.failSession(c, errExport, "export_csv_failed", err)
		return
	}
	attachment(c, export.CSVFileName, contentTypeCSV, raw)
}

// @Summary      Download XLSX
// @Description  Workbook with the table, derived columns, parameters and the stacked charts.
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    binary
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/session/export.xlsx [get]
func (h *Handler) exportXLSX(c *gin.Context) {
	raw, err := h.services.Export.XLSX(c.Request.Context(), currentSession(c).ID)
	if err != nil {
		h.failSession(c, errExport, "export_xlsx_failed", err)
		return
	}
	attachment(c, export.XLSXFileName, contentTypeXLSX, raw)
}

func attachment(c *gin.Context, name, contentType string, raw []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, contentType, raw)
}
