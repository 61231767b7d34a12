package handler

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves the spreadsheet download
type ExportHandler struct {
	service ExportService
}

// Service interface for dependency injection
type ExportService interface {
	Export(w io.Writer) error
}

// NewExportHandler creates a new export handler
func NewExportHandler(svc ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Export handles GET /api/pets/export requests
//
//	@Summary	Located pets as a spreadsheet
//	@Produce	application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Success	200	{file}		binary
//	@Failure	500	{object}	map[string]string
//	@Router		/api/pets/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.service.Export(&buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="pets.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
