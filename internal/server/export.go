package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/narayan09-boop/GroceryIntelligence/internal/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves spreadsheet downloads.
type ExportHandler struct {
	svc    *export.Service
	logger *slog.Logger
}

func NewExportHandler(svc *export.Service, logger *slog.Logger) *ExportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportHandler{svc: svc, logger: logger}
}

// Items streams an XLSX of items in the requested window; without params the
// export covers everything to date.
func (h *ExportHandler) Items(c *gin.Context) {
	from, to, err := dateWindow(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "BAD_DATE", err.Error())
		return
	}
	start := time.Time{}
	end := time.Now().UTC()
	if from != nil {
		start = *from
	}
	if to != nil {
		end = *to
	}

	data, err := h.svc.ExportItemsXLSX(c.Request.Context(), start, end)
	if err != nil {
		h.logger.Error("export failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "EXPORT_FAILED", "could not build export")
		return
	}

	name := fmt.Sprintf("grocery-items-%s.xlsx", end.Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, xlsxContentType, data)
}
