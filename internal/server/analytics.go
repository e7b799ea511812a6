package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/narayan09-boop/GroceryIntelligence/constants"
	"github.com/narayan09-boop/GroceryIntelligence/internal/entity"
	"github.com/narayan09-boop/GroceryIntelligence/internal/repository"
)

// AnalyticsHandler serves spending aggregates for the dashboard.
type AnalyticsHandler struct {
	receipts *repository.ReceiptRepository
	logger   *slog.Logger
}

func NewAnalyticsHandler(receipts *repository.ReceiptRepository, logger *slog.Logger) *AnalyticsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyticsHandler{receipts: receipts, logger: logger}
}

// Categories returns spending grouped by grocery category, optionally
// restricted to ?from=YYYY-MM-DD&to=YYYY-MM-DD and to a single
// ?category= (canonical names and synonyms both accepted).
func (h *AnalyticsHandler) Categories(c *gin.Context) {
	from, to, err := dateWindow(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "BAD_DATE", err.Error())
		return
	}

	var only *constants.Category
	if raw := c.Query("category"); raw != "" {
		cat, ok := constants.Canonicalize(raw)
		if !ok {
			RespondError(c, http.StatusBadRequest, "BAD_CATEGORY",
				fmt.Sprintf("unknown category %q, accepted: %s", raw, strings.Join(constants.AsStringSlice(), ", ")))
			return
		}
		only = &cat
	}

	spend, err := h.receipts.SpendingByCategory(c.Request.Context(), from, to)
	if err != nil {
		h.logger.Error("category spending failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "ANALYTICS_FAILED", "could not aggregate spending")
		return
	}

	if only != nil {
		filtered := make([]entity.CategorySpend, 0, 1)
		for _, s := range spend {
			if s.Category == string(*only) {
				filtered = append(filtered, s)
			}
		}
		spend = filtered
	}
	RespondOK(c, spend)
}

// Totals returns the all-time spend.
func (h *AnalyticsHandler) Totals(c *gin.Context) {
	total, err := h.receipts.TotalSpending(c.Request.Context())
	if err != nil {
		h.logger.Error("total spending failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "ANALYTICS_FAILED", "could not compute total")
		return
	}
	RespondOK(c, gin.H{"total_spending": total})
}

// dateWindow parses the optional from/to query params. Both must be present
// or both absent.
func dateWindow(c *gin.Context) (*time.Time, *time.Time, error) {
	fromStr, toStr := c.Query("from"), c.Query("to")
	if fromStr == "" && toStr == "" {
		return nil, nil, nil
	}
	if fromStr == "" || toStr == "" {
		return nil, nil, fmt.Errorf("from and to must be provided together")
	}
	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid from date %q", fromStr)
	}
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid to date %q", toStr)
	}
	// make the window end-of-day inclusive
	to = to.Add(24*time.Hour - time.Second)
	return &from, &to, nil
}

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid positive integer %q", s)
	}
	return n, nil
}
