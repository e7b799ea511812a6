package server

import (
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/narayan09-boop/GroceryIntelligence/constants"
	"github.com/narayan09-boop/GroceryIntelligence/internal/categorize"
	"github.com/narayan09-boop/GroceryIntelligence/internal/common"
	"github.com/narayan09-boop/GroceryIntelligence/internal/entity"
	"github.com/narayan09-boop/GroceryIntelligence/internal/nutrition"
	"github.com/narayan09-boop/GroceryIntelligence/internal/pipeline"
	"github.com/narayan09-boop/GroceryIntelligence/internal/repository"
)

// Scan outcome statuses surfaced to the UI so it can tell "blurry photo"
// apart from "readable photo with no recognizable items".
const (
	ScanStatusOK      = "ok"
	ScanStatusNoText  = "no_text"
	ScanStatusNoItems = "no_items"
)

// ScannedItem is one parsed line enriched with category and nutrition score.
type ScannedItem struct {
	Name           string  `json:"item"`
	Price          float64 `json:"price"`
	Category       string  `json:"category"`
	NutritionScore int     `json:"nutrition_score"`
}

// ScanResponse is the full result of processing one uploaded receipt image.
// RawText is always included for manual troubleshooting.
type ScanResponse struct {
	Status    string            `json:"status"`
	Items     []ScannedItem     `json:"items"`
	Total     float64           `json:"total"`
	RawText   string            `json:"raw_text"`
	Fallback  bool              `json:"fallback"`
	Nutrition nutrition.Summary `json:"nutrition"`
	ReceiptID *uuid.UUID        `json:"receipt_id,omitempty"`
}

// ReceiptHandler serves receipt scanning and retrieval.
type ReceiptHandler struct {
	processor      *pipeline.Processor
	categorizer    *categorize.Categorizer
	analyzer       *nutrition.Analyzer
	receipts       *repository.ReceiptRepository
	maxUploadBytes int64
	logger         *slog.Logger
}

func NewReceiptHandler(
	processor *pipeline.Processor,
	categorizer *categorize.Categorizer,
	analyzer *nutrition.Analyzer,
	receipts *repository.ReceiptRepository,
	maxUploadBytes int64,
	logger *slog.Logger,
) *ReceiptHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if maxUploadBytes <= 0 {
		maxUploadBytes = 10 << 20
	}
	return &ReceiptHandler{
		processor:      processor,
		categorizer:    categorizer,
		analyzer:       analyzer,
		receipts:       receipts,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// Scan accepts a multipart receipt image under the "image" field, runs the
// extraction pipeline, and returns the enriched items. With ?save=true the
// receipt and items are also persisted.
func (h *ReceiptHandler) Scan(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "BAD_UPLOAD", "multipart field 'image' is required")
		return
	}
	defer func() { _ = file.Close() }()

	if !constants.IsAllowedExt(filepath.Ext(header.Filename)) {
		RespondError(c, http.StatusBadRequest, "BAD_FORMAT", "only png, jpg, and jpeg receipts are accepted")
		return
	}

	img, err := imaging.Decode(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "BAD_IMAGE", "could not decode image")
		return
	}

	res, err := h.processor.Process(c.Request.Context(), img)
	if err != nil {
		h.logger.Error("receipt processing failed", "error", err)
		RespondError(c, http.StatusServiceUnavailable, "OCR_UNAVAILABLE", "text extraction engine failed")
		return
	}

	resp := ScanResponse{Status: ScanStatusOK, RawText: res.RawText, Fallback: res.Fallback, Items: []ScannedItem{}}
	if res.RawText == "" {
		resp.Status = ScanStatusNoText
		RespondOK(c, resp)
		return
	}
	if len(res.Items) == 0 {
		resp.Status = ScanStatusNoItems
		RespondOK(c, resp)
		return
	}

	scores := make([]int, 0, len(res.Items))
	for _, it := range res.Items {
		score := h.analyzer.Score(it.Name)
		scores = append(scores, score)
		resp.Items = append(resp.Items, ScannedItem{
			Name:           it.Name,
			Price:          it.Price,
			Category:       string(h.categorizer.Categorize(it.Name)),
			NutritionScore: score,
		})
		resp.Total += it.Price
	}
	resp.Nutrition = nutrition.Summarize(scores)

	if c.Query("save") == "true" {
		items := make([]entity.Item, 0, len(resp.Items))
		for _, it := range resp.Items {
			items = append(items, entity.Item{
				Name:           it.Name,
				Price:          it.Price,
				Category:       it.Category,
				NutritionScore: it.NutritionScore,
			})
		}
		id, err := h.receipts.SaveReceipt(c.Request.Context(), time.Now().UTC(), resp.Total, items)
		if err != nil {
			h.logger.Error("save receipt failed", "error", err)
			RespondError(c, http.StatusInternalServerError, "SAVE_FAILED", "could not persist receipt")
			return
		}
		resp.ReceiptID = &id
		RespondCreated(c, resp)
		return
	}

	RespondOK(c, resp)
}

// List returns stored receipts, newest first. ?limit=N caps the result.
func (h *ReceiptHandler) List(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := parsePositiveInt(v)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "BAD_LIMIT", "limit must be a positive integer")
			return
		}
		limit = n
	}
	recs, err := h.receipts.ListReceipts(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("list receipts failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "LIST_FAILED", "could not list receipts")
		return
	}
	RespondOK(c, recs)
}

// Items returns the line items of one receipt.
func (h *ReceiptHandler) Items(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "BAD_ID", "receipt id must be a UUID")
		return
	}
	items, err := h.receipts.ListItems(c.Request.Context(), id)
	if errors.Is(err, common.ErrNotFound) {
		RespondError(c, http.StatusNotFound, "RECEIPT_NOT_FOUND", "no receipt with that id")
		return
	}
	if err != nil {
		h.logger.Error("list items failed", "receipt_id", id, "error", err)
		RespondError(c, http.StatusInternalServerError, "LIST_FAILED", "could not list items")
		return
	}
	RespondOK(c, items)
}
