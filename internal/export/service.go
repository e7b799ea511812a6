package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/narayan09-boop/GroceryIntelligence/internal/common"
	"github.com/narayan09-boop/GroceryIntelligence/internal/repository"
)

// Service is a tiny façade over the receipt repository that produces XLSX
// bytes for exports.
type Service struct {
	receipts *repository.ReceiptRepository
	logger   *slog.Logger
}

func NewService(receipts *repository.ReceiptRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{receipts: receipts, logger: logger}
}

// ExportItemsXLSX returns an XLSX workbook (as bytes) of all items purchased
// in the given date window.
func (s *Service) ExportItemsXLSX(ctx context.Context, from, to time.Time) ([]byte, error) {
	start := time.Now()

	items, err := s.receipts.ItemsByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Items"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if defIdx, _ := f.GetSheetIndex("Sheet1"); defIdx != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{
		"Purchase Date",
		"Item",
		"Price",
		"Category",
		"Nutrition Score",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, it := range items {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, it.PurchaseDate.Format("2006-01-02"))
		write(2, it.Name)
		write(3, it.Price)
		write(4, it.Category)
		write(5, it.NutritionScore)
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, common.NewAppError("EXPORT_ENCODE",
			fmt.Sprintf("write workbook: %v", err), common.ErrInternal)
	}

	s.logger.Info("items exported",
		"rows", len(items),
		"bytes", buf.Len(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
