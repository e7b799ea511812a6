package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/narayan09-boop/GroceryIntelligence/internal/common"
	"github.com/narayan09-boop/GroceryIntelligence/internal/entity"
)

// ReceiptRepository stores receipts and their line items.
type ReceiptRepository struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewReceiptRepository(db *sqlx.DB, logger *slog.Logger) *ReceiptRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReceiptRepository{db: db, logger: logger}
}

// SaveReceipt inserts a receipt and its items in one transaction and returns
// the new receipt ID. Item IDs, receipt links, and timestamps are assigned
// here; the caller supplies name, price, category, and nutrition score.
func (r *ReceiptRepository) SaveReceipt(ctx context.Context, date time.Time, total float64, items []entity.Item) (uuid.UUID, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	receiptID := uuid.New()
	now := time.Now().UTC()

	insertReceipt := r.db.Rebind(
		`INSERT INTO receipts (id, date, total_amount, created_at) VALUES (?, ?, ?, ?)`)
	if _, err := tx.ExecContext(ctx, insertReceipt, receiptID.String(), date.UTC(), total, now); err != nil {
		return uuid.Nil, fmt.Errorf("insert receipt: %w", err)
	}

	insertItem := r.db.Rebind(
		`INSERT INTO items (id, receipt_id, position, item_name, price, category, nutrition_score, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	for pos, it := range items {
		if _, err := tx.ExecContext(ctx, insertItem,
			uuid.New().String(), receiptID.String(), pos, it.Name, it.Price, it.Category, it.NutritionScore, now); err != nil {
			return uuid.Nil, fmt.Errorf("insert item %q: %w", it.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("commit: %w", err)
	}
	r.logger.Info("receipt saved", "receipt_id", receiptID, "items", len(items), "total", total)
	return receiptID, nil
}

// ListReceipts returns receipts newest first. limit <= 0 means no limit.
func (r *ReceiptRepository) ListReceipts(ctx context.Context, limit int) ([]entity.Receipt, error) {
	q := `SELECT id, date, total_amount, created_at FROM receipts ORDER BY date DESC`
	var rows []receiptRow
	var err error
	if limit > 0 {
		err = r.db.SelectContext(ctx, &rows, r.db.Rebind(q+` LIMIT ?`), limit)
	} else {
		err = r.db.SelectContext(ctx, &rows, q)
	}
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	return toReceipts(rows), nil
}

// ListReceiptsBetween returns receipts with date in [from, to], newest first.
func (r *ReceiptRepository) ListReceiptsBetween(ctx context.Context, from, to time.Time) ([]entity.Receipt, error) {
	q := r.db.Rebind(
		`SELECT id, date, total_amount, created_at FROM receipts
		 WHERE date BETWEEN ? AND ? ORDER BY date DESC`)
	var rows []receiptRow
	if err := r.db.SelectContext(ctx, &rows, q, from.UTC(), to.UTC()); err != nil {
		return nil, fmt.Errorf("list receipts between: %w", err)
	}
	return toReceipts(rows), nil
}

// ListItems returns the line items of one receipt in insertion order. An
// unknown receipt ID yields an error wrapping common.ErrNotFound.
func (r *ReceiptRepository) ListItems(ctx context.Context, receiptID uuid.UUID) ([]entity.Item, error) {
	var one int
	err := r.db.GetContext(ctx, &one,
		r.db.Rebind(`SELECT 1 FROM receipts WHERE id = ?`), receiptID.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.NewAppError("RECEIPT_NOT_FOUND",
			fmt.Sprintf("receipt %s does not exist", receiptID), common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("check receipt: %w", err)
	}

	q := r.db.Rebind(
		`SELECT id, receipt_id, item_name, price, category, nutrition_score, created_at
		 FROM items WHERE receipt_id = ? ORDER BY position`)
	var rows []itemRow
	if err := r.db.SelectContext(ctx, &rows, q, receiptID.String()); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return toItems(rows), nil
}

// ItemsByDateRange returns all items whose receipt date falls in [from, to].
func (r *ReceiptRepository) ItemsByDateRange(ctx context.Context, from, to time.Time) ([]entity.Item, error) {
	q := r.db.Rebind(
		`SELECT i.id, i.receipt_id, i.item_name, i.price, i.category, i.nutrition_score, i.created_at,
		        r.date AS purchase_date
		 FROM items i JOIN receipts r ON i.receipt_id = r.id
		 WHERE r.date BETWEEN ? AND ? ORDER BY r.date DESC, i.position`)
	var rows []itemRow
	if err := r.db.SelectContext(ctx, &rows, q, from.UTC(), to.UTC()); err != nil {
		return nil, fmt.Errorf("items by date range: %w", err)
	}
	return toItems(rows), nil
}

// SpendingByCategory aggregates item spend per category, optionally limited
// to a receipt-date window.
func (r *ReceiptRepository) SpendingByCategory(ctx context.Context, from, to *time.Time) ([]entity.CategorySpend, error) {
	var out []entity.CategorySpend
	if from != nil && to != nil {
		q := r.db.Rebind(
			`SELECT i.category AS category, SUM(i.price) AS total_amount
			 FROM items i JOIN receipts r ON i.receipt_id = r.id
			 WHERE r.date BETWEEN ? AND ?
			 GROUP BY i.category ORDER BY total_amount DESC`)
		if err := r.db.SelectContext(ctx, &out, q, from.UTC(), to.UTC()); err != nil {
			return nil, fmt.Errorf("spending by category: %w", err)
		}
		return out, nil
	}
	q := `SELECT category, SUM(price) AS total_amount
	      FROM items GROUP BY category ORDER BY total_amount DESC`
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("spending by category: %w", err)
	}
	return out, nil
}

// TotalSpending sums all receipt totals.
func (r *ReceiptRepository) TotalSpending(ctx context.Context) (float64, error) {
	var total float64
	q := `SELECT COALESCE(SUM(total_amount), 0) FROM receipts`
	if err := r.db.GetContext(ctx, &total, q); err != nil {
		return 0, fmt.Errorf("total spending: %w", err)
	}
	return total, nil
}

type receiptRow struct {
	ID          string    `db:"id"`
	Date        time.Time `db:"date"`
	TotalAmount float64   `db:"total_amount"`
	CreatedAt   time.Time `db:"created_at"`
}

type itemRow struct {
	ID             string    `db:"id"`
	ReceiptID      string    `db:"receipt_id"`
	Name           string    `db:"item_name"`
	Price          float64   `db:"price"`
	Category       string    `db:"category"`
	NutritionScore int       `db:"nutrition_score"`
	CreatedAt      time.Time `db:"created_at"`
	PurchaseDate   time.Time `db:"purchase_date"`
}

func toReceipts(rows []receiptRow) []entity.Receipt {
	out := make([]entity.Receipt, 0, len(rows))
	for _, row := range rows {
		id, _ := uuid.Parse(row.ID)
		out = append(out, entity.Receipt{
			ID:          id,
			Date:        row.Date,
			TotalAmount: row.TotalAmount,
			CreatedAt:   row.CreatedAt,
		})
	}
	return out
}

func toItems(rows []itemRow) []entity.Item {
	out := make([]entity.Item, 0, len(rows))
	for _, row := range rows {
		id, _ := uuid.Parse(row.ID)
		rid, _ := uuid.Parse(row.ReceiptID)
		out = append(out, entity.Item{
			ID:             id,
			ReceiptID:      rid,
			Name:           row.Name,
			Price:          row.Price,
			Category:       row.Category,
			NutritionScore: row.NutritionScore,
			CreatedAt:      row.CreatedAt,
			PurchaseDate:   row.PurchaseDate,
		})
	}
	return out
}
