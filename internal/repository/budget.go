package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// BudgetRepository stores the single-row monthly budget setting.
type BudgetRepository struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewBudgetRepository(db *sqlx.DB, logger *slog.Logger) *BudgetRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &BudgetRepository{db: db, logger: logger}
}

// SaveMonthlyBudget upserts the monthly budget amount.
func (r *BudgetRepository) SaveMonthlyBudget(ctx context.Context, amount float64) error {
	q := r.db.Rebind(
		`INSERT INTO budget_settings (id, monthly_budget, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET monthly_budget = excluded.monthly_budget, updated_at = excluded.updated_at`)
	if _, err := r.db.ExecContext(ctx, q, amount, time.Now().UTC()); err != nil {
		return fmt.Errorf("save budget: %w", err)
	}
	r.logger.Info("monthly budget updated", "amount", amount)
	return nil
}

// MonthlyBudget returns the stored budget amount. The second return is false
// when no budget has been set yet.
func (r *BudgetRepository) MonthlyBudget(ctx context.Context) (float64, bool, error) {
	var amount float64
	err := r.db.GetContext(ctx, &amount, `SELECT monthly_budget FROM budget_settings WHERE id = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("load budget: %w", err)
	}
	return amount, true, nil
}
