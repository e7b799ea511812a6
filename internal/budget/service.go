package budget

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/narayan09-boop/GroceryIntelligence/internal/common"
	"github.com/narayan09-boop/GroceryIntelligence/internal/entity"
	"github.com/narayan09-boop/GroceryIntelligence/internal/repository"
)

// Status is the monthly budget snapshot for the dashboard.
type Status struct {
	MonthlyBudget float64 `json:"monthly_budget"`
	Spent         float64 `json:"spent"`
	Remaining     float64 `json:"remaining"`
	PercentUsed   float64 `json:"percent_used"`
}

// Service tracks spending against the configured monthly budget.
type Service struct {
	receipts       *repository.ReceiptRepository
	budgets        *repository.BudgetRepository
	defaultMonthly float64
	logger         *slog.Logger
	now            func() time.Time
}

func NewService(receipts *repository.ReceiptRepository, budgets *repository.BudgetRepository, defaultMonthly float64, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if defaultMonthly <= 0 {
		defaultMonthly = 500.0
	}
	return &Service{
		receipts:       receipts,
		budgets:        budgets,
		defaultMonthly: defaultMonthly,
		logger:         logger,
		now:            time.Now,
	}
}

// SetMonthlyBudget stores a new monthly budget limit.
func (s *Service) SetMonthlyBudget(ctx context.Context, amount float64) error {
	if amount <= 0 {
		return common.NewAppError("BUDGET_INVALID", "monthly budget must be positive", common.ErrInvalidInput)
	}
	return s.budgets.SaveMonthlyBudget(ctx, amount)
}

// MonthlyBudget returns the configured budget, or the default when none is set.
func (s *Service) MonthlyBudget(ctx context.Context) (float64, error) {
	amount, ok, err := s.budgets.MonthlyBudget(ctx)
	if err != nil {
		return 0, err
	}
	if !ok {
		return s.defaultMonthly, nil
	}
	return amount, nil
}

// CurrentMonthSpending sums receipt totals for the calendar month containing now.
func (s *Service) CurrentMonthSpending(ctx context.Context) (float64, error) {
	from, to := monthBounds(s.now())
	recs, err := s.receipts.ListReceiptsBetween(ctx, from, to)
	if err != nil {
		return 0, common.WrapError(err, "current month spending")
	}
	var total float64
	for _, r := range recs {
		total += r.TotalAmount
	}
	return total, nil
}

// WeeklySpending breaks the current month's receipt totals down by ISO week.
func (s *Service) WeeklySpending(ctx context.Context) ([]entity.WeeklySpend, error) {
	from, to := monthBounds(s.now())
	recs, err := s.receipts.ListReceiptsBetween(ctx, from, to)
	if err != nil {
		return nil, common.WrapError(err, "weekly spending")
	}

	byWeek := map[int]float64{}
	for _, r := range recs {
		_, week := r.Date.ISOWeek()
		byWeek[week] += r.TotalAmount
	}

	weeks := make([]int, 0, len(byWeek))
	for w := range byWeek {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)

	out := make([]entity.WeeklySpend, 0, len(weeks))
	for _, w := range weeks {
		out = append(out, entity.WeeklySpend{
			Week:        fmt.Sprintf("Week %d", w),
			TotalAmount: byWeek[w],
		})
	}
	return out, nil
}

// Status combines the budget and the current month's spend.
func (s *Service) Status(ctx context.Context) (Status, error) {
	limit, err := s.MonthlyBudget(ctx)
	if err != nil {
		return Status{}, err
	}
	spent, err := s.CurrentMonthSpending(ctx)
	if err != nil {
		return Status{}, err
	}
	st := Status{MonthlyBudget: limit, Spent: spent, Remaining: limit - spent}
	if limit > 0 {
		st.PercentUsed = spent / limit * 100
	}
	return st, nil
}

// monthBounds returns the first and last instant of t's calendar month.
func monthBounds(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Second)
	return from, to
}
