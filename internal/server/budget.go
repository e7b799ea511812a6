package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/narayan09-boop/GroceryIntelligence/internal/budget"
	"github.com/narayan09-boop/GroceryIntelligence/internal/common"
)

// BudgetHandler serves the monthly budget setting and its status.
type BudgetHandler struct {
	svc    *budget.Service
	logger *slog.Logger
}

func NewBudgetHandler(svc *budget.Service, logger *slog.Logger) *BudgetHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BudgetHandler{svc: svc, logger: logger}
}

type budgetBody struct {
	MonthlyBudget float64 `json:"monthly_budget" binding:"required"`
}

// Get returns the configured monthly budget.
func (h *BudgetHandler) Get(c *gin.Context) {
	amount, err := h.svc.MonthlyBudget(c.Request.Context())
	if err != nil {
		h.logger.Error("load budget failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "BUDGET_FAILED", "could not load budget")
		return
	}
	RespondOK(c, budgetBody{MonthlyBudget: amount})
}

// Put updates the monthly budget.
func (h *BudgetHandler) Put(c *gin.Context) {
	var body budgetBody
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "BAD_BODY", "monthly_budget is required")
		return
	}
	if err := h.svc.SetMonthlyBudget(c.Request.Context(), body.MonthlyBudget); err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			RespondError(c, http.StatusBadRequest, "BUDGET_INVALID", "monthly budget must be positive")
			return
		}
		h.logger.Error("save budget failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "BUDGET_FAILED", "could not save budget")
		return
	}
	RespondOK(c, body)
}

// Status returns spend vs budget for the current month.
func (h *BudgetHandler) Status(c *gin.Context) {
	st, err := h.svc.Status(c.Request.Context())
	if err != nil {
		h.logger.Error("budget status failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "BUDGET_FAILED", "could not compute budget status")
		return
	}
	RespondOK(c, st)
}

// Weekly returns the current month's spending broken down by week.
func (h *BudgetHandler) Weekly(c *gin.Context) {
	weeks, err := h.svc.WeeklySpending(c.Request.Context())
	if err != nil {
		h.logger.Error("weekly spending failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "BUDGET_FAILED", "could not compute weekly spending")
		return
	}
	RespondOK(c, weeks)
}
