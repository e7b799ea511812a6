package entity

import (
	"time"

	"github.com/google/uuid"
)

// Receipt represents a stored receipt for data transfer between layers.
type Receipt struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Date        time.Time `json:"date" db:"date"`
	TotalAmount float64   `json:"total_amount" db:"total_amount"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// CategorySpend is an aggregate row for the spending-by-category report.
type CategorySpend struct {
	Category    string  `json:"category" db:"category"`
	TotalAmount float64 `json:"total_amount" db:"total_amount"`
}

// WeeklySpend is an aggregate row for the weekly spending breakdown.
type WeeklySpend struct {
	Week        string  `json:"week" db:"week"`
	TotalAmount float64 `json:"total_amount" db:"total_amount"`
}
