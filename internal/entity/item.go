package entity

import (
	"time"

	"github.com/google/uuid"
)

// LineItem is a single (name, price) pair recovered from receipt text.
// Name is normalized and Title-cased; Price is a two-decimal amount in the
// receipt's currency.
type LineItem struct {
	Name  string  `json:"item"`
	Price float64 `json:"price"`
}

// Item is a persisted receipt line with its derived category and nutrition score.
type Item struct {
	ID             uuid.UUID `json:"id" db:"id"`
	ReceiptID      uuid.UUID `json:"receipt_id" db:"receipt_id"`
	Name           string    `json:"item_name" db:"item_name"`
	Price          float64   `json:"price" db:"price"`
	Category       string    `json:"category" db:"category"`
	NutritionScore int       `json:"nutrition_score" db:"nutrition_score"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	// PurchaseDate is the date of the owning receipt. Populated only by
	// queries that join receipts; zero on insert.
	PurchaseDate time.Time `json:"purchase_date,omitempty" db:"purchase_date"`
}
