package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is an outgoing cash-flow entry, independent of any client.
type Expense struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Description string          `gorm:"not null" json:"description"`
	Category    string          `gorm:"index" json:"category"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Date        string          `gorm:"index" json:"date"` // YYYY-MM-DD
	CreatedAt   time.Time       `json:"createdAt"`
}
