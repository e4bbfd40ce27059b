package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment records one dues payment for a client and a reference period.
// At most one payment may exist per (client, reference) pair; the composite
// unique index is what prevents double-billing a member for the same month.
type Payment struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	ClientID     uint            `gorm:"not null;uniqueIndex:uidx_client_reference" json:"clientId"`
	Reference    string          `gorm:"not null;uniqueIndex:uidx_client_reference" json:"reference"` // YYYY-MM
	PaymentDate  string          `json:"paymentDate"`                                                 // YYYY-MM-DD
	Amount       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	RegisteredBy string          `json:"registeredBy"`
	CreatedAt    time.Time       `json:"createdAt"`
}
