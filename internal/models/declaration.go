package models

import "time"

const (
	DeclarationKindMembership    = "membership"
	DeclarationKindPaymentStatus = "payment-status"
)

// DeclarationLog is the append-only audit trail of issued certificates.
// Rows are never updated or deleted outside the cascading client delete.
type DeclarationLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClientID  uint      `gorm:"not null;index" json:"clientId"`
	Kind      string    `json:"kind"`
	IssueDate string    `json:"issueDate"` // YYYY-MM-DD
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (DeclarationLog) TableName() string { return "declarations" }
