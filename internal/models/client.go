package models

import "time"

const (
	ClientStatusActive    = "Active"
	ClientStatusInactive  = "Inactive"
	ClientStatusSuspended = "Suspended"
)

// Client is the aggregate root: payments, declarations, documents and
// attendances all reference it and are only removed through the cascading
// delete transaction.
type Client struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	FullName        string    `gorm:"not null;index" json:"fullName"`
	CPF             string    `gorm:"uniqueIndex;not null" json:"cpf"`
	RG              string    `json:"rg"`
	Address         string    `json:"address"`
	Phone           string    `json:"phone"`
	Email           string    `json:"email"`
	AffiliationDate string    `json:"affiliationDate"` // YYYY-MM-DD
	Status          string    `gorm:"not null;default:Active;index" json:"status"`
	Photo           string    `json:"photo,omitempty"` // base64-encoded image
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
