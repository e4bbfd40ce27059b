package models

import "time"

// Attendance is an append-only log entry of a member interaction.
type Attendance struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClientID  uint      `gorm:"not null;index" json:"clientId"`
	Notes     string    `gorm:"not null" json:"notes"`
	CreatedBy string    `json:"createdBy"` // username of the author
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}
