package models

import "time"

// Document is a binary file attached to a client (scanned ID, contract, …).
// Content is carried as raw bytes end to end, including through snapshots.
type Document struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ClientID    uint      `gorm:"not null;index" json:"clientId"`
	Name        string    `gorm:"not null" json:"name"`
	ContentType string    `json:"contentType"`
	Content     []byte    `gorm:"type:blob" json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
}
