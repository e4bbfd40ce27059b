package models

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is an application account. The password is stored and compared as a
// plain string; that is the documented behavior of this system, not an
// oversight of this implementation.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	Role      string    `gorm:"not null;default:user" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
