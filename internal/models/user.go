package models

import "time"

// User is keyed by normalized email (trimmed, lowercased). The account
// service normalizes every email before it touches this table, so two
// spellings of the same address always resolve to one row.
type User struct {
	Email            string    `gorm:"primaryKey;size:255" json:"email"`
	PasswordHash     string    `gorm:"not null" json:"-"`
	Verified         bool      `gorm:"default:false" json:"verified"`
	VerificationCode string    `gorm:"size:6" json:"-"`
	FreeUses         int       `gorm:"default:2" json:"free_uses"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
