package models

import (
	"time"

	"gorm.io/gorm"
)

// StartingCoins is credited to every account at registration.
const StartingCoins = 5

// User represents an account with its coin balance and posting streak.
// Accounts are never deleted, so there is no soft-delete column.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	FirstName    string    `gorm:"size:64" json:"first_name"`
	LastName     string    `gorm:"size:64" json:"last_name"`
	Coins        int       `gorm:"default:5" json:"moedas"`
	Streak       int       `gorm:"default:0" json:"streak"`
	IconID       *uint     `json:"id_icone"`
	Icon         *Icon     `gorm:"foreignKey:IconID" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate hook ensures timestamps are set even when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return nil
}

// BeforeUpdate refreshes the UpdatedAt timestamp.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}
