package models

import "time"

// IconPurchase records that a user owns a given icon. The composite unique
// index is the hard backstop against double purchases; rows are only ever
// created by a successful shop transaction and never updated.
type IconPurchase struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_icon;not null" json:"user"`
	IconID    uint      `gorm:"uniqueIndex:idx_user_icon;not null" json:"icone"`
	Icon      Icon      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
