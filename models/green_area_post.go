package models

import "time"

// GreenAreaPost documents a green area with a photo kept in external object
// storage. It is not part of the reward/streak post log: creating one never
// awards coins and does not count as daily activity.
type GreenAreaPost struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user"`
	Latitude    float64   `gorm:"not null" json:"local_latitude"`
	Longitude   float64   `gorm:"not null" json:"local_longitude"`
	Title       string    `gorm:"size:150;not null" json:"titulo"`
	AccessMode  string    `gorm:"size:255" json:"modo_acesso"`
	Description string    `gorm:"type:text" json:"descricao"`
	ImageName   string    `gorm:"size:255;not null" json:"imagem_nome"`
	CreatedAt   time.Time `json:"created_at"`
	User        User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
