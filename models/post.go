package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a plain location-tagged entry. LocalDate is assigned from the
// server-local date at insert time and is immutable afterwards; it is the
// field the reward engine and the streak reset job key on.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user"`
	Latitude  float64   `gorm:"not null" json:"local_latitude"`
	Longitude float64   `gorm:"not null" json:"local_longitude"`
	LocalDate Day       `gorm:"type:date;index;not null" json:"local_data"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// BeforeCreate stamps the creation day; callers cannot override it.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	p.LocalDate = Today()
	return nil
}

// NoisePost is a post carrying a decibel reading. It counts as a regular
// post for the daily-activity predicate.
type NoisePost struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user"`
	Latitude  float64   `gorm:"not null" json:"local_latitude"`
	Longitude float64   `gorm:"not null" json:"local_longitude"`
	Decibels  float64   `gorm:"not null" json:"decibeis"`
	LocalDate Day       `gorm:"type:date;index;not null" json:"local_data"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// BeforeCreate stamps the creation day; callers cannot override it.
func (p *NoisePost) BeforeCreate(tx *gorm.DB) error {
	p.LocalDate = Today()
	return nil
}
