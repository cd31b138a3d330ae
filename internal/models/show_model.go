package models

import (
	"time"
)

type Show struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	Title      string          `gorm:"size:255" json:"title"`
	Body       *string         `gorm:"type:text" json:"body"`
	StartDate  *time.Time      `gorm:"index" json:"start_date"`
	EndDate    *time.Time      `gorm:"index" json:"end_date"`
	IsLive     bool            `gorm:"default:false" json:"is_live"`
	Enabled    bool            `json:"enabled"`
	LockedBy   *uint           `json:"locked_by,omitempty"`
	Locker     *User           `gorm:"foreignKey:LockedBy" json:"-"`
	Moderators []ShowModerator `gorm:"foreignKey:ShowID;constraint:OnDelete:CASCADE" json:"moderators,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ShowModerator is the show/user pivot. Exactly one row per show carries
// Primary = true once moderators are assigned.
type ShowModerator struct {
	ShowID      uint      `gorm:"primaryKey" json:"show_id"`
	ModeratorID uint      `gorm:"primaryKey" json:"moderator_id"`
	Primary     bool      `json:"primary"`
	Moderator   *User     `gorm:"foreignKey:ModeratorID;constraint:OnDelete:CASCADE" json:"moderator,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
