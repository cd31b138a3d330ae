package models

import (
	"time"
)

// WishRequest is a listener wish/contact request submitted through the
// public form.
type WishRequest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255" json:"name"`
	Message   string    `gorm:"type:text" json:"message"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (WishRequest) TableName() string {
	return "requests"
}
