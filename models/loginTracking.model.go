package models

import "time"

// LoginTracking records each successful sign-in.
type LoginTracking struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	IPAddress string    `json:"ip_address" gorm:"type:varchar(64)"`
	Device    string    `json:"device" gorm:"type:varchar(255)"`
	Timestamp time.Time `json:"timestamp" gorm:"index"`
}
