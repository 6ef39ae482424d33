package models

import (
	"time"
)

// Account roles stored on the user row.
const (
	AccountUser      = "USER"
	AccountAdmin     = "ADMIN"
	AccountCounselor = "COUNSELOR"
)

type User struct {
	Base
	Name                string     `json:"name" gorm:"default:''"`
	Email               string     `json:"email" gorm:"uniqueIndex;not null"`
	Mobile              string     `json:"mobile" gorm:"default:''"`
	Role                string     `json:"role" gorm:"default:'USER'"` // USER, ADMIN, COUNSELOR
	Password            string     `json:"-" gorm:"not null"`
	LastLogin           *time.Time `json:"last_login"`
	FailedLoginAttempts int        `json:"-" gorm:"default:0"`
	BlockedUntil        *time.Time `json:"-"`
}
