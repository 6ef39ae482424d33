package models

import (
	"time"

	"gorm.io/gorm"
)

// Lifecycle is the soft-delete state of a row.
type Lifecycle string

const (
	LifecycleActive  Lifecycle = "ACTIVE"
	LifecycleDeleted Lifecycle = "DELETED"
)

// Base replaces gorm.Model for every soft-deletable entity. Rows are never
// physically removed; they move to LifecycleDeleted.
type Base struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Lifecycle Lifecycle `json:"lifecycle" gorm:"type:varchar(16);not null;default:'ACTIVE';index"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.Lifecycle == "" {
		b.Lifecycle = LifecycleActive
	}
	return nil
}

// IsDeleted reports whether the row was soft-deleted.
func (b Base) IsDeleted() bool {
	return b.Lifecycle == LifecycleDeleted
}

// Alive is the query filter every read of a soft-deletable entity goes through.
func Alive(db *gorm.DB) *gorm.DB {
	return db.Where("lifecycle = ?", LifecycleActive)
}

// AliveIn is Alive qualified with a table name, for queries with joins.
func AliveIn(table string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".lifecycle = ?", LifecycleActive)
	}
}

// SoftDelete moves the rows matched by db to LifecycleDeleted.
func SoftDelete(db *gorm.DB, model interface{}) *gorm.DB {
	return db.Model(model).Update("lifecycle", LifecycleDeleted)
}
