package models

import (
	"time"

	"github.com/google/uuid"
)

// Store is a sales channel. Catalog prices are snapshotted per store.
type Store struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Handle    string    `gorm:"column:handle;not null;uniqueIndex"`
	Name      string    `gorm:"column:name;not null"`
	Currency  string    `gorm:"column:currency;not null;default:'USD'"`
	Enabled   bool      `gorm:"column:enabled;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
