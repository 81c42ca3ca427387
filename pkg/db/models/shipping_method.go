package models

import (
	"time"

	"github.com/google/uuid"
)

// ShippingMethod is an ordered list of shipping rules behind a handle.
// Configured by administrators; read-only to the engine.
type ShippingMethod struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Handle    string         `gorm:"column:handle;not null;uniqueIndex"`
	Name      string         `gorm:"column:name;not null"`
	Enabled   bool           `gorm:"column:enabled;not null;default:true"`
	SortOrder int            `gorm:"column:sort_order;not null;default:0"`
	Rules     []ShippingRule `gorm:"foreignKey:MethodID;references:ID"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
