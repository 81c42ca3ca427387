package models

import (
	"time"

	"github.com/google/uuid"
)

// CustomerDiscountUse counts completed redemptions per customer + discount.
type CustomerDiscountUse struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DiscountID uuid.UUID `gorm:"column:discount_id;type:uuid;not null;uniqueIndex:idx_customer_discount"`
	CustomerID uuid.UUID `gorm:"column:customer_id;type:uuid;not null;uniqueIndex:idx_customer_discount"`
	Uses       int64     `gorm:"column:uses;not null;default:0"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// EmailDiscountUse counts completed redemptions per order email + discount.
type EmailDiscountUse struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DiscountID uuid.UUID `gorm:"column:discount_id;type:uuid;not null;uniqueIndex:idx_email_discount"`
	Email      string    `gorm:"column:email;not null;uniqueIndex:idx_email_discount"`
	Uses       int64     `gorm:"column:uses;not null;default:0"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
