package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLine snapshots one cart item at submission time. Name and price are
// denormalized copies so later product edits never rewrite order history.
type OrderLine struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID    uuid.UUID       `gorm:"column:order_id;type:uuid;not null"`
	ProductID  uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	QuantityKG decimal.Decimal `gorm:"column:quantity_kg;type:numeric(10,3);not null"`
	Name       string          `gorm:"column:name;not null"`
	PricePerKG decimal.Decimal `gorm:"column:price_per_kg;type:numeric(10,2);not null"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
}
