package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog listing priced per kilogram.
type Product struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string          `gorm:"column:name;not null"`
	Description string          `gorm:"column:description;not null;default:''"`
	PricePerKG  decimal.Decimal `gorm:"column:price_per_kg;type:numeric(10,2);not null"`
	CategoryID  uuid.UUID       `gorm:"column:category_id;type:uuid;not null"`
	ImageURL    string          `gorm:"column:image_url;not null;default:''"`
	StockKG     int             `gorm:"column:stock_kg;not null;default:0"`
	Featured    bool            `gorm:"column:featured;not null;default:false"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
