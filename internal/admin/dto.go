package admin

import (
	"github.com/shopspring/decimal"

	"github.com/karimbenali/boucherie-backend/internal/catalog"
	"github.com/karimbenali/boucherie-backend/internal/orders"
)

// Data is the full dataset the admin dashboard works from, re-fetched
// whole after every mutation.
type Data struct {
	Categories []catalog.CategoryDTO `json:"categories"`
	Products   []catalog.ProductDTO  `json:"products"`
	Orders     []orders.OrderDTO     `json:"orders"`
}

// Aggregates are the dashboard headline numbers derived from the loaded
// order set.
type Aggregates struct {
	PendingOrders   int             `json:"pending_orders"`
	CompletedOrders int             `json:"completed_orders"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
}

// Dashboard couples the dataset with its aggregates.
type Dashboard struct {
	Data       Data       `json:"data"`
	Aggregates Aggregates `json:"aggregates"`
}

// CategoryInput is the create payload for a category.
type CategoryInput struct {
	Name string `json:"name" validate:"required"`
}

// ProductInput is the create/update payload for a product.
type ProductInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	PricePerKG  string `json:"price_per_kg" validate:"required"`
	CategoryID  string `json:"category_id" validate:"required,uuid4"`
	ImageURL    string `json:"image_url"`
	StockKG     int    `json:"stock_kg"`
	Featured    bool   `json:"featured"`
}
