package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/karimbenali/boucherie-backend/pkg/db/models"
)

// ProductDTO is the storefront shape of a catalog row.
type ProductDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	PricePerKG  decimal.Decimal `json:"price_per_kg"`
	CategoryID  uuid.UUID       `json:"category_id"`
	ImageURL    string          `json:"image_url"`
	StockKG     int             `json:"stock_kg"`
	Featured    bool            `json:"featured"`
}

// CategoryDTO is the storefront shape of a category row.
type CategoryDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Catalog is the combined dataset the storefront renders.
type Catalog struct {
	Products   []ProductDTO  `json:"products"`
	Categories []CategoryDTO `json:"categories"`
}

func ToProductDTO(row models.Product) ProductDTO {
	return ProductDTO{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		PricePerKG:  row.PricePerKG,
		CategoryID:  row.CategoryID,
		ImageURL:    row.ImageURL,
		StockKG:     row.StockKG,
		Featured:    row.Featured,
	}
}

func ToCategoryDTO(row models.Category) CategoryDTO {
	return CategoryDTO{ID: row.ID, Name: row.Name}
}

// AllCategories is the sentinel that disables category filtering.
const AllCategories = "all"

// FilterByCategory returns the products matching the category id, or every
// product when the sentinel (or an empty string) is passed. Pure; the input
// slice is never mutated.
func FilterByCategory(products []ProductDTO, category string) []ProductDTO {
	if category == "" || category == AllCategories {
		return products
	}
	filtered := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		if p.CategoryID.String() == category {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
