package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/karimbenali/boucherie-backend/pkg/db/models"
	"github.com/karimbenali/boucherie-backend/pkg/enums"
)

// Customer carries the pickup contact details entered at checkout.
type Customer struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
}

// OrderDTO is the response shape of an order header.
type OrderDTO struct {
	ID        uuid.UUID         `json:"id"`
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Phone     string            `json:"phone"`
	Status    enums.OrderStatus `json:"status"`
	Paid      bool              `json:"paid"`
	Total     decimal.Decimal   `json:"total"`
	CreatedAt time.Time         `json:"created_at"`
}

// LineDTO is the response shape of one order line. Name and price are the
// values captured at submission time, not the live catalog values.
type LineDTO struct {
	ID         uuid.UUID       `json:"id"`
	OrderID    uuid.UUID       `json:"order_id"`
	ProductID  uuid.UUID       `json:"product_id"`
	Name       string          `json:"name"`
	PricePerKG decimal.Decimal `json:"price_per_kg"`
	QuantityKG decimal.Decimal `json:"quantity_kg"`
}

// ToOrderDTO maps an order row into its response shape.
func ToOrderDTO(row models.Order) OrderDTO {
	return OrderDTO{
		ID:        row.ID,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Phone:     row.Phone,
		Status:    row.Status,
		Paid:      row.Paid,
		Total:     row.Total,
		CreatedAt: row.CreatedAt,
	}
}

func toLineDTO(row models.OrderLine) LineDTO {
	return LineDTO{
		ID:         row.ID,
		OrderID:    row.OrderID,
		ProductID:  row.ProductID,
		Name:       row.Name,
		PricePerKG: row.PricePerKG,
		QuantityKG: row.QuantityKG,
	}
}
