package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/karimbenali/boucherie-backend/pkg/enums"
)

// Order is a committed customer request. The total is the value the client
// submitted at checkout; line items are stored separately and never folded
// back into it.
type Order struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	FirstName string            `gorm:"column:first_name;not null"`
	LastName  string            `gorm:"column:last_name;not null"`
	Phone     string            `gorm:"column:phone;not null"`
	Status    enums.OrderStatus `gorm:"column:status;not null;default:'pending'"`
	Paid      bool              `gorm:"column:paid;not null;default:false"`
	Total     decimal.Decimal   `gorm:"column:total;type:numeric(10,2);not null"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
}
