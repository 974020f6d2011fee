package orders

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// queuedLine is the fallback-queue shape of an order line. Queue entries
// never got a database id; reads synthesize one so the response shape stays
// uniform.
type queuedLine struct {
	OrderID    uuid.UUID       `json:"order_id"`
	ProductID  uuid.UUID       `json:"product_id"`
	Name       string          `json:"name"`
	PricePerKG decimal.Decimal `json:"price_per_kg"`
	QuantityKG decimal.Decimal `json:"quantity_kg"`
}

// Lines returns the lines of one order. The database is authoritative; only
// when it cannot be read does the fallback queue answer, filtered down to
// the requested order.
func (s *service) Lines(ctx context.Context, orderID uuid.UUID) ([]LineDTO, error) {
	rows, err := s.repo.ListLinesByOrder(ctx, orderID)
	if err == nil {
		out := make([]LineDTO, 0, len(rows))
		for _, row := range rows {
			out = append(out, toLineDTO(row))
		}
		return out, nil
	}

	if s.logg != nil {
		s.logg.Warn(s.logg.WithOrderID(ctx, orderID.String()), "order lines unreadable, serving fallback queue")
	}
	entries, qerr := s.fallback.ListJSON(ctx, s.queueKey)
	if qerr != nil {
		return nil, qerr
	}
	out := make([]LineDTO, 0, len(entries))
	for _, raw := range entries {
		var q queuedLine
		if uerr := json.Unmarshal([]byte(raw), &q); uerr != nil {
			continue
		}
		if q.OrderID != orderID {
			continue
		}
		out = append(out, LineDTO{
			ID:         uuid.New(),
			OrderID:    q.OrderID,
			ProductID:  q.ProductID,
			Name:       q.Name,
			PricePerKG: q.PricePerKG,
			QuantityKG: q.QuantityKG,
		})
	}
	return out, nil
}
