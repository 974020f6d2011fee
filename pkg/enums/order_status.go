package enums

import "fmt"

// OrderStatus tracks an order through the pickup flow.
type OrderStatus string

const (
	OrderStatusPending       OrderStatus = "pending"
	OrderStatusInPreparation OrderStatus = "in_preparation"
	OrderStatusReady         OrderStatus = "ready"
	OrderStatusPickedUp      OrderStatus = "picked_up"
)

var orderStatuses = map[OrderStatus]struct{}{
	OrderStatusPending:       {},
	OrderStatusInPreparation: {},
	OrderStatusReady:         {},
	OrderStatusPickedUp:      {},
}

func (s OrderStatus) IsValid() bool {
	_, ok := orderStatuses[s]
	return ok
}

// IsCompleted reports whether the dashboard counts the order as done.
// Everything short of picked_up is still pending work for the shop.
func (s OrderStatus) IsCompleted() bool {
	return s == OrderStatusPickedUp
}

func ParseOrderStatus(value string) (OrderStatus, error) {
	status := OrderStatus(value)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid order status %q", value)
	}
	return status, nil
}
