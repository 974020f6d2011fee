package middleware

import "context"

type contextKey string

const (
	ctxAccessID    contextKey = "access_id"
	ctxCartSession contextKey = "cart_session"
)

// AccessIDFromContext returns the authenticated admin session id, empty when
// the request never passed the auth middleware.
func AccessIDFromContext(ctx context.Context) string {
	value, _ := ctx.Value(ctxAccessID).(string)
	return value
}

// CartSessionFromContext returns the cart session id seeded by CartSession.
func CartSessionFromContext(ctx context.Context) string {
	value, _ := ctx.Value(ctxCartSession).(string)
	return value
}
