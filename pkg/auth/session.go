package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/karimbenali/boucherie-backend/pkg/config"
	redisclient "github.com/karimbenali/boucherie-backend/pkg/redis"
)

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	AdminSessionKey(accessID string) string
}

// SessionManager tracks live admin sessions in Redis, keyed by the token's
// jti. A token whose jti is absent has been revoked or expired.
type SessionManager struct {
	store sessionStore
	keyer sessionKeyer
	ttl   time.Duration
}

// SessionChecker exposes the read-only surface needed by middleware.
type SessionChecker interface {
	HasSession(ctx context.Context, accessID string) (bool, error)
}

// NewSessionManager constructs a session manager backed by Redis. The TTL
// mirrors the token expiration so Redis forgets sessions on its own.
func NewSessionManager(client *redisclient.Client, cfg config.JWTConfig) (*SessionManager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	ttl := time.Duration(cfg.ExpirationMinutes) * time.Minute
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive")
	}
	return &SessionManager{store: client, keyer: client, ttl: ttl}, nil
}

// Create registers the access id as a live session.
func (m *SessionManager) Create(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return fmt.Errorf("access id is required")
	}
	return m.store.Set(ctx, m.keyer.AdminSessionKey(accessID), time.Now().UTC().Format(time.RFC3339), m.ttl)
}

// HasSession reports whether the access id still maps to a live session.
func (m *SessionManager) HasSession(ctx context.Context, accessID string) (bool, error) {
	if strings.TrimSpace(accessID) == "" {
		return false, nil
	}
	_, err := m.store.Get(ctx, m.keyer.AdminSessionKey(accessID))
	if err != nil {
		if redisclient.IsNil(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Revoke drops the session tied to the access id.
func (m *SessionManager) Revoke(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return fmt.Errorf("access id is required")
	}
	return m.store.Del(ctx, m.keyer.AdminSessionKey(accessID))
}
