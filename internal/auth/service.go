package auth

import (
	"context"
	"fmt"
	"time"

	pkgauth "github.com/karimbenali/boucherie-backend/pkg/auth"
	"github.com/karimbenali/boucherie-backend/pkg/config"
	"github.com/karimbenali/boucherie-backend/pkg/errors"
	"github.com/karimbenali/boucherie-backend/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the behavior needed by the admin auth controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, accessID string) error
}

type sessionManager interface {
	Create(ctx context.Context, accessID string) error
	Revoke(ctx context.Context, accessID string) error
}

type service struct {
	session  sessionManager
	adminCfg config.AdminConfig
	jwtCfg   config.JWTConfig
	now      func() time.Time
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	SessionManager sessionManager
	AdminConfig    config.AdminConfig
	JWTConfig      config.JWTConfig
	Now            func() time.Time
}

// NewService constructs the admin login service.
func NewService(params ServiceParams) (Service, error) {
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		session:  params.SessionManager,
		adminCfg: params.AdminConfig,
		jwtCfg:   params.JWTConfig,
		now:      now,
	}, nil
}

// Login checks the shared admin password and mints a session token. The
// hashed password takes precedence; the plaintext variant exists for local
// development only.
func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if !s.passwordMatches(req.Password) {
		return nil, errors.New(errors.CodeUnauthorized, invalidCredentialsMessage)
	}

	issuedAt := s.now().UTC()
	token, accessID, err := pkgauth.MintAdminToken(s.jwtCfg, issuedAt)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "failed to mint session token")
	}
	if err := s.session.Create(ctx, accessID); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "failed to register session")
	}

	return &LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   issuedAt.Add(time.Duration(s.jwtCfg.ExpirationMinutes) * time.Minute),
	}, nil
}

// Logout revokes the session behind the access id.
func (s *service) Logout(ctx context.Context, accessID string) error {
	if err := s.session.Revoke(ctx, accessID); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "failed to revoke session")
	}
	return nil
}

func (s *service) passwordMatches(provided string) bool {
	if s.adminCfg.PasswordHash != "" {
		ok, err := security.VerifyPassword(provided, s.adminCfg.PasswordHash)
		return err == nil && ok
	}
	return s.adminCfg.Password != "" && security.ComparePlaintext(provided, s.adminCfg.Password)
}
