package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Jack-WebDev/ahsa/internal/domain"
)

// Cookie and header names carrying tokens. Cookies are written by the
// client-side token helper; the headers are the server-rendered call
// path for the same two tokens.
const (
	AccessTokenCookie  = "authToken"
	RefreshTokenCookie = "refreshToken"
	RefreshTokenHeader = "X-Refresh-Token"
)

// tokenError wraps decode failures so callers of the resolver never see
// a raw parse error.
type tokenError struct {
	msg   string
	cause error
}

func (e *tokenError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

func (e *tokenError) Unwrap() error { return e.cause }

// AccessTokenFromRequest extracts the access token from the request,
// preferring the cookie over the Authorization header.
func AccessTokenFromRequest(c *fiber.Ctx) string {
	if token := strings.TrimSpace(c.Cookies(AccessTokenCookie)); token != "" {
		return token
	}
	authHeader := c.Get(fiber.HeaderAuthorization)
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// RefreshTokenFromRequest extracts the refresh token from the request.
func RefreshTokenFromRequest(c *fiber.Ctx) string {
	if token := strings.TrimSpace(c.Cookies(RefreshTokenCookie)); token != "" {
		return token
	}
	return strings.TrimSpace(c.Get(RefreshTokenHeader))
}

// Resolver derives an authenticated identity from a presented token.
// It is deliberately tolerant: every failure mode collapses to nil,
// never to an error or panic.
type Resolver struct {
	logger *zap.Logger
}

// NewResolver constructs a resolver.
func NewResolver(logger *zap.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// ResolveIdentity decodes the given token into an identity. When token
// is empty it falls back to the request's access token cookie/header.
// Returns nil for missing, blank, malformed, or expired tokens.
func (r *Resolver) ResolveIdentity(c *fiber.Ctx, token string) *domain.Identity {
	if token == "" && c != nil {
		token = AccessTokenFromRequest(c)
	}
	if strings.TrimSpace(token) == "" {
		r.logger.Info("no authentication token provided")
		return nil
	}

	claims, err := r.decode(token)
	if err != nil {
		r.logger.Warn("token resolution failed", zap.Error(err))
		return nil
	}

	identity := &domain.Identity{
		ID:          claims.UserID,
		Role:        domain.Role(claims.Role),
		Status:      domain.UserStatus(claims.Status),
		AccessToken: token,
	}
	if claims.IssuedAt != nil {
		identity.IssuedAt = claims.IssuedAt.Unix()
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Unix()
	}
	if c != nil {
		identity.RefreshToken = RefreshTokenFromRequest(c)
	}
	return identity
}

func (r *Resolver) decode(token string) (*Claims, error) {
	claims, err := decodeClaims(token)
	if err != nil {
		return nil, &tokenError{msg: "invalid token format", cause: err}
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Unix() < time.Now().Unix() {
		return nil, &tokenError{msg: "token has expired"}
	}
	return claims, nil
}
