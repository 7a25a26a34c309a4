package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Jack-WebDev/ahsa/internal/domain"
	"github.com/Jack-WebDev/ahsa/pkg/util"
)

const (
	identityKey = "auth_identity"
	pairKey     = "auth_refreshed_pair"
)

// Middleware guards protected routes. A request with a valid access
// token proceeds directly; one with an expired or invalid access token
// gets a single refresh attempt from its refresh token before being
// rejected.
type Middleware struct {
	tokens   *TokenManager
	resolver *Resolver
	logger   *zap.Logger
}

// NewMiddleware constructs the middleware.
func NewMiddleware(tokens *TokenManager, resolver *Resolver, logger *zap.Logger) *Middleware {
	return &Middleware{tokens: tokens, resolver: resolver, logger: logger}
}

// Handle authenticates the request, refreshing the token pair when the
// access token fails verification but a valid refresh token is present.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	accessToken := AccessTokenFromRequest(c)
	if accessToken == "" {
		return util.NewUnauthorized("no token")
	}

	if _, err := m.tokens.VerifyAccess(accessToken); err != nil {
		return m.refresh(c)
	}

	identity := m.resolver.ResolveIdentity(c, accessToken)
	if identity == nil {
		return util.NewUnauthorized("invalid or expired token")
	}
	c.Locals(identityKey, identity)
	return c.Next()
}

func (m *Middleware) refresh(c *fiber.Ctx) error {
	refreshToken := RefreshTokenFromRequest(c)
	if refreshToken == "" {
		return util.NewUnauthorized("invalid or expired token")
	}

	claims, err := m.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return util.NewUnauthorized("invalid refresh token")
	}

	pair, err := m.tokens.IssuePair(domain.TokenPayload{
		UserID: claims.UserID,
		Role:   claims.Role,
		Status: claims.Status,
	})
	if err != nil {
		return util.NewInternal(err)
	}

	identity := m.resolver.ResolveIdentity(c, pair.AccessToken)
	if identity == nil {
		return util.NewUnauthorized("invalid refresh token")
	}
	identity.AccessToken = pair.AccessToken
	identity.RefreshToken = pair.RefreshToken

	m.logger.Info("token pair refreshed", zap.String("user_id", identity.ID))

	c.Locals(identityKey, identity)
	c.Locals(pairKey, &pair)
	return c.Next()
}

// PropagateTokens writes a freshly minted token pair back to the client
// after the wrapped handler completes. Registered outside Handle so the
// refresh itself stays a pure computation.
func (m *Middleware) PropagateTokens(c *fiber.Ctx) error {
	if err := c.Next(); err != nil {
		return err
	}
	pair, ok := RefreshedPairFromContext(c)
	if !ok {
		return nil
	}
	c.Set("X-Access-Token", pair.AccessToken)
	c.Set(RefreshTokenHeader, pair.RefreshToken)
	c.Cookie(&fiber.Cookie{
		Name:     AccessTokenCookie,
		Value:    pair.AccessToken,
		Path:     "/",
		MaxAge:   int(m.tokens.AccessTTL().Seconds()),
		Secure:   true,
		HTTPOnly: false,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	c.Cookie(&fiber.Cookie{
		Name:     RefreshTokenCookie,
		Value:    pair.RefreshToken,
		Path:     "/",
		MaxAge:   int(m.tokens.RefreshTTL().Seconds()),
		Secure:   true,
		HTTPOnly: false,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return nil
}

// IdentityFromContext retrieves the authenticated identity.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*domain.Identity)
	return identity, ok
}

// RefreshedPairFromContext retrieves the token pair minted during this
// request, if a refresh happened.
func RefreshedPairFromContext(c *fiber.Ctx) (*domain.TokenPair, bool) {
	val := c.Locals(pairKey)
	if val == nil {
		return nil, false
	}
	pair, ok := val.(*domain.TokenPair)
	return pair, ok
}
