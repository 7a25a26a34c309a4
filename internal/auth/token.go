package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/Jack-WebDev/ahsa/internal/config"
	"github.com/Jack-WebDev/ahsa/internal/domain"
	"github.com/Jack-WebDev/ahsa/pkg/util"
)

// TokenManager issues and validates the three JWT kinds: short-lived
// access tokens, long-lived refresh tokens, and single-purpose password
// reset tokens. Each kind is signed with its own secret.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	resetSecret   []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	resetTTL      time.Duration
}

// NewTokenManager builds a manager from auth configuration.
func NewTokenManager(cfg config.AuthConfig) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		resetSecret:   []byte(cfg.ResetSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		resetTTL:      cfg.ResetTTL,
	}
}

// Claims describes the JWT payload.
type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	Status string `json:"status,omitempty"`
	jwt.RegisteredClaims
}

// IssueAccessToken signs payload with the access secret.
func (tm *TokenManager) IssueAccessToken(payload domain.TokenPayload) (string, error) {
	return tm.sign(payload, tm.accessSecret, tm.accessTTL)
}

// IssueRefreshToken signs payload with the refresh secret.
func (tm *TokenManager) IssueRefreshToken(payload domain.TokenPayload) (string, error) {
	return tm.sign(payload, tm.refreshSecret, tm.refreshTTL)
}

// IssueResetToken signs payload with the reset secret. Reset tokens are
// minted only after a successful OTP verification.
func (tm *TokenManager) IssueResetToken(payload domain.TokenPayload) (string, error) {
	return tm.sign(payload, tm.resetSecret, tm.resetTTL)
}

// IssuePair produces an access/refresh token set from the same payload.
func (tm *TokenManager) IssuePair(payload domain.TokenPayload) (domain.TokenPair, error) {
	accessToken, err := tm.IssueAccessToken(payload)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refreshToken, err := tm.IssueRefreshToken(payload)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (tm *TokenManager) sign(payload domain.TokenPayload, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: payload.UserID,
		Role:   payload.Role,
		Status: payload.Status,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   payload.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// Verify validates signature and expiry against the given secret. It
// fails with an unauthorized error on any malformed, forged, or expired
// token and never returns partial claims.
func (tm *TokenManager) Verify(tokenStr string, secret []byte) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, util.NewUnauthorized("invalid token")
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, util.NewUnauthorized("invalid token")
	}
	return claims, nil
}

// VerifyAccess validates an access token.
func (tm *TokenManager) VerifyAccess(tokenStr string) (*Claims, error) {
	return tm.Verify(tokenStr, tm.accessSecret)
}

// VerifyRefresh validates a refresh token.
func (tm *TokenManager) VerifyRefresh(tokenStr string) (*Claims, error) {
	return tm.Verify(tokenStr, tm.refreshSecret)
}

// VerifyReset validates a password reset token.
func (tm *TokenManager) VerifyReset(tokenStr string) (*Claims, error) {
	return tm.Verify(tokenStr, tm.resetSecret)
}

// AccessTTL reports the configured access token lifetime.
func (tm *TokenManager) AccessTTL() time.Duration { return tm.accessTTL }

// RefreshTTL reports the configured refresh token lifetime.
func (tm *TokenManager) RefreshTTL() time.Duration { return tm.refreshTTL }

// IsExpired decodes a token without verifying its signature and reports
// whether the expiry claim is absent or in the past. Advisory only; it
// must never stand in for Verify on a trust decision.
func IsExpired(tokenStr string) bool {
	claims, err := decodeClaims(tokenStr)
	if err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return claims.ExpiresAt.Before(time.Now())
}

// decodeClaims parses claims without signature verification.
func decodeClaims(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(tokenStr, claims); err != nil {
		return nil, err
	}
	return claims, nil
}
