package domain

// TokenPayload is the minimal claim set embedded in signed tokens.
type TokenPayload struct {
	UserID string
	Role   string
	Status string
}

// TokenPair holds an access/refresh token set issued together. The two
// tokens carry no cross-reference; each is independently verifiable and
// independently expires.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Identity is the authenticated caller derived from a presented token.
// It is recomputed on every request and never persisted.
type Identity struct {
	ID           string
	Role         Role
	Status       UserStatus
	AccessToken  string
	RefreshToken string
	IssuedAt     int64
	ExpiresAt    int64
}
