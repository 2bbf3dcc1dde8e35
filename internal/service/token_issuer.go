package service

import (
	"time"

	"bozor/internal/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the identity payload embedded in both tokens. It is
// trusted only after signature and expiry verification.
type Claims struct {
	UserID   int64       `json:"id"`
	Email    string      `json:"email"`
	Role     entity.Role `json:"role"`
	IsActive bool        `json:"is_active"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// JWTIssuer signs access and refresh tokens with distinct secrets and
// TTLs. Configuration is injected at construction; there are no env
// lookups here.
type JWTIssuer struct {
	AccessSecret  []byte
	RefreshSecret []byte
	Issuer        string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

func (m *JWTIssuer) IssuePair(user *entity.User) (*TokenPair, error) {
	accessToken, err := m.sign(user, m.AccessSecret, m.accessTTL())
	if err != nil {
		return nil, err
	}
	refreshToken, err := m.sign(user, m.RefreshSecret, m.refreshTTL())
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (m *JWTIssuer) VerifyAccess(token string) (*Claims, error) {
	return m.verify(token, m.AccessSecret)
}

func (m *JWTIssuer) VerifyRefresh(token string) (*Claims, error) {
	return m.verify(token, m.RefreshSecret)
}

// Decode extracts claims without signature verification. No engine
// path relies on it; it backs the contract for callers that only need
// an untrusted peek at the payload.
func (m *JWTIssuer) Decode(token string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, ErrInvalidTokenPayload
	}
	return claims, nil
}

func (m *JWTIssuer) sign(user *entity.User, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Email:    user.Email,
		Role:     user.Role,
		IsActive: user.IsActive,
		RegisteredClaims: jwt.RegisteredClaims{
			// A unique jti keeps two pairs issued within the same
			// second from colliding, which the rotation invariant
			// depends on.
			ID:        uuid.NewString(),
			Issuer:    m.Issuer,
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (m *JWTIssuer) verify(tokenString string, secret []byte) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidTokenPayload
		}
		return secret, nil
	})
	if err != nil {
		return nil, ErrInvalidTokenPayload
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidTokenPayload
	}
	return claims, nil
}

func (m *JWTIssuer) accessTTL() time.Duration {
	if m.AccessTTL == 0 {
		return 15 * time.Minute
	}
	return m.AccessTTL
}

func (m *JWTIssuer) refreshTTL() time.Duration {
	if m.RefreshTTL == 0 {
		return 15 * 24 * time.Hour
	}
	return m.RefreshTTL
}
