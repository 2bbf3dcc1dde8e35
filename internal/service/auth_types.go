package service

import (
	"context"
	"time"

	"bozor/internal/entity"

	"golang.org/x/crypto/bcrypt"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash string, password string) bool
}

// OTPGenerator produces a 6-digit numeric code and its absolute expiry.
type OTPGenerator interface {
	Generate() (code string, expiresAt time.Time, err error)
}

// OTPSender delivers a one-time code to the user's registered address.
// A delivery failure must be reported, never swallowed.
type OTPSender interface {
	SendOTP(ctx context.Context, user *entity.User, code string) error
}

// TokenIssuer signs and verifies the access/refresh token pair. Decode
// extracts claims without verifying the signature; it exists for
// callers that only need a best-effort peek and must never stand in
// for VerifyAccess or VerifyRefresh.
type TokenIssuer interface {
	IssuePair(user *entity.User) (*TokenPair, error)
	VerifyAccess(token string) (*Claims, error)
	VerifyRefresh(token string) (*Claims, error)
	Decode(token string) (*Claims, error)
}

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

type BcryptPasswordHasher struct {
	Cost int
}

func (h BcryptPasswordHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (h BcryptPasswordHasher) Verify(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
