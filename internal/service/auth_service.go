package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"bozor/internal/entity"
	"bozor/internal/repository"
	"bozor/internal/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const minPasswordLength = 6

// AuthService is the credential and session lifecycle engine: signup
// with pending activation, OTP verification, signin, refresh-token
// rotation and signout. It is stateless between requests; all
// per-user serialization happens in the repository's conditional
// updates.
type AuthService struct {
	users  repository.UserRepository
	events repository.AuthEventRepository

	passwordHash PasswordHasher
	tokens       TokenIssuer
	otps         OTPGenerator
	otpSender    OTPSender
	clock        Clock
}

func NewAuthService(
	users repository.UserRepository,
	events repository.AuthEventRepository,
	passwordHash PasswordHasher,
	tokens TokenIssuer,
	otps OTPGenerator,
	otpSender OTPSender,
	clock Clock,
) *AuthService {
	return &AuthService{
		users:        users,
		events:       events,
		passwordHash: passwordHash,
		tokens:       tokens,
		otps:         otps,
		otpSender:    otpSender,
		clock:        clock,
	}
}

type SignupInput struct {
	FullName  string
	Phone     string
	Email     string
	Password  string
	Gender    string
	BirthDate time.Time
}

type SigninInput struct {
	Email     string
	Password  string
	IPAddress *string
}

type SigninResult struct {
	UserID       int64
	AccessToken  string
	RefreshToken string
}

// SignUp creates a pending-activation user with the asserted role,
// stores a fresh OTP and attempts delivery. The caller is responsible
// for authorizing non-USER roles before asserting them. The user row
// survives a delivery failure; only the notification is reported lost.
func (s *AuthService) SignUp(ctx context.Context, input SignupInput, role entity.Role) (string, error) {
	if strings.TrimSpace(input.Email) == "" || !role.Valid() {
		return "", ErrInvalidInput
	}

	existing, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		return "", fmt.Errorf("signup lookup: %w", err)
	}
	if existing != nil {
		return "", ErrUserExists
	}

	if len(input.Password) < minPasswordLength {
		return "", ErrWeakPassword
	}

	hash, err := s.passwordHash.Hash(input.Password)
	if err != nil {
		return "", fmt.Errorf("signup hash: %w", err)
	}

	user := &entity.User{
		FullName:       input.FullName,
		Phone:          input.Phone,
		Email:          input.Email,
		HashedPassword: hash,
		Gender:         input.Gender,
		BirthDate:      datatypes.Date(input.BirthDate),
		Role:           role,
		IsActive:       false,
		ActivationLink: uuid.NewString(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Unique constraint on email is the backstop against a
		// concurrent signup between lookup and insert.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return "", ErrUserExists
		}
		return "", fmt.Errorf("signup create: %w", err)
	}

	code, expiresAt, err := s.otps.Generate()
	if err != nil {
		return "", fmt.Errorf("signup otp: %w", err)
	}
	if err := s.users.SetOTP(ctx, user.Email, code, expiresAt); err != nil {
		return "", fmt.Errorf("signup store otp: %w", err)
	}

	if err := s.otpSender.SendOTP(ctx, user, code); err != nil {
		s.logEvent(ctx, &user.ID, nil, entity.OTPSendFailed, nil)
		return "", ErrOTPDeliveryFailed
	}

	s.logEvent(ctx, &user.ID, nil, entity.SignupCompleted, map[string]any{"role": role})
	return "Signed up successfully. Enter the code sent to your email to activate your account.", nil
}

// VerifyOTP activates the account if the submitted code matches the
// pending one and has not expired. Activation clears the code in the
// same conditional update, so a verified code cannot be replayed.
func (s *AuthService) VerifyOTP(ctx context.Context, email string, code string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("verify otp lookup: %w", err)
	}
	if user == nil || user.OTP == nil || user.OTPExpiresAt == nil {
		return "", ErrOTPNotPending
	}

	// Strictly after the deadline is expired; a code submitted at the
	// exact expiry instant still verifies.
	if *user.OTP != code || s.now().After(*user.OTPExpiresAt) {
		return "", ErrOTPInvalid
	}

	ok, err := s.users.Activate(ctx, email, code)
	if err != nil {
		return "", fmt.Errorf("verify otp activate: %w", err)
	}
	if !ok {
		return "", ErrOTPInvalid
	}

	s.logEvent(ctx, &user.ID, nil, entity.OTPVerified, nil)
	return "OTP verified. Account activated.", nil
}

// SignIn issues a fresh token pair and persists the digest of the new
// refresh token, superseding any previous session for the user. It
// does not gate on activation state; protected routes reject inactive
// accounts from the verified claims downstream.
func (s *AuthService) SignIn(ctx context.Context, input SigninInput) (*SigninResult, error) {
	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("signin lookup: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if !s.passwordHash.Verify(user.HashedPassword, input.Password) {
		s.logEvent(ctx, &user.ID, input.IPAddress, entity.SigninFailed, nil)
		return nil, ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		return nil, fmt.Errorf("signin issue tokens: %w", err)
	}

	if err := s.users.SetRefreshTokenHash(ctx, user.ID, utils.HashToken(pair.RefreshToken)); err != nil {
		return nil, fmt.Errorf("signin persist refresh hash: %w", err)
	}

	s.logEvent(ctx, &user.ID, input.IPAddress, entity.SigninSuccess, nil)
	return &SigninResult{
		UserID:       user.ID,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Refresh rotates the token pair. The submitted token is verified
// against the refresh secret before any lookup; only then are the
// now-trusted claims used to find the user and compare the stored
// hash. A null stored hash means the session was terminated (access
// denied); a mismatching hash means a superseded token was replayed
// and is reported as a distinct failure.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string, ipAddress *string) (*SigninResult, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, ErrNoRefreshToken
	}

	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil || claims.UserID == 0 {
		return nil, ErrInvalidTokenPayload
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("refresh lookup: %w", err)
	}
	if user == nil || user.HashedRefreshToken == nil {
		return nil, ErrAccessDenied
	}

	submittedHash := utils.HashToken(refreshToken)
	if submittedHash != *user.HashedRefreshToken {
		s.logEvent(ctx, &user.ID, ipAddress, entity.RefreshReuse, nil)
		return nil, ErrRefreshTokenMismatch
	}

	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		return nil, fmt.Errorf("refresh issue tokens: %w", err)
	}

	// Compare-and-swap on the hash just matched: of two concurrent
	// refreshes with the same token, the loser sees a stale hash and
	// is treated as a replay.
	rotated, err := s.users.RotateRefreshTokenHash(ctx, user.ID, submittedHash, utils.HashToken(pair.RefreshToken))
	if err != nil {
		return nil, fmt.Errorf("refresh rotate: %w", err)
	}
	if !rotated {
		s.logEvent(ctx, &user.ID, ipAddress, entity.RefreshReuse, nil)
		return nil, ErrRefreshTokenMismatch
	}

	s.logEvent(ctx, &user.ID, ipAddress, entity.TokenRefreshed, nil)
	return &SigninResult{
		UserID:       user.ID,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// SignOut clears the stored refresh-token hash. Calling it for a user
// with no active session is not an error.
func (s *AuthService) SignOut(ctx context.Context, userID int64, ipAddress *string) error {
	if err := s.users.ClearRefreshTokenHash(ctx, userID); err != nil {
		return fmt.Errorf("signout clear refresh hash: %w", err)
	}
	s.logEvent(ctx, &userID, ipAddress, entity.SignoutCompleted, nil)
	return nil
}

func (s *AuthService) GetCurrentUser(ctx context.Context, userID int64) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// logEvent is best-effort: audit failures never fail the operation.
func (s *AuthService) logEvent(
	ctx context.Context,
	userID *int64,
	ipAddress *string,
	action entity.AuthAction,
	metadata map[string]any,
) {
	if s.events == nil {
		return
	}
	var payload datatypes.JSON
	if metadata != nil {
		bytes, err := json.Marshal(metadata)
		if err != nil {
			return
		}
		payload = datatypes.JSON(bytes)
	}
	_ = s.events.Log(ctx, &entity.AuthEvent{
		UserID:    userID,
		IPAddress: ipAddress,
		Action:    action,
		Metadata:  payload,
	})
}

func (s *AuthService) now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock.Now()
}
