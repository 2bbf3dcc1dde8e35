package service

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrWeakPassword       = errors.New("password must be at least 6 characters long")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrOTPNotPending      = errors.New("otp not found or expired")
	ErrOTPInvalid         = errors.New("invalid or expired otp")
	ErrInvalidCredentials = errors.New("email or password is incorrect")
	ErrOTPDeliveryFailed  = errors.New("failed to send otp email")

	// Refresh failures are deliberately distinct: a missing or
	// unverifiable token and a terminated session are unauthorized,
	// while a hash mismatch signals reuse of a superseded token and
	// maps to forbidden.
	ErrNoRefreshToken       = errors.New("no refresh token")
	ErrInvalidTokenPayload  = errors.New("invalid token payload")
	ErrAccessDenied         = errors.New("access denied")
	ErrRefreshTokenMismatch = errors.New("invalid refresh token")

	ErrNotAllowed            = errors.New("forbidden")
	ErrOnlyOwnerCreatesAdmin = errors.New("only owner can create admin")
	ErrOnlyOwnerAssignsRoles = errors.New("only owner can assign roles")
	ErrOwnerUndeletable      = errors.New("owner cannot be deleted")
	ErrAdminDeletesAdmin     = errors.New("admin cannot delete other admins")
)
