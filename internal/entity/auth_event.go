package entity

import (
	"time"

	"gorm.io/datatypes"
)

type AuthAction string

const (
	SignupCompleted  AuthAction = "signup"
	OTPVerified      AuthAction = "otp_verified"
	OTPSendFailed    AuthAction = "otp_send_failed"
	SigninSuccess    AuthAction = "signin_success"
	SigninFailed     AuthAction = "signin_failed"
	TokenRefreshed   AuthAction = "token_refreshed"
	RefreshReuse     AuthAction = "refresh_reuse"
	SignoutCompleted AuthAction = "signout"
)

// AuthEvent is an append-only audit row. Metadata never carries
// secrets (OTP codes, hashes, raw tokens).
type AuthEvent struct {
	ID int64 `gorm:"primaryKey;autoIncrement"`

	UserID    *int64     `gorm:"index"`
	IPAddress *string    `gorm:"type:varchar(45)"`
	Action    AuthAction `gorm:"type:varchar(32);not null"`

	Metadata datatypes.JSON

	CreatedAt time.Time
}
