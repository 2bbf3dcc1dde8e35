package entity

import (
	"time"

	"gorm.io/datatypes"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
	RoleOwner Role = "OWNER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleOwner:
		return true
	}
	return false
}

// User is created inactive and stays so until a successful OTP
// verification. OTP and OTPExpiresAt are either both set (activation
// pending) or both null. HashedRefreshToken holds the digest of the
// single active refresh token, or null when the user has no session.
type User struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	FullName       string `gorm:"type:varchar(255);not null"`
	Phone          string `gorm:"type:varchar(32)"`
	Email          string `gorm:"type:varchar(255);uniqueIndex;not null"`
	HashedPassword string `gorm:"type:text;not null"`
	Gender         string `gorm:"type:varchar(16)"`
	BirthDate      datatypes.Date
	Role           Role `gorm:"type:varchar(16);default:'USER';not null"`
	IsActive       bool `gorm:"default:false;not null"`

	ActivationLink     string     `gorm:"type:varchar(64)"`
	OTP                *string    `gorm:"column:otp;type:varchar(6)"`
	OTPExpiresAt       *time.Time `gorm:"column:otp_expires_at"`
	HashedRefreshToken *string    `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
