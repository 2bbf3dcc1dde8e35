package repository

import (
	"context"
	"errors"
	"time"

	"bozor/internal/entity"

	"gorm.io/gorm"
)

// ErrDuplicateKey surfaces a unique-constraint violation so the service
// layer can report a conflict without importing gorm.
var ErrDuplicateKey = errors.New("duplicate key")

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, excludeRole *entity.Role) ([]entity.User, error)
	Delete(ctx context.Context, id int64) error

	SetOTP(ctx context.Context, email string, code string, expiresAt time.Time) error
	// Activate flips is_active and clears both OTP columns in a single
	// conditional statement keyed on the submitted code. Returns false
	// when no row matched, which makes a verified code single-use.
	Activate(ctx context.Context, email string, code string) (bool, error)

	SetRefreshTokenHash(ctx context.Context, id int64, hash string) error
	// RotateRefreshTokenHash is a compare-and-swap: the update only
	// applies while the stored hash still equals oldHash. Of two
	// concurrent refreshes at most one observes true.
	RotateRefreshTokenHash(ctx context.Context, id int64, oldHash, newHash string) (bool, error)
	ClearRefreshTokenHash(ctx context.Context, id int64) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}
	return err
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) List(ctx context.Context, excludeRole *entity.Role) ([]entity.User, error) {
	var users []entity.User
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if excludeRole != nil {
		query = query.Where("role <> ?", *excludeRole)
	}
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entity.User{}).
		Error
}

func (r *userRepository) SetOTP(ctx context.Context, email string, code string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("email = ?", email).
		Updates(map[string]any{
			"otp":            code,
			"otp_expires_at": expiresAt,
		}).
		Error
}

func (r *userRepository) Activate(ctx context.Context, email string, code string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("email = ? AND otp = ?", email, code).
		Updates(map[string]any{
			"is_active":      true,
			"otp":            nil,
			"otp_expires_at": nil,
		})
	return result.RowsAffected > 0, result.Error
}

func (r *userRepository) SetRefreshTokenHash(ctx context.Context, id int64, hash string) error {
	return r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", id).
		Update("hashed_refresh_token", hash).
		Error
}

func (r *userRepository) RotateRefreshTokenHash(ctx context.Context, id int64, oldHash, newHash string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ? AND hashed_refresh_token = ?", id, oldHash).
		Update("hashed_refresh_token", newHash)
	return result.RowsAffected > 0, result.Error
}

func (r *userRepository) ClearRefreshTokenHash(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ? AND hashed_refresh_token IS NOT NULL", id).
		Update("hashed_refresh_token", nil).
		Error
}
