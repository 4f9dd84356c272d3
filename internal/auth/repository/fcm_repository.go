package repository

import (
	"time"

	authdomain "taskhub-backend/internal/auth/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FCMTokenRepository is the device token registry backing reminder push delivery.
// A token is unique per device; registering it again rebinds it to the caller.
type FCMTokenRepository interface {
	SaveToken(userID, token, deviceInfo string) error
	GetTokensByUserID(userID string) ([]authdomain.FCMToken, error)
	DeleteToken(token string) error
}

// gormFCMTokenRepository implements FCMTokenRepository using GORM.
type gormFCMTokenRepository struct {
	db *gorm.DB
}

// NewFCMTokenRepository creates a new GORM-based FCMTokenRepository.
func NewFCMTokenRepository(db *gorm.DB) FCMTokenRepository {
	return &gormFCMTokenRepository{db: db}
}

// SaveToken upserts on the token's unique index so a device that switches
// accounts ends up registered to exactly one user.
func (r *gormFCMTokenRepository) SaveToken(userID, token, deviceInfo string) error {
	now := time.Now()
	row := &authdomain.FCMToken{
		ID:         uuid.New().String(),
		UserID:     userID,
		Token:      token,
		DeviceInfo: deviceInfo,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "device_info", "updated_at"}),
	}).Create(row).Error
}

func (r *gormFCMTokenRepository) GetTokensByUserID(userID string) ([]authdomain.FCMToken, error) {
	var tokens []authdomain.FCMToken
	if err := r.db.Where("user_id = ?", userID).Find(&tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}

func (r *gormFCMTokenRepository) DeleteToken(token string) error {
	return r.db.Where("token = ?", token).Delete(&authdomain.FCMToken{}).Error
}
