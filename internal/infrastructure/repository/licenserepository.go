package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"warden/internal/domain/license"
	"warden/internal/infrastructure/persistence/mappers"
	"warden/internal/infrastructure/persistence/models"
	"warden/internal/shared/logger"
)

// LicenseRepository implements license.Repository
type LicenseRepository struct {
	base
	logger logger.Interface
	mapper mappers.LicenseMapper
}

// NewLicenseRepository creates a new LicenseRepository
func NewLicenseRepository(db *gorm.DB, timeout time.Duration, logger logger.Interface) license.Repository {
	return &LicenseRepository{
		base:   newBase(db, timeout),
		logger: logger,
		mapper: mappers.NewLicenseMapper(),
	}
}

func (r *LicenseRepository) Create(ctx context.Context, l *license.License) error {
	tx, cancel := r.conn(ctx)
	defer cancel()

	if err := tx.Create(r.mapper.ToModel(l)).Error; err != nil {
		r.logger.Errorw("failed to create license", "license_key", l.LicenseKey, "error", err)
		return fmt.Errorf("failed to create license: %w", err)
	}
	return nil
}

func (r *LicenseRepository) Get(ctx context.Context, key string) (*license.License, error) {
	tx, cancel := r.conn(ctx)
	defer cancel()

	var model models.LicenseModel
	if err := tx.Where("license_key = ?", key).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get license: %w", err)
	}
	return r.mapper.ToEntity(&model), nil
}

func (r *LicenseRepository) List(ctx context.Context) ([]*license.License, error) {
	tx, cancel := r.conn(ctx)
	defer cancel()

	var list []*models.LicenseModel
	if err := tx.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list licenses: %w", err)
	}
	return r.mapper.ToEntities(list), nil
}

// BindHWID only writes when no device is bound yet, so two concurrent first
// verifications cannot overwrite each other. It returns false when the row
// was already bound (or the key is unknown).
func (r *LicenseRepository) BindHWID(ctx context.Context, key, hwid string) (bool, error) {
	tx, cancel := r.conn(ctx)
	defer cancel()

	result := tx.Model(&models.LicenseModel{}).
		Where("license_key = ? AND (hwid IS NULL OR hwid = '')", key).
		Update("hwid", hwid)
	if result.Error != nil {
		return false, fmt.Errorf("failed to bind hwid: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *LicenseRepository) TouchLastSeen(ctx context.Context, key string, at time.Time) error {
	tx, cancel := r.conn(ctx)
	defer cancel()

	err := tx.Model(&models.LicenseModel{}).
		Where("license_key = ?", key).
		Update("last_seen", at).Error
	if err != nil {
		return fmt.Errorf("failed to update last seen: %w", err)
	}
	return nil
}

func (r *LicenseRepository) SetStatus(ctx context.Context, key, status string) (bool, error) {
	tx, cancel := r.conn(ctx)
	defer cancel()

	result := tx.Model(&models.LicenseModel{}).
		Where("license_key = ?", key).
		Update("status", status)
	if result.Error != nil {
		return false, fmt.Errorf("failed to set license status: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *LicenseRepository) SetExpiry(ctx context.Context, key string, expiresAt *time.Time) (bool, error) {
	tx, cancel := r.conn(ctx)
	defer cancel()

	result := tx.Model(&models.LicenseModel{}).
		Where("license_key = ?", key).
		Update("expires_at", expiresAt)
	if result.Error != nil {
		return false, fmt.Errorf("failed to set license expiry: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *LicenseRepository) Delete(ctx context.Context, key string) (bool, error) {
	tx, cancel := r.conn(ctx)
	defer cancel()

	result := tx.Where("license_key = ?", key).Delete(&models.LicenseModel{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete license: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
