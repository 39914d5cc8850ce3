package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"warden/internal/domain/agent"
	"warden/internal/infrastructure/persistence/models"
)

// DetectionSettingsRepository implements agent.SettingsRepository
type DetectionSettingsRepository struct {
	base
}

func NewDetectionSettingsRepository(gdb *gorm.DB, timeout time.Duration) agent.SettingsRepository {
	return &DetectionSettingsRepository{base: newBase(gdb, timeout)}
}

func (r *DetectionSettingsRepository) Get(ctx context.Context, licenseKey string) (json.RawMessage, error) {
	tx, cancel := r.conn(ctx)
	defer cancel()

	var model models.DetectionSettingsModel
	if err := tx.Where("license_key = ?", licenseKey).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get detection settings: %w", err)
	}
	return json.RawMessage(model.Settings), nil
}

func (r *DetectionSettingsRepository) Upsert(ctx context.Context, licenseKey string, doc json.RawMessage) error {
	tx, cancel := r.conn(ctx)
	defer cancel()

	model := &models.DetectionSettingsModel{
		LicenseKey: licenseKey,
		Settings:   datatypes.JSON(doc),
	}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "license_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"settings", "updated_at"}),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert detection settings: %w", err)
	}
	return nil
}
