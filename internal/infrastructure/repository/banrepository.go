package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"warden/internal/domain/ban"
	"warden/internal/infrastructure/persistence/mappers"
	"warden/internal/infrastructure/persistence/models"
	"warden/internal/shared/db"
	"warden/internal/shared/logger"
)

// BanRepository implements ban.Repository. Identifiers live in their own
// table so Check is a single join.
type BanRepository struct {
	base
	txManager *db.TransactionManager
	logger    logger.Interface
	mapper    mappers.BanMapper
}

func NewBanRepository(gdb *gorm.DB, timeout time.Duration, logger logger.Interface) ban.Repository {
	return &BanRepository{
		base:      newBase(gdb, timeout),
		txManager: db.NewTransactionManager(gdb),
		logger:    logger,
		mapper:    mappers.NewBanMapper(),
	}
}

// Create writes the ban and its identifier rows in one transaction.
func (r *BanRepository) Create(ctx context.Context, b *ban.Ban) error {
	ctx, cancel := db.Bounded(ctx, r.timeout)
	defer cancel()

	model := r.mapper.ToModel(b)
	idents := model.Identifiers
	model.Identifiers = nil

	err := r.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		tx := db.GetTxFromContext(ctx, r.db)
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		if len(idents) == 0 {
			return nil
		}
		return tx.Create(&idents).Error
	})
	if err != nil {
		r.logger.Errorw("failed to create ban", "ban_id", b.BanID, "license_key", b.LicenseKey, "error", err)
		return fmt.Errorf("failed to create ban: %w", err)
	}
	return nil
}

func (r *BanRepository) Get(ctx context.Context, banID string) (*ban.Ban, error) {
	tx, cancel := r.conn(ctx)
	defer cancel()

	var model models.BanModel
	err := tx.Preload("Identifiers", withIdentifierOrder).
		Where("ban_id = ?", banID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ban: %w", err)
	}
	return r.mapper.ToEntity(&model), nil
}

func (r *BanRepository) ListByLicense(ctx context.Context, licenseKey string) ([]*ban.Ban, error) {
	tx, cancel := r.conn(ctx)
	defer cancel()

	var list []*models.BanModel
	err := tx.Preload("Identifiers", withIdentifierOrder).
		Where("license_key = ?", licenseKey).
		Order("created_at DESC").
		Order("id DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bans: %w", err)
	}
	return r.mapper.ToEntities(list), nil
}

func (r *BanRepository) FindActiveByIdentifiers(ctx context.Context, licenseKey string, identifiers []string, now time.Time) (*ban.Ban, error) {
	if len(identifiers) == 0 {
		return nil, nil
	}

	tx, cancel := r.conn(ctx)
	defer cancel()

	var list []*models.BanModel
	err := tx.Model(&models.BanModel{}).
		Joins("JOIN ban_identifiers ON ban_identifiers.ban_id = bans.ban_id").
		Where("bans.license_key = ?", licenseKey).
		Where("ban_identifiers.identifier IN ?", identifiers).
		Scopes(db.ActiveAt("bans", now)).
		Order("bans.created_at DESC").
		Order("bans.id DESC").
		Limit(1).
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check bans: %w", err)
	}
	if len(list) == 0 {
		return nil, nil
	}

	var idents []models.BanIdentifierModel
	if err := tx.Where("ban_id = ?", list[0].BanID).Order("id ASC").Find(&idents).Error; err != nil {
		return nil, fmt.Errorf("failed to load ban identifiers: %w", err)
	}
	list[0].Identifiers = idents
	return r.mapper.ToEntity(list[0]), nil
}

func (r *BanRepository) CountActive(ctx context.Context, licenseKey string, now time.Time) (int64, error) {
	tx, cancel := r.conn(ctx)
	defer cancel()

	var n int64
	err := tx.Model(&models.BanModel{}).
		Where("license_key = ?", licenseKey).
		Scopes(db.ActiveAt("", now)).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count bans: %w", err)
	}
	return n, nil
}

func (r *BanRepository) SetEvidenceURL(ctx context.Context, banID, url string) (bool, error) {
	tx, cancel := r.conn(ctx)
	defer cancel()

	result := tx.Model(&models.BanModel{}).Where("ban_id = ?", banID).Update("evidence_url", url)
	if result.Error != nil {
		return false, fmt.Errorf("failed to set evidence url: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *BanRepository) SetExpiry(ctx context.Context, banID string, expiresAt time.Time) (bool, error) {
	tx, cancel := r.conn(ctx)
	defer cancel()

	result := tx.Model(&models.BanModel{}).Where("ban_id = ?", banID).Update("expires_at", expiresAt)
	if result.Error != nil {
		return false, fmt.Errorf("failed to set ban expiry: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func withIdentifierOrder(tx *gorm.DB) *gorm.DB {
	return tx.Order("id ASC")
}
