package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"warden/internal/domain/account"
	"warden/internal/infrastructure/persistence/mappers"
	"warden/internal/infrastructure/persistence/models"
)

type PanelAdminRepository struct {
	base
	mapper mappers.AccountMapper
}

func NewPanelAdminRepository(db *gorm.DB, timeout time.Duration) account.PanelAdminRepository {
	return &PanelAdminRepository{
		base:   newBase(db, timeout),
		mapper: mappers.NewAccountMapper(),
	}
}

func (r *PanelAdminRepository) Create(ctx context.Context, a *account.PanelAdmin) error {
	tx, cancel := r.conn(ctx)
	defer cancel()

	model := r.mapper.AdminToModel(a)
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create panel admin: %w", err)
	}
	a.ID = model.ID
	a.CreatedAt = model.CreatedAt
	a.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *PanelAdminRepository) GetByID(ctx context.Context, id uint) (*account.PanelAdmin, error) {
	return r.first(ctx, "id = ?", id)
}

// GetActiveByTokenHash ignores inactive admins.
func (r *PanelAdminRepository) GetActiveByTokenHash(ctx context.Context, tokenHash string) (*account.PanelAdmin, error) {
	if tokenHash == "" {
		return nil, nil
	}
	return r.first(ctx, "token_hash = ? AND active = ?", tokenHash, true)
}

func (r *PanelAdminRepository) GetByUsername(ctx context.Context, licenseKey, username string) (*account.PanelAdmin, error) {
	return r.first(ctx, "license_key = ? AND username = ?", licenseKey, username)
}

func (r *PanelAdminRepository) first(ctx context.Context, query string, args ...any) (*account.PanelAdmin, error) {
	tx, cancel := r.conn(ctx)
	defer cancel()

	var model models.PanelAdminModel
	if err := tx.Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get panel admin: %w", err)
	}
	return r.mapper.AdminToEntity(&model), nil
}

// FindByUsername returns every admin with the username across tenants,
// oldest first. Login disambiguates by password.
func (r *PanelAdminRepository) FindByUsername(ctx context.Context, username string) ([]*account.PanelAdmin, error) {
	return r.find(ctx, "username = ?", username)
}

func (r *PanelAdminRepository) ListByLicense(ctx context.Context, licenseKey string) ([]*account.PanelAdmin, error) {
	return r.find(ctx, "license_key = ?", licenseKey)
}

func (r *PanelAdminRepository) find(ctx context.Context, query string, arg any) ([]*account.PanelAdmin, error) {
	tx, cancel := r.conn(ctx)
	defer cancel()

	var list []*models.PanelAdminModel
	if err := tx.Where(query, arg).Order("id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list panel admins: %w", err)
	}

	out := make([]*account.PanelAdmin, 0, len(list))
	for _, m := range list {
		out = append(out, r.mapper.AdminToEntity(m))
	}
	return out, nil
}

func (r *PanelAdminRepository) Update(ctx context.Context, a *account.PanelAdmin) error {
	tx, cancel := r.conn(ctx)
	defer cancel()

	result := tx.Model(&models.PanelAdminModel{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"username":      a.Username,
			"password_hash": a.PasswordHash,
			"token_hash":    a.TokenHash,
			"active":        a.Active,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update panel admin: %w", result.Error)
	}
	return nil
}

func (r *PanelAdminRepository) Delete(ctx context.Context, id uint) error {
	tx, cancel := r.conn(ctx)
	defer cancel()

	if err := tx.Delete(&models.PanelAdminModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete panel admin: %w", err)
	}
	return nil
}
