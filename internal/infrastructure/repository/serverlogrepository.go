package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"warden/internal/domain/agent"
	"warden/internal/infrastructure/persistence/mappers"
	"warden/internal/infrastructure/persistence/models"
	"warden/internal/shared/db"
)

// ServerLogRepository implements agent.LogRepository
type ServerLogRepository struct {
	base
	mapper mappers.ServerLogMapper
}

func NewServerLogRepository(gdb *gorm.DB, timeout time.Duration) agent.LogRepository {
	return &ServerLogRepository{
		base:   newBase(gdb, timeout),
		mapper: mappers.NewServerLogMapper(),
	}
}

func (r *ServerLogRepository) Insert(ctx context.Context, licenseKey string, e *agent.LogEvent) error {
	tx, cancel := r.conn(ctx)
	defer cancel()

	if err := tx.Create(r.mapper.ToModel(licenseKey, e)).Error; err != nil {
		return fmt.Errorf("failed to insert server log: %w", err)
	}
	return nil
}

func (r *ServerLogRepository) ListRecent(ctx context.Context, licenseKey string, limit int) ([]*agent.LogEvent, error) {
	tx, cancel := r.conn(ctx)
	defer cancel()

	var list []*models.ServerLogModel
	err := tx.Where("license_key = ?", licenseKey).
		Order("logged_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list server logs: %w", err)
	}

	out := make([]*agent.LogEvent, 0, len(list))
	for _, m := range list {
		out = append(out, r.mapper.ToEntity(m))
	}
	return out, nil
}

func (r *ServerLogRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tx, cancel := r.conn(ctx)
	defer cancel()

	result := tx.Scopes(db.OlderThan("logged_at", cutoff)).Delete(&models.ServerLogModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete old server logs: %w", result.Error)
	}
	return result.RowsAffected, nil
}
