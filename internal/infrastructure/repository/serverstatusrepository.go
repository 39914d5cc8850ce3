package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"warden/internal/domain/agent"
	"warden/internal/infrastructure/persistence/models"
	"warden/internal/shared/db"
)

// ServerStatusRepository implements agent.StatusMirror
type ServerStatusRepository struct {
	base
}

func NewServerStatusRepository(gdb *gorm.DB, timeout time.Duration) agent.StatusMirror {
	return &ServerStatusRepository{base: newBase(gdb, timeout)}
}

// Upsert writes rec unless the stored row was seen later. Mirror writes run
// concurrently, so an older heartbeat can arrive after a newer one; it is
// dropped instead of rolling the row back.
func (r *ServerStatusRepository) Upsert(ctx context.Context, licenseKey string, rec agent.LivenessRecord, online bool) error {
	tx, cancel := r.conn(ctx)
	defer cancel()

	seen := rec.LastSeenAt.UTC()
	update := func() (int64, error) {
		result := tx.Model(&models.ServerStatusModel{}).
			Where("license_key = ? AND last_seen <= ?", licenseKey, seen).
			Updates(map[string]interface{}{
				"online":         online,
				"player_count":   rec.PlayerCount,
				"uptime_seconds": rec.UptimeSeconds,
				"version":        rec.Version,
				"last_seen":      seen,
			})
		return result.RowsAffected, result.Error
	}

	n, err := update()
	if err != nil {
		return fmt.Errorf("failed to update server status: %w", err)
	}
	if n > 0 {
		return nil
	}

	model := &models.ServerStatusModel{
		LicenseKey:    licenseKey,
		Online:        online,
		PlayerCount:   rec.PlayerCount,
		UptimeSeconds: rec.UptimeSeconds,
		Version:       rec.Version,
		LastSeen:      seen,
	}
	result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to insert server status: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// Lost the insert to a concurrent writer; apply again if still newer.
	if _, err := update(); err != nil {
		return fmt.Errorf("failed to update server status: %w", err)
	}
	return nil
}

func (r *ServerStatusRepository) MarkStaleOffline(ctx context.Context, cutoff time.Time) (int64, error) {
	tx, cancel := r.conn(ctx)
	defer cancel()

	result := tx.Model(&models.ServerStatusModel{}).
		Where("online = ?", true).
		Scopes(db.OlderThan("last_seen", cutoff)).
		Update("online", false)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark stale servers offline: %w", result.Error)
	}
	return result.RowsAffected, nil
}
