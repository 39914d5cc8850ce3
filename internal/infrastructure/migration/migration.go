package migration

import (
	"fmt"

	"gorm.io/gorm"

	"warden/internal/shared/logger"
)

const (
	StrategyAuto  = "auto"
	StrategyGoose = "goose"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks a strategy by name. Goose scripts are written for MySQL,
// so sqlite always uses AutoMigrate.
func NewManager(name, driver string) (*Manager, error) {
	var strategy Strategy
	switch name {
	case "", StrategyAuto:
		strategy = NewGormAutoMigrateStrategy()
	case StrategyGoose:
		if driver != "mysql" {
			return nil, fmt.Errorf("goose migrations require the mysql driver, got %q", driver)
		}
		strategy = NewGooseStrategy("mysql")
	default:
		return nil, fmt.Errorf("unknown migration strategy %q", name)
	}
	return NewManagerWithStrategy(strategy), nil
}

// NewManagerWithStrategy creates a new migration manager with a specific strategy
func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().With("component", "migration.manager"),
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB, models ...any) error {
	m.logger.Infow("starting database migration",
		"strategy", m.strategy.GetName(),
		"models_count", len(models))

	if err := m.strategy.Migrate(db, models...); err != nil {
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

// GetStrategy returns the current migration strategy
func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}
