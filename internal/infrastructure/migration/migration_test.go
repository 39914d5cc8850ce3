package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"warden/internal/infrastructure/persistence/models"
)

func TestNewManager(t *testing.T) {
	m, err := NewManager("", "sqlite")
	require.NoError(t, err)
	assert.Equal(t, "gorm_auto_migrate", m.GetStrategy().GetName())

	m, err = NewManager(StrategyGoose, "mysql")
	require.NoError(t, err)
	assert.Equal(t, "goose", m.GetStrategy().GetName())

	_, err = NewManager(StrategyGoose, "sqlite")
	assert.Error(t, err)

	_, err = NewManager("flyway", "mysql")
	assert.Error(t, err)
}

func TestAutoMigrateCreatesAllTables(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	m, err := NewManager(StrategyAuto, "sqlite")
	require.NoError(t, err)
	require.NoError(t, m.Migrate(db, models.All()...))

	for _, table := range []string{
		"licenses", "customers", "panel_admins", "bans", "ban_identifiers",
		"server_status", "server_logs", "detection_settings",
	} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestEmbeddedScriptsPresent(t *testing.T) {
	entries, err := scripts.ReadDir(scriptsDir)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}
