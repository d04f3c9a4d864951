package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukikurage/todo-api/internal/config"
	"github.com/yukikurage/todo-api/internal/logger"
	"github.com/yukikurage/todo-api/internal/models"
)

func TestDialector(t *testing.T) {
	for _, driver := range []string{config.DriverPostgres, config.DriverMySQL, config.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			d, err := Dialector(config.DatabaseConfig{Driver: driver, Path: "x.db"})
			require.NoError(t, err)
			assert.Equal(t, driver, d.Name())
		})
	}

	_, err := Dialector(config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestConnectAndMigrate_SQLite(t *testing.T) {
	cfg := config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "todo.db"),
	}
	log := logger.Nop()

	db, err := Connect(cfg, config.EnvDev, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, Migrate(db, log))
	// a second run finds everything in place
	require.NoError(t, Migrate(db, log))

	migrator := db.Migrator()
	assert.True(t, migrator.HasTable(&models.User{}))
	assert.True(t, migrator.HasTable(&models.Task{}))
	assert.True(t, migrator.HasIndex(&models.Task{}, "idx_tasks_status"))
	assert.True(t, migrator.HasIndex(&models.User{}, "idx_users_username"))
}
