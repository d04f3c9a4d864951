package database

import (
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/yukikurage/todo-api/internal/models"
)

// EnsureIndexes makes sure the indexes used by task filtering and sorting
// exist. AutoMigrate creates them on fresh databases; this also covers tables
// created before the index tags were added.
func EnsureIndexes(db *gorm.DB, log zerolog.Logger) error {
	indexes := []struct {
		model interface{}
		name  string
	}{
		{&models.Task{}, "idx_tasks_status"},
		{&models.Task{}, "idx_tasks_title"},
		{&models.Task{}, "idx_tasks_created_at"},
		{&models.User{}, "idx_users_username"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			log.Debug().Str("index", idx.name).Msg("index already exists, skipping")
			continue
		}

		if err := migrator.CreateIndex(idx.model, idx.name); err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info().Str("index", idx.name).Msg("created index")
	}

	return nil
}
