package pkg

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/craftportal/learning-service/internal/config"
	pgrepo "github.com/craftportal/learning-service/internal/repositories/postgres"
)

// InitDatabase opens the postgres connection and runs migrations.
// TranslateError is required: the repositories classify duplicate-key and
// not-found failures from gorm's translated errors.
func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := pgrepo.Migrate(db); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}
