package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shoplens/backend/internal/infrastructure/persistence/models"
)

// setupTestDB opens an in-memory sqlite database with the production
// models migrated. TranslateError matches the production connection so
// unique violations surface as gorm.ErrDuplicatedKey here too.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Tenant{},
		&models.Customer{},
		&models.Product{},
		&models.Order{},
		&models.Event{},
	)
	require.NoError(t, err)

	return db
}
