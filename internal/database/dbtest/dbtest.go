// Package dbtest opens a migrated in-memory SQLite database for tests.
package dbtest

import (
	"testing"

	"aura/internal/database"
	"aura/internal/pkg/logger"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Open(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.Connect("file::memory:", database.Options{}, logger.Discard())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
