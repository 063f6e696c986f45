// Package testutil provides in-memory databases for package tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	dbpkg "github.com/BruksfildServices01/clinic-portal/internal/db"
)

// NewDB returns a migrated SQLite database private to the test. A single
// connection keeps the in-memory database alive for the test's lifetime.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := dbpkg.Open(sqlite.Open("file::memory:"), 1)
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
