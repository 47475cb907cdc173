// Package dbtest opens throwaway sqlite databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/josephleon/leonweb/internal/db"
)

// New creates a migrated sqlite database in a temp dir, closed on test cleanup.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := db.OpenDialector(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), false)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, errDB := conn.DB(); errDB == nil {
			_ = sqlDB.Close()
		}
	})

	return conn
}

// Break closes the underlying connection pool, so every following query fails.
func Break(t *testing.T, conn *gorm.DB) {
	t.Helper()

	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}

	if err = sqlDB.Close(); err != nil {
		t.Fatalf("failed to close sql.DB: %v", err)
	}
}
