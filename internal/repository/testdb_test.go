package repository

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/hitoshi/storeman/internal/database"
)

// openTestDB はマイグレーション適用済みの一時データベースを開く。
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "store.db")
	if err := database.RunMigrations(path); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	db, err := database.Open(path, false)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}
