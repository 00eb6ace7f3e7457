package database

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestOpen_EmptyPath_ReturnsError(t *testing.T) {
	if _, err := Open("", false); err == nil {
		t.Fatal("expected error for empty path")
	}
	if _, err := Open("   ", false); err == nil {
		t.Fatal("expected error for blank path")
	}
}

func TestOpen_CreatesFileOnPing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")

	db, err := Open(path, false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer db.Close()

	// sql.Openは接続を試行しないため、Pingで実際にファイルが作成される
	if err := db.Ping(); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
}

func TestDSN_DefaultsToForeignKeysOff(t *testing.T) {
	dsn := DSN("store.db", false)

	if !strings.HasPrefix(dsn, "store.db?") {
		t.Errorf("DSN should start with the cleaned path, got %q", dsn)
	}
	if !strings.Contains(dsn, "foreign_keys%280%29") {
		t.Errorf("DSN should disable foreign key enforcement by default, got %q", dsn)
	}
	if !strings.Contains(dsn, "journal_mode%28WAL%29") {
		t.Errorf("DSN should enable WAL journal mode, got %q", dsn)
	}
	if !strings.Contains(dsn, "busy_timeout%285000%29") {
		t.Errorf("DSN should set a busy timeout, got %q", dsn)
	}
}

func TestDSN_ForeignKeysOn(t *testing.T) {
	dsn := DSN("store.db", true)

	if !strings.Contains(dsn, "foreign_keys%281%29") {
		t.Errorf("DSN should enable foreign key enforcement, got %q", dsn)
	}
}
