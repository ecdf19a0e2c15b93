package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// OpenTestStore opens a migrated club store in t.TempDir() and returns the
// writer and reader pools, closed automatically when the test ends.
func OpenTestStore(t *testing.T) (write, read *sql.DB) {
	t.Helper()

	write, read, err := Open(filepath.Join(t.TempDir(), "club.sqlite"), 0)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() {
		_ = read.Close()
		_ = write.Close()
	})

	if err := RunMigrations(write); err != nil {
		t.Fatalf("migrate test store: %v", err)
	}
	return write, read
}
