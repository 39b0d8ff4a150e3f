package services

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/rmateos/taskdeck-be/internal/database"
)

// newTestDB opens a throwaway sqlite database with the full schema applied.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

// newTestServices wires the user and task services over one test database.
func newTestServices(t *testing.T) (*UserService, *TaskService, *sql.DB) {
	t.Helper()
	db := newTestDB(t)
	eventSvc := NewEventService(db, nil)
	return NewUserService(db), NewTaskService(db, eventSvc), db
}
