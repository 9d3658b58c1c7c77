package repository

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/O-Gamal/FIlePlace/internal/db"
	"github.com/O-Gamal/FIlePlace/internal/model"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// A second connection would see a separate empty in-memory database.
	database.SetMaxOpenConns(1)

	err = db.RunMigrations(database.DB, "sqlite")
	if err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { database.Close() })
	return database
}

func seedFile(t *testing.T, repo FileRepository, id, name, fileType, orgID string) *model.File {
	t.Helper()

	file := &model.File{
		ID:        id,
		Name:      name,
		Type:      fileType,
		OrgID:     orgID,
		UserID:    "user_1",
		StorageID: "uploads/" + id,
		CreatedAt: time.Now(),
	}
	err := repo.Create(file)
	if err != nil {
		t.Fatalf("failed to seed file: %v", err)
	}
	return file
}
