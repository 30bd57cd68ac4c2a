package testhelpers

import (
	"context"
	"testing"

	"github.com/robsiuuu/jokebook/internal/config"
	"github.com/robsiuuu/jokebook/internal/database"
	"gorm.io/gorm"
)

// SQLiteConfig returns a configuration for a private in-memory database
func SQLiteConfig() *config.Config {
	return &config.Config{
		Port:              "3000",
		LogLevel:          "warn",
		DBType:            "sqlite",
		DatabaseURL:       "file::memory:",
		DBConnectionLimit: 1,
	}
}

// NewTestDB opens an empty in-memory SQLite database with the schema created
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Connect(SQLiteConfig())
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close(db)
	})

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// NewSeededTestDB opens an in-memory SQLite database holding the seed data
func NewSeededTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	db := NewTestDB(t)
	if err := database.Initialize(context.Background(), db); err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}

	return db
}
