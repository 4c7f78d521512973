package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Connect opens the database named by databaseURL and bootstraps the schema.
// URLs with a postgres scheme use lib/pq; anything else is treated as a
// SQLite file path.
func Connect(databaseURL string) (*sqlx.DB, error) {
	driver := "sqlite3"
	dsn := databaseURL
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		driver = "postgres"
	} else if dir := filepath.Dir(databaseURL); dir != "." && !strings.HasPrefix(databaseURL, ":memory:") {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %v", err)
		}
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	if driver == "sqlite3" {
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %v", err)
		}
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if err := initializeSchema(db); err != nil {
		return nil, err
	}

	return db, nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS learning_items (
			id TEXT PRIMARY KEY,
			subject TEXT NOT NULL,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			review_count INTEGER NOT NULL DEFAULT 0,
			manual_review_count INTEGER NOT NULL DEFAULT 0,
			current_interval_days INTEGER NOT NULL DEFAULT 0,
			next_review_date TIMESTAMP NOT NULL,
			is_deleted BOOLEAN NOT NULL DEFAULT false
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create learning_items table: %v", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS review_history (
			id TEXT PRIMARY KEY,
			learning_item_id TEXT NOT NULL REFERENCES learning_items(id),
			reviewed_at TIMESTAMP NOT NULL,
			is_manual BOOLEAN NOT NULL DEFAULT false,
			review_number INTEGER,
			interval_days INTEGER,
			next_review_date TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create review_history table: %v", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_learning_items_subject ON learning_items(subject)",
		"CREATE INDEX IF NOT EXISTS idx_learning_items_next_review ON learning_items(next_review_date)",
		"CREATE INDEX IF NOT EXISTS idx_review_history_item ON review_history(learning_item_id)",
	}
	for _, stmt := range indexes {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create index: %v", err)
		}
	}

	return nil
}
