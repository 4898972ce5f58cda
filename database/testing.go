package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	testDB *DB
)

// GetTestDB returns the shared test database connection.
// Nil when Postgres was unreachable in TestMain.
func GetTestDB() *DB {
	return testDB
}

// SetupTestDB connects to the test database and applies the migrations.
// Should be called once in TestMain, not in individual tests.
func SetupTestDB(dbURL string) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := Connect(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// RequireTestDB skips integration tests in short mode or without Postgres,
// otherwise truncates the tables and returns the shared connection.
func RequireTestDB(t *testing.T) *DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}
	if testDB == nil {
		t.Skip("postgres not available")
	}

	CleanupTestDB(t, testDB)
	return testDB
}

// CleanupTestDB truncates all tables for a fresh test state.
func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	ctx := context.Background()
	_, err := db.Pool.Exec(ctx, "TRUNCATE TABLE trip_projects")
	require.NoError(t, err)
}

// TeardownTestDB closes the test database connection.
// Safe to call with nil DB (no-op).
func TeardownTestDB(db *DB) {
	if db != nil {
		db.Close()
	}
}
