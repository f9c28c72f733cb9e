package database

import (
	"path/filepath"
	"testing"
)

// newTestDB creates a migrated SQLite database in a temp directory.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

// TestDatabaseIntegration tests the complete database lifecycle
func TestDatabaseIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := newTestDB(t)

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping database: %v", err)
	}

	// Test that tables were created by migrations
	tables := []string{"sessions", "progress", "word_attempts", "words", "teachers", "migrations"}

	for _, table := range tables {
		query := "SELECT name FROM sqlite_master WHERE type='table' AND name=?"
		var name string
		if err := db.QueryRow(query, table).Scan(&name); err != nil {
			t.Errorf("Table %s not found: %v", table, err)
		}
	}
}

// TestMigrationsRunOnce verifies migrations are tracked and not re-applied
func TestMigrationsRunOnce(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := newTestDB(t)

	var before int
	if err := db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&before); err != nil {
		t.Fatalf("Failed to count migrations: %v", err)
	}
	if before == 0 {
		t.Fatal("Expected at least one recorded migration")
	}

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Second migration run failed: %v", err)
	}

	var after int
	if err := db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&after); err != nil {
		t.Fatalf("Failed to count migrations: %v", err)
	}
	if after != before {
		t.Errorf("Expected %d recorded migrations after re-run, got %d", before, after)
	}
}

// TestDatabaseTransactions tests commit and rollback through the Tx wrapper
func TestDatabaseTransactions(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := newTestDB(t)

	// Test successful transaction
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}

	_, err = tx.Exec("INSERT INTO sessions (session_id, display_name) VALUES (?, ?)",
		"sess-commit", "Amira")
	if err != nil {
		tx.Rollback()
		t.Fatalf("Failed to insert in transaction: %v", err)
	}

	if err := tx.Commit(); err != nil {
		t.Fatalf("Failed to commit transaction: %v", err)
	}

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sessions WHERE session_id = ?", "sess-commit").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query after commit: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 session, got %d", count)
	}

	// Test rollback
	tx2, err := db.Begin()
	if err != nil {
		t.Fatalf("Failed to begin second transaction: %v", err)
	}

	_, err = tx2.Exec("INSERT INTO sessions (session_id, display_name) VALUES (?, ?)",
		"sess-rollback", "Bilal")
	if err != nil {
		tx2.Rollback()
		t.Fatalf("Failed to insert in second transaction: %v", err)
	}

	if err := tx2.Rollback(); err != nil {
		t.Fatalf("Failed to rollback transaction: %v", err)
	}

	err = db.QueryRow("SELECT COUNT(*) FROM sessions WHERE session_id = ?", "sess-rollback").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query after rollback: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 sessions after rollback, got %d", count)
	}
}

// TestExecReturningID verifies insert IDs come back on SQLite
func TestExecReturningID(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := newTestDB(t)

	id1, err := db.ExecReturningID("INSERT INTO sessions (session_id, display_name) VALUES (?, ?)",
		"sess-a", "Chen")
	if err != nil {
		t.Fatalf("ExecReturningID failed: %v", err)
	}
	if id1 <= 0 {
		t.Errorf("Expected positive ID, got %d", id1)
	}

	id2, err := db.ExecReturningID("INSERT INTO sessions (session_id, display_name) VALUES (?, ?)",
		"sess-b", "Dana")
	if err != nil {
		t.Fatalf("ExecReturningID failed: %v", err)
	}
	if id2 != id1+1 {
		t.Errorf("Expected sequential IDs, got %d then %d", id1, id2)
	}
}

// TestCascadeDelete verifies progress and attempts are removed with their session
func TestCascadeDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := newTestDB(t)

	_, err := db.Exec("INSERT INTO sessions (session_id, display_name) VALUES (?, ?)",
		"sess-cascade", "Elif")
	if err != nil {
		t.Fatalf("Failed to insert session: %v", err)
	}
	_, err = db.Exec("INSERT INTO progress (session_id, level, total_attempts) VALUES (?, ?, ?)",
		"sess-cascade", 1, 3)
	if err != nil {
		t.Fatalf("Failed to insert progress: %v", err)
	}
	_, err = db.Exec("INSERT INTO word_attempts (session_id, word, level, success, time_taken) VALUES (?, ?, ?, ?, ?)",
		"sess-cascade", "cat", 1, 1, 10)
	if err != nil {
		t.Fatalf("Failed to insert attempt: %v", err)
	}

	if _, err := db.Exec("DELETE FROM sessions WHERE session_id = ?", "sess-cascade"); err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}

	var progressCount, attemptCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM progress WHERE session_id = ?", "sess-cascade").Scan(&progressCount); err != nil {
		t.Fatalf("Failed to count progress: %v", err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM word_attempts WHERE session_id = ?", "sess-cascade").Scan(&attemptCount); err != nil {
		t.Fatalf("Failed to count attempts: %v", err)
	}
	if progressCount != 0 || attemptCount != 0 {
		t.Errorf("Expected cascade delete to remove children, got %d progress and %d attempts", progressCount, attemptCount)
	}
}
