package migrations

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func TestMigrateUp_FreshDatabase(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}

	tables := []string{"persons", "marriages", "relations", "operations", "schema_migrations"}
	for _, table := range tables {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s was not created: %v", table, err)
		}
	}
}

func TestGetStatus(t *testing.T) {
	db := openTestDB(t)

	latest, err := LatestVersion()
	if err != nil {
		t.Fatalf("LatestVersion() error = %v", err)
	}
	if latest < 2 {
		t.Errorf("LatestVersion() = %d, want at least 2", latest)
	}

	st, err := GetStatus(db)
	if err != nil {
		t.Fatalf("GetStatus() error = %v", err)
	}
	if st.Current != 0 || st.Latest != latest || st.UpToDate() {
		t.Errorf("fresh GetStatus() = %+v, want current 0 and latest %d", st, latest)
	}

	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}

	st, err = GetStatus(db)
	if err != nil {
		t.Fatalf("GetStatus() error = %v", err)
	}
	if !st.UpToDate() {
		t.Errorf("migrated GetStatus() = %+v, want up to date", st)
	}
}

func TestCheckDBMigrationStatus_FreshDatabase(t *testing.T) {
	db := openTestDB(t)

	err := CheckDBMigrationStatus(db)
	if err == nil {
		t.Fatal("CheckDBMigrationStatus() expected error for fresh database, got nil")
	}
	if err.Error() != "database has no schema version (run 'lignee db migrate')" {
		t.Errorf("CheckDBMigrationStatus() error = %q, want error about needing migration", err.Error())
	}
}

func TestCheckDBMigrationStatus_AfterMigration(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}
	if err := CheckDBMigrationStatus(db); err != nil {
		t.Errorf("CheckDBMigrationStatus() after migration returned error: %v", err)
	}
}

func TestMigrateUp_Idempotent(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateUp(db); err != nil {
		t.Fatalf("First MigrateUp() failed: %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Errorf("Second MigrateUp() failed: %v (should be idempotent)", err)
	}
	if err := CheckDBMigrationStatus(db); err != nil {
		t.Errorf("CheckDBMigrationStatus() after double migration returned error: %v", err)
	}
}

func TestSchema_Constraints(t *testing.T) {
	db := openTestDB(t)
	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}

	mustExec := func(query string, args ...any) {
		t.Helper()
		if _, err := db.Exec(query, args...); err != nil {
			t.Fatalf("Exec(%q) error = %v", query, err)
		}
	}
	mustExec("INSERT INTO persons (id, surname) VALUES (1, 'Martin'), (2, 'Durand')")

	tests := []struct {
		name  string
		query string
	}{
		{"marriage without spouse", "INSERT INTO marriages (husband_id, wife_id) VALUES (NULL, NULL)"},
		{"marriage with unknown spouse", "INSERT INTO marriages (husband_id) VALUES (99)"},
		{"unknown end type", "INSERT INTO marriages (husband_id, end_type) VALUES (1, 'separation')"},
		{"self relation", "INSERT INTO relations (person_id, related_id, type) VALUES (1, 1, 'parent')"},
		{"unknown relation type", "INSERT INTO relations (person_id, related_id, type) VALUES (1, 2, 'cousin')"},
		{"relation to unknown person", "INSERT INTO relations (person_id, related_id, type) VALUES (1, 99, 'parent')"},
		{"relation with unknown marriage", "INSERT INTO relations (person_id, related_id, marriage_id, type) VALUES (1, 2, 99, 'parent')"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := db.Exec(tt.query); err == nil {
				t.Errorf("Exec(%q) succeeded, want constraint violation", tt.query)
			}
		})
	}

	t.Run("valid rows are accepted", func(t *testing.T) {
		mustExec("INSERT INTO marriages (id, husband_id, wife_id, end_type) VALUES (1, 1, 2, 'divorce')")
		mustExec("INSERT INTO marriages (id, wife_id) VALUES (2, 2)")
		mustExec("INSERT INTO persons (id, given_names) VALUES (3, 'Paul')")
		mustExec("INSERT INTO relations (person_id, related_id, marriage_id, type) VALUES (3, 1, 1, 'parent')")
		mustExec("INSERT INTO relations (person_id, related_id, type) VALUES (1, 2, 'sibling')")
	})
}

// openTestDB opens an in-memory SQLite database with foreign keys enabled.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}
	return db
}
