package db

import (
	"os"
	"path/filepath"
	"testing"
)

func writeMigration(t *testing.T, dir, name, sql string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(sql), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadMigrations_SortsByVersion(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "003_labs.sql", "CREATE TABLE lab_service ();")
	writeMigration(t, dir, "001_core.sql", "CREATE TABLE users ();")
	writeMigration(t, dir, "002_appointments.sql", "CREATE TABLE appointment ();")

	m := NewMigrator(nil, dir)
	migrations, err := m.LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations() error: %v", err)
	}

	if len(migrations) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(migrations))
	}
	for i, want := range []int{1, 2, 3} {
		if migrations[i].Version != want {
			t.Errorf("migrations[%d].Version = %d, want %d", i, migrations[i].Version, want)
		}
	}
	if migrations[0].Name != "001_core.sql" {
		t.Errorf("migrations[0].Name = %q, want 001_core.sql", migrations[0].Name)
	}
}

func TestLoadMigrations_SkipsNonNumericAndNonSQL(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "001_core.sql", "CREATE TABLE users ();")
	writeMigration(t, dir, "README.md", "not a migration")
	writeMigration(t, dir, "notes.sql", "missing version prefix")
	writeMigration(t, dir, "abc_bad.sql", "non-numeric prefix")

	m := NewMigrator(nil, dir)
	migrations, err := m.LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations() error: %v", err)
	}

	if len(migrations) != 1 {
		t.Fatalf("expected 1 migration, got %d", len(migrations))
	}
	if migrations[0].Version != 1 {
		t.Errorf("Version = %d, want 1", migrations[0].Version)
	}
}

func TestLoadMigrations_MissingDirectory(t *testing.T) {
	m := NewMigrator(nil, "/nonexistent/migrations")
	if _, err := m.LoadMigrations(); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestLoadMigrations_ReadsSQLContent(t *testing.T) {
	dir := t.TempDir()
	sql := "CREATE TABLE doctor_profile (id UUID PRIMARY KEY);"
	writeMigration(t, dir, "001_staff.sql", sql)

	m := NewMigrator(nil, dir)
	migrations, err := m.LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations() error: %v", err)
	}
	if migrations[0].SQL != sql {
		t.Errorf("SQL = %q, want %q", migrations[0].SQL, sql)
	}
}
