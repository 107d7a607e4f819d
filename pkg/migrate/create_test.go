package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func freezeClock(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

func TestCreateSQLMigrationUsesClockVersion(t *testing.T) {
	freezeClock(t, time.Date(2026, 3, 1, 9, 4, 0, 0, time.UTC))
	dir := t.TempDir()

	path, err := CreateSQLMigration(dir, "create_notices")
	if err != nil {
		t.Fatalf("create migration: %v", err)
	}
	if filepath.Base(path) != "20260301090400_create_notices.sql" {
		t.Fatalf("unexpected file %s", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	if !strings.Contains(string(data), "-- rollback create_notices") {
		t.Fatalf("template not rendered:\n%s", data)
	}
}

func TestCreateSQLMigrationRejectsVersionClash(t *testing.T) {
	freezeClock(t, time.Date(2026, 3, 1, 9, 4, 0, 0, time.UTC))
	dir := t.TempDir()

	if _, err := CreateSQLMigration(dir, "first"); err != nil {
		t.Fatalf("create first: %v", err)
	}
	if _, err := CreateSQLMigration(dir, "second"); err == nil {
		t.Fatalf("expected version clash")
	}
}

func TestSanitizeName(t *testing.T) {
	cases := map[string]string{
		"  Add Notices ":      "add_notices",
		"drop__old--table":    "drop_old_table",
		"!!!":                 "",
		"UserSocieties_Index": "usersocieties_index",
	}
	for in, want := range cases {
		if got := sanitizeName(in); got != want {
			t.Fatalf("sanitizeName(%q) = %q, want %q", in, got, want)
		}
	}
}
