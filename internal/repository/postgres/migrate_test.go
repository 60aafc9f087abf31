package postgres

import (
	"io/fs"
	"strings"
	"testing"
)

func TestMigrateRejectsBadInput(t *testing.T) {
	if err := Migrate("", "up"); err == nil {
		t.Fatalf("expected error for empty dsn")
	}
	if err := Migrate("postgres://localhost/db", "sideways"); err == nil || !strings.Contains(err.Error(), "direction") {
		t.Fatalf("expected direction error, got %v", err)
	}
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(migrationFS, "migrations")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	ups, downs := 0, 0
	for _, entry := range entries {
		switch {
		case strings.HasSuffix(entry.Name(), ".up.sql"):
			ups++
		case strings.HasSuffix(entry.Name(), ".down.sql"):
			downs++
		}
	}
	if ups == 0 || ups != downs {
		t.Fatalf("expected matching up/down migrations, got %d up and %d down", ups, downs)
	}

	schema, err := fs.ReadFile(migrationFS, "migrations/000001_init.up.sql")
	if err != nil {
		t.Fatalf("read init migration: %v", err)
	}
	for _, table := range []string{"users", "sessions", "user_tokens", "hotels", "bookings", "paxs"} {
		if !strings.Contains(string(schema), "CREATE TABLE IF NOT EXISTS "+table+" ") {
			t.Fatalf("expected table %s in init migration", table)
		}
	}
}
