package database

import (
	"strings"
	"testing"
)

func TestNormalizeDSN(t *testing.T) {
	got, err := normalizeDSN("park:secret@tcp(db:3306)/park")
	if err != nil {
		t.Fatalf("normalizeDSN: %v", err)
	}
	for _, want := range []string{"parseTime=true", "park:secret@tcp(db:3306)/park"} {
		if !strings.Contains(got, want) {
			t.Errorf("normalizeDSN = %q, missing %q", got, want)
		}
	}
}

func TestNormalizeDSNRejectsGarbage(t *testing.T) {
	if _, err := normalizeDSN("park@tcp(db:3306)"); err == nil {
		t.Error("expected error for malformed DSN")
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 6 {
		t.Errorf("embedded %d migration files, want 6", len(entries))
	}
}
