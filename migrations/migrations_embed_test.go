package migrations

import (
	"io/fs"
	"strings"
	"testing"
)

func TestEmbeddedMigrationsPresent(t *testing.T) {
	entries, err := fs.ReadDir(FS, ".")
	if err != nil {
		t.Fatalf("read embed: %v", err)
	}
	ups, downs := 0, 0
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			ups++
		case strings.HasSuffix(e.Name(), ".down.sql"):
			downs++
		}
	}
	if ups == 0 {
		t.Fatalf("no up migrations embedded")
	}
	if ups != downs {
		t.Fatalf("unpaired migrations: %d up, %d down", ups, downs)
	}
}

func TestImageTableMigration(t *testing.T) {
	data, err := fs.ReadFile(FS, "0001_create_image.up.sql")
	if err != nil {
		t.Fatalf("read image migration: %v", err)
	}
	sql := string(data)
	for _, want := range []string{"CREATE TABLE image", "starred_album", "UNIQUE KEY"} {
		if !strings.Contains(sql, want) {
			t.Fatalf("image migration missing %q", want)
		}
	}
}
