package statusdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/papapumpkin/shipwright/internal/portspec"
)

func TestSQLiteStatusDatabaseRecordAndRead(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "status.db")

	db, err := OpenSQLiteStatusDatabase(ctx, path)
	if err != nil {
		t.Fatalf("OpenSQLiteStatusDatabase: %v", err)
	}
	defer db.Close()

	spec := portspec.PackageSpec{Name: "zlib", Triplet: "x64-linux"}
	if err := db.Record(ctx, spec, "core", nil); err != nil {
		t.Fatalf("Record core: %v", err)
	}
	if err := db.Record(ctx, spec, "tools", []string{"zlib"}); err != nil {
		t.Fatalf("Record tools: %v", err)
	}

	got := db.FindInstalled(spec)
	if len(got) != 2 {
		t.Fatalf("FindInstalled: got %d records, want 2: %+v", len(got), got)
	}

	all := db.All()
	if len(all) != 2 {
		t.Fatalf("All: got %d records, want 2", len(all))
	}

	if err := db.Unrecord(ctx, spec); err != nil {
		t.Fatalf("Unrecord: %v", err)
	}
	if got := db.FindInstalled(spec); len(got) != 0 {
		t.Errorf("FindInstalled after Unrecord: got %+v", got)
	}
}
