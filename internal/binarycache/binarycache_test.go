package binarycache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/papapumpkin/shipwright/internal/portspec"
)

func TestDirCacheHas(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "curl-x64-linux.zip"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c := NewDirCache(dir)
	if !c.Has(portspec.PackageSpec{Name: "curl", Triplet: "x64-linux"}) {
		t.Error("expected curl to be reported as built")
	}
	if c.Has(portspec.PackageSpec{Name: "zlib", Triplet: "x64-linux"}) {
		t.Error("expected zlib to be reported as not built")
	}
}
