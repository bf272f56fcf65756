package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

type collectDiag struct{ warnings []string }

func (c *collectDiag) Warn(format string, args ...any) {
	c.warnings = append(c.warnings, format)
}

func writePort(t *testing.T, root, name, contents string) {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "portfile.toml"), []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestDirCatalogResolvesAndCaches(t *testing.T) {
	root := t.TempDir()
	writePort(t, root, "curl", `
[port]
name = "curl"

[core]
depends = ["zlib"]

[[feature]]
name = "ssl"
depends = ["openssl"]
`)

	diag := &collectDiag{}
	cat := NewDirCatalog(root, diag)

	desc, ok := cat.Get("curl")
	if !ok {
		t.Fatalf("expected curl to resolve")
	}
	if desc.Name != "curl" {
		t.Errorf("Name = %q", desc.Name)
	}
	if len(desc.CoreDependencies) != 1 || desc.CoreDependencies[0].Spec.Name != "zlib" {
		t.Errorf("CoreDependencies = %+v", desc.CoreDependencies)
	}
	feat, ok := desc.Feature("ssl")
	if !ok || len(feat.Dependencies) != 1 || feat.Dependencies[0].Spec.Name != "openssl" {
		t.Errorf("feature ssl = %+v, ok=%v", feat, ok)
	}

	// Second call must hit the cache and not re-read the file.
	if err := os.Remove(filepath.Join(root, "curl", "portfile.toml")); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	_, ok = cat.Get("curl")
	if !ok {
		t.Errorf("expected cached hit after file removal")
	}
}

func TestDirCatalogMissingPortIsNotAnError(t *testing.T) {
	cat := NewDirCatalog(t.TempDir(), nil)
	_, ok := cat.Get("nonexistent")
	if ok {
		t.Errorf("expected miss for nonexistent port")
	}
}

func TestDirCatalogParseErrorWarnsAndReportsAbsent(t *testing.T) {
	root := t.TempDir()
	writePort(t, root, "broken", "this is not valid toml [[[")

	diag := &collectDiag{}
	cat := NewDirCatalog(root, diag)
	_, ok := cat.Get("broken")
	if ok {
		t.Errorf("expected broken portfile to resolve as absent")
	}
	if len(diag.warnings) == 0 {
		t.Errorf("expected a parse diagnostic to be recorded")
	}
}
