package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherDetectsPortfileChange(t *testing.T) {
	root := t.TempDir()
	portDir := filepath.Join(root, "curl")
	if err := os.Mkdir(portDir, 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	portfile := filepath.Join(portDir, "portfile.toml")
	if err := os.WriteFile(portfile, []byte("[port]\nname = \"curl\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	w, err := New(root)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(portfile, []byte("[port]\nname = \"curl\"\n[core]\ndepends = [\"zlib\"]\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	select {
	case c := <-w.Changes:
		if c.Port != "curl" {
			t.Errorf("Port = %q, want curl", c.Port)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	root := t.TempDir()
	portDir := filepath.Join(root, "curl")
	if err := os.Mkdir(portDir, 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}

	w, err := New(root)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(portDir, "notes.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	select {
	case c := <-w.Changes:
		t.Errorf("unexpected change event: %+v", c)
	case <-time.After(300 * time.Millisecond):
	}
}
