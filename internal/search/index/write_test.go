package index

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteSnapshot_WritesAndDetectsUnchanged(t *testing.T) {
	p := filepath.Join(t.TempDir(), "cache", "search-index.json")
	raw := []byte(`[{"url":"/a"},{"url":"/b"}]`)

	snap, err := WriteSnapshot(p, raw, 0)
	if err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	if !snap.Changed || snap.Pages != 2 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != string(raw) {
		t.Fatalf("snapshot content mismatch: %q", b)
	}

	again, err := WriteSnapshot(p, raw, 0)
	if err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	if again.Changed {
		t.Fatalf("identical snapshot should not be rewritten")
	}
	if again.TextHash != snap.TextHash {
		t.Fatalf("hash mismatch")
	}
}

func TestWriteSnapshot_RejectsInvalid(t *testing.T) {
	p := filepath.Join(t.TempDir(), "search-index.json")
	if _, err := WriteSnapshot(p, []byte(`{"oops":true}`), 0); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := os.Stat(p); !os.IsNotExist(err) {
		t.Fatalf("invalid index must not be written")
	}
}
