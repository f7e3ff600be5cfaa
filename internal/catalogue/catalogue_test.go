package catalogue_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"artbridge/internal/catalogue"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("<plist/>"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestSearchMatchesSubstringCaseInsensitively(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Stradivari Violin.plist"))
	writeFile(t, filepath.Join(root, "brass", "Trumpet Section.plist"))
	writeFile(t, filepath.Join(root, "notes.txt"))

	cat := catalogue.New(root, 0, nil)

	results := cat.Search("violin")
	if len(results) != 1 || results[0].Name != "Stradivari Violin" {
		t.Fatalf("unexpected results: %+v", results)
	}

	nested := cat.Search("TRUMPET")
	if len(nested) != 1 || nested[0].Path != filepath.Join("brass", "Trumpet Section.plist") {
		t.Fatalf("unexpected nested result: %+v", nested)
	}

	all := cat.Search("")
	if len(all) != 2 {
		t.Fatalf("expected 2 plist entries, got %d", len(all))
	}
}

func TestSearchCapsResults(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 5; i++ {
		writeFile(t, filepath.Join(root, "Set "+string(rune('A'+i))+".plist"))
	}
	cat := catalogue.New(root, 3, nil)
	if got := cat.Search(""); len(got) != 3 {
		t.Fatalf("expected capped results, got %d", len(got))
	}
}

func TestSearchMissingRootDegradesToEmpty(t *testing.T) {
	cat := catalogue.New(filepath.Join(t.TempDir(), "missing"), 0, nil)
	if got := cat.Search("violin"); got != nil {
		t.Fatalf("expected nil results for missing root, got %+v", got)
	}
}

func TestLoadScopedToRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Flute.plist"))
	outside := filepath.Join(filepath.Dir(root), "outside.plist")
	writeFile(t, outside)

	cat := catalogue.New(root, 0, nil)

	data, err := cat.Load("Flute.plist")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected file contents")
	}

	if _, err := cat.Load(filepath.Join("..", "outside.plist")); !errors.Is(err, catalogue.ErrOutsideRoot) {
		t.Fatalf("expected ErrOutsideRoot, got %v", err)
	}
	if _, err := cat.Load(outside); !errors.Is(err, catalogue.ErrOutsideRoot) {
		t.Fatalf("expected ErrOutsideRoot for absolute escape, got %v", err)
	}
}

func TestLoadRejectsSymlinkEscape(t *testing.T) {
	root := t.TempDir()
	outside := filepath.Join(t.TempDir(), "outside.plist")
	writeFile(t, outside)
	if err := os.Symlink(outside, filepath.Join(root, "Sneaky.plist")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	cat := catalogue.New(root, 0, nil)
	if _, err := cat.Load("Sneaky.plist"); !errors.Is(err, catalogue.ErrOutsideRoot) {
		t.Fatalf("expected ErrOutsideRoot for symlink escape, got %v", err)
	}
}
