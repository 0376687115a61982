package classifier

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCategoriesDefaults(t *testing.T) {
	got, err := LoadCategories("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(DefaultCategories) {
		t.Errorf("expected the built-in taxonomy, got %v", got)
	}
}

func TestLoadCategoriesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.yaml")
	content := "categories:\n  - Hawker Food\n  - Kopi\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	got, err := LoadCategories(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != "Hawker Food" || got[1] != "Kopi" {
		t.Errorf("got %v", got)
	}
}

func TestLoadCategoriesErrors(t *testing.T) {
	if _, err := LoadCategories(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should error")
	}

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(empty, []byte("categories: []\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if _, err := LoadCategories(empty); err == nil {
		t.Error("empty category list should error")
	}
}
