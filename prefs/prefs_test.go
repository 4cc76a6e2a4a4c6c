package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadMissingFile(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "prefs.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Defaults(), p); diff != "" {
		t.Fatalf("expected defaults (-want +got):\n%s", diff)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.yaml")

	want := Prefs{Theme: "light", API: "http://localhost:3001", Email: "admin@realty.mx"}
	if err := Save(path, want); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("prefs mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadUnknownTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	if err := os.WriteFile(path, []byte("theme: purple\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.Theme != "dark" {
		t.Fatalf("expected dark theme, got %q", p.Theme)
	}
}

func TestToggle(t *testing.T) {
	p := Defaults().Toggle()
	if p.Theme != "light" {
		t.Fatalf("expected light, got %q", p.Theme)
	}
	if p = p.Toggle(); p.Theme != "dark" {
		t.Fatalf("expected dark, got %q", p.Theme)
	}
}
