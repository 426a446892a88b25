package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type sample struct {
	Name  string   `yaml:"name"`
	Items []string `yaml:"items"`
}

func TestYAMLFile(t *testing.T) {
	t.Run("missing file is not an error", func(t *testing.T) {
		y := NewYAMLFile(filepath.Join(t.TempDir(), "none.yaml"))
		dest := sample{Name: "keep"}
		if err := y.Load(&dest); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if dest.Name != "keep" {
			t.Errorf("Load() modified dest: %+v", dest)
		}
		if y.Exists() {
			t.Error("Exists() = true for missing file")
		}
	})

	t.Run("save creates directories and round trips", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "s.yaml")
		y := NewYAMLFile(path)
		if err := y.Save(sample{Name: "a", Items: []string{"x", "y"}}); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("mode = %v, want 0600", info.Mode().Perm())
		}

		var got sample
		if err := y.Load(&got); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got.Name != "a" || len(got.Items) != 2 {
			t.Errorf("Load() = %+v", got)
		}
		if y.Path() != path {
			t.Errorf("Path() = %q, want %q", y.Path(), path)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("name: [unclosed\n"), 0600); err != nil {
			t.Fatalf("write: %v", err)
		}
		var dest sample
		err := NewYAMLFile(path).Load(&dest)
		if err == nil || !strings.Contains(err.Error(), "parse yaml") {
			t.Errorf("Load() error = %v, want parse yaml error", err)
		}
	})
}
