package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xmazu/denv/internal/config"
	"github.com/xmazu/denv/internal/envfile"
)

func stubPrompt(t *testing.T, value string, err error) *[]string {
	t.Helper()
	var asked []string
	old := readSetValue
	readSetValue = func(key string) (string, error) {
		asked = append(asked, key)
		return value, err
	}
	t.Cleanup(func() { readSetValue = old })
	return &asked
}

func TestRunSet(t *testing.T) {
	t.Run("creates file with inline value", func(t *testing.T) {
		resetState(t)
		path := filepath.Join(t.TempDir(), ".env")
		envFiles = []string{path}

		var stderr bytes.Buffer
		setCmd.SetErr(&stderr)
		defer setCmd.SetErr(nil)

		if err := runSet(setCmd, []string{"PORT=8080"}); err != nil {
			t.Fatalf("runSet() error = %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if string(data) != "PORT=8080\n" {
			t.Errorf("file = %q, want %q", data, "PORT=8080\n")
		}
		info, _ := os.Stat(path)
		if info.Mode().Perm() != 0600 {
			t.Errorf("mode = %v, want 0600", info.Mode().Perm())
		}
	})

	t.Run("appends and last definition wins", func(t *testing.T) {
		resetState(t)
		path := writeEnv(t, t.TempDir(), ".env", "PORT=80\nHOST=localhost")
		envFiles = []string{path}

		if err := runSet(setCmd, []string{"PORT=8080"}); err != nil {
			t.Fatalf("runSet() error = %v", err)
		}
		pairs, err := envfile.BuildEnv(path)
		if err != nil {
			t.Fatalf("BuildEnv() error = %v", err)
		}
		want := []envfile.Pair{{Key: "PORT", Value: "80"}, {Key: "HOST", Value: "localhost"}, {Key: "PORT", Value: "8080"}}
		if !reflect.DeepEqual(pairs, want) {
			t.Errorf("pairs = %v, want %v", pairs, want)
		}
		if envfile.ToMap(pairs)["PORT"] != "8080" {
			t.Error("new definition should win")
		}
	})

	t.Run("prompts when value omitted", func(t *testing.T) {
		resetState(t)
		asked := stubPrompt(t, "s3cr3t value", nil)
		path := filepath.Join(t.TempDir(), ".env")
		envFiles = []string{path}

		if err := runSet(setCmd, []string{"API_TOKEN"}); err != nil {
			t.Fatalf("runSet() error = %v", err)
		}
		if !reflect.DeepEqual(*asked, []string{"API_TOKEN"}) {
			t.Errorf("prompted for %v", *asked)
		}
		data, _ := os.ReadFile(path)
		if string(data) != "API_TOKEN=s3cr3t value\n" {
			t.Errorf("file = %q", data)
		}
	})

	t.Run("empty inline value does not prompt", func(t *testing.T) {
		resetState(t)
		asked := stubPrompt(t, "unused", nil)
		path := filepath.Join(t.TempDir(), ".env")
		envFiles = []string{path}

		if err := runSet(setCmd, []string{"EMPTY="}); err != nil {
			t.Fatalf("runSet() error = %v", err)
		}
		if len(*asked) != 0 {
			t.Error("should not prompt when = is present")
		}
	})

	t.Run("prompt error is returned", func(t *testing.T) {
		resetState(t)
		boom := errors.New("user aborted")
		stubPrompt(t, "", boom)
		envFiles = []string{filepath.Join(t.TempDir(), ".env")}

		if err := runSet(setCmd, []string{"KEY"}); !errors.Is(err, boom) {
			t.Errorf("runSet() error = %v, want %v", err, boom)
		}
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		resetState(t)
		stubPrompt(t, "line1\nline2", nil)
		path := filepath.Join(t.TempDir(), ".env")
		envFiles = []string{path}

		for _, arg := range []string{"BAD KEY=1", "=value", "#TOKEN=abc", "#", "MULTI"} {
			if err := runSet(setCmd, []string{arg}); err == nil {
				t.Errorf("runSet(%q) should fail", arg)
			}
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("nothing should be written for invalid input")
		}
	})

	t.Run("refuses multiple files", func(t *testing.T) {
		resetState(t)
		dir := t.TempDir()
		envFiles = []string{filepath.Join(dir, "a.env"), filepath.Join(dir, "b.env")}

		if err := runSet(setCmd, []string{"A=1"}); err == nil {
			t.Error("runSet() should refuse more than one -f")
		}
	})

	t.Run("refuses glob targets", func(t *testing.T) {
		resetState(t)
		dir := t.TempDir()
		envFiles = []string{filepath.Join(dir, "*.env")}

		if err := runSet(setCmd, []string{"A=1"}); err == nil {
			t.Error("runSet() should refuse a glob -f")
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("read dir: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("set created %d files, want none", len(entries))
		}
	})

	t.Run("refuses glob from settings", func(t *testing.T) {
		resetState(t)
		cfgDir := t.TempDir()
		t.Setenv(config.ConfigDirEnv, cfgDir)
		writeEnv(t, cfgDir, config.SettingsFileName, "files: [\"envs/*.env\"]\n")

		if err := runSet(setCmd, []string{"A=1"}); err == nil {
			t.Error("runSet() should refuse a glob default file")
		}
	})
}
