package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunList(t *testing.T) {
	t.Run("masks values and marks overrides", func(t *testing.T) {
		resetState(t)
		dir := t.TempDir()
		envFiles = []string{
			writeEnv(t, dir, "a.env", "TOKEN=supersecret1234\nPORT=80\n"),
			writeEnv(t, dir, "b.env", "PORT=8080\n"),
		}

		var out bytes.Buffer
		listCmd.SetOut(&out)
		defer listCmd.SetOut(nil)

		if err := runList(listCmd, nil); err != nil {
			t.Fatalf("runList() error = %v", err)
		}
		got := out.String()
		if strings.Contains(got, "supersecret") {
			t.Errorf("output leaks value: %q", got)
		}
		if !strings.Contains(got, "TOKEN=***********1234") {
			t.Errorf("output = %q, want masked TOKEN", got)
		}
		if !strings.Contains(got, "PORT=** (overridden)") {
			t.Errorf("output = %q, want first PORT marked overridden", got)
		}
		if !strings.Contains(got, "PORT=****\n") {
			t.Errorf("output = %q, want effective PORT unmarked", got)
		}
	})

	t.Run("show values", func(t *testing.T) {
		resetState(t)
		envFiles = []string{writeEnv(t, t.TempDir(), ".env", "URL=http://x?a=b\n")}
		listShowValues = true

		var out bytes.Buffer
		listCmd.SetOut(&out)
		defer listCmd.SetOut(nil)

		if err := runList(listCmd, nil); err != nil {
			t.Fatalf("runList() error = %v", err)
		}
		if !strings.Contains(out.String(), "URL=http://x?a=b") {
			t.Errorf("output = %q, want clear value", out.String())
		}
	})

	t.Run("parse error", func(t *testing.T) {
		resetState(t)
		envFiles = []string{writeEnv(t, t.TempDir(), ".env", "bad key=1\n")}
		if err := runList(listCmd, nil); err == nil {
			t.Error("runList() should fail on a malformed file")
		}
	})
}
