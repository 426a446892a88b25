package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xmazu/denv/internal/envfile"
	"github.com/xmazu/denv/internal/tui"
)

var setCmd = &cobra.Command{
	Use:   "set KEY[=VALUE]",
	Short: "Add a variable to an env file",
	Long: `Append KEY=VALUE to the env file, creating it if needed. Because later
definitions win, the new line takes effect even if KEY is already defined.
When no value is given on the command line it is prompted for without echo.

Examples:
  denv set PORT=8080
  denv -f .env.local set API_TOKEN`,
	Args: cobra.ExactArgs(1),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
}

// readSetValue is swapped in tests to avoid the interactive prompt.
var readSetValue = func(key string) (string, error) {
	return tui.HiddenInput(fmt.Sprintf("Value for %s", key))
}

func runSet(cmd *cobra.Command, args []string) error {
	key, value, hasValue := strings.Cut(args[0], "=")
	if key == "" {
		return errors.New("invalid key: must not be empty")
	}
	if err := envfile.ValidateKey(key); err != nil {
		return fmt.Errorf("invalid key %q: %w", key, err)
	}
	// The written line must read back as this key, not as a comment.
	if p, ok, err := envfile.ParseLine(key + "="); err != nil || !ok || p.Key != key {
		return fmt.Errorf("invalid key %q: the line would not be read back as a variable", key)
	}

	if !hasValue {
		var err error
		value, err = readSetValue(key)
		if err != nil {
			return err
		}
	}
	if strings.ContainsAny(value, "\r\n") {
		return errors.New("invalid value: multi-line values are not supported")
	}

	path, err := setTarget()
	if err != nil {
		return err
	}
	if err := appendPair(path, envfile.Pair{Key: key, Value: value}); err != nil {
		return err
	}

	logger.Debug("appended variable", "file", path, "key", key)
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s set in %s\n", tui.Success("✓"), tui.Label(key), path)
	return nil
}

// setTarget picks the single file set writes to. Glob patterns are refused
// rather than taken as a literal file name.
func setTarget() (string, error) {
	var target string
	switch len(envFiles) {
	case 0:
		s, err := loadSettings()
		if err != nil {
			return "", err
		}
		target = s.Files[0]
	case 1:
		target = envFiles[0]
	default:
		return "", errors.New("set writes to a single file; pass -f once")
	}
	if envfile.IsGlob(target) {
		return "", fmt.Errorf("set needs a file path, not the pattern %q", target)
	}
	return target, nil
}

func appendPair(path string, p envfile.Pair) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	line := p.Key + "=" + p.Value + "\n"
	if size := info.Size(); size > 0 {
		last := make([]byte, 1)
		if _, err := f.ReadAt(last, size-1); err != nil && err != io.EOF {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if last[0] != '\n' {
			line = "\n" + line
		}
	}

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
