package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xmazu/denv/internal/config"
	"github.com/xmazu/denv/internal/envfile"
	"github.com/xmazu/denv/internal/runenv"
	"github.com/xmazu/denv/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "denv [flags] [--] command [args...]",
	Short: "Run a command with variables from a .env file",
	Long: `denv loads KEY=VALUE lines from a .env file into the environment and then
replaces itself with the given command, which inherits that environment.

FILE FORMAT:

  - One KEY=VALUE per line; the line splits at the first '='.
  - Blank lines and lines starting with '#' are ignored.
  - Values are taken verbatim: no quotes, escapes or interpolation.
  - Keys cannot contain whitespace. Later definitions override earlier ones.

EXAMPLES:

  denv go run ./cmd/server
  denv -f .env -f .env.local -- npm start
  denv -f 'config/*.env' make test
  denv --watch -- node server.js

Use -- before the command when its name matches a denv subcommand.`,
	Args:                  cobra.ArbitraryArgs,
	SilenceUsage:          true,
	SilenceErrors:         true,
	DisableFlagsInUseLine: true,
	PersistentPreRunE:     setupRoot,
	RunE:                  runRoot,
}

var envFiles []string
var verbose bool
var rootWatch bool

// execFunc replaces the process; tests swap it for a recorder.
var execFunc = runenv.Exec

func init() {
	rootCmd.PersistentFlags().StringArrayVarP(&envFiles, "file", "f", nil, "Path or glob of env file to load (repeatable, default from settings or .env)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log debug information to stderr")
	rootCmd.Flags().BoolVar(&rootWatch, "watch", false, "Run the command as a child and restart it when env files change")
	rootCmd.Flags().SetInterspersed(false)
	rootCmd.SetVersionTemplate("denv version {{.Version}}\n")
}

// SetVersion sets the version string shown by --version (e.g. from ldflags).
func SetVersion(v string) { rootCmd.Version = v }

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, tui.Fatal(err))
		os.Exit(1)
	}
}

func setupRoot(cmd *cobra.Command, args []string) error {
	configureLogging(verbose)
	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return errors.New("no command specified. Use: denv [-f file] -- your-command")
	}

	files, err := resolveFiles()
	if err != nil {
		return err
	}

	command, cmdArgs := args[0], args[1:]
	if rootWatch {
		return runWithWatch(cmd, files, command, cmdArgs)
	}

	n, err := envfile.LoadFiles(files)
	if err != nil {
		return err
	}
	logger.Debug("loaded env files", "files", files, "vars", n)
	logger.Debug("exec", "command", command, "args", len(cmdArgs))

	return execFunc(command, cmdArgs, os.Environ())
}

func loadSettings() (config.Settings, error) {
	s, err := config.LoadSettings()
	if err != nil {
		return config.Settings{}, err
	}
	logger.Debug("settings", "path", config.SettingsPath(), "files", s.Files, "debounce", s.Watch.Debounce)
	return s, nil
}

// resolveFiles expands -f arguments, falling back to the settings file.
func resolveFiles() ([]string, error) {
	patterns := envFiles
	if len(patterns) == 0 {
		s, err := loadSettings()
		if err != nil {
			return nil, err
		}
		patterns = s.Files
	}
	files, err := envfile.Resolve(patterns)
	if err != nil {
		return nil, err
	}
	logger.Debug("resolved env files", "patterns", patterns, "files", files)
	return files, nil
}
