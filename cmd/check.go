package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xmazu/denv/internal/envfile"
	"github.com/xmazu/denv/internal/tui"
	"github.com/xmazu/denv/internal/watch"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate env files without running anything",
	Long: `Parse every env file and report the number of variables it defines, or the
first malformed line. Keys defined more than once are reported as warnings.

Examples:
  denv check
  denv -f .env -f .env.local check
  denv check --watch       # re-check on every save`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

var checkWatch bool

func init() {
	checkCmd.Flags().BoolVar(&checkWatch, "watch", false, "Re-check whenever a file changes")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	files, err := resolveFiles()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	bad := checkFiles(out, files)
	if !checkWatch {
		if bad > 0 {
			return fmt.Errorf("%d of %d env files invalid", bad, len(files))
		}
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watchCheck(ctx, out, files)
}

func watchCheck(ctx context.Context, out io.Writer, files []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	fw, err := watch.NewFileWatcher(s.Watch.Debounce)
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer fw.Close()

	for _, f := range files {
		if err := fw.Add(f); err != nil {
			return fmt.Errorf("watch %s: %w", f, err)
		}
	}

	changes := fw.Start()
	fmt.Fprintln(out, tui.Muted(fmt.Sprintf("watching %d files, press Ctrl+C to stop", len(fw.Files()))))

	for {
		select {
		case <-ctx.Done():
			return nil
		case changed := <-changes:
			logger.Debug("re-checking", "file", changed)
			checkFiles(out, files)
		}
	}
}

// checkFiles reports on each file and returns how many failed to parse.
func checkFiles(out io.Writer, files []string) int {
	bad := 0
	for _, f := range files {
		pairs, err := envfile.BuildEnv(f)
		if err != nil {
			bad++
			fmt.Fprintf(out, "%s %s: %v\n", tui.Error("✗"), f, err)
			continue
		}
		fmt.Fprintf(out, "%s %s: %d variables\n", tui.Success("✓"), f, len(pairs))
		for _, key := range duplicateKeys(pairs) {
			fmt.Fprintf(out, "  %s %s defined more than once, last definition wins\n", tui.Warning("!"), tui.Key(key))
		}
	}
	return bad
}

// duplicateKeys returns keys that appear more than once, in order of first
// appearance.
func duplicateKeys(pairs []envfile.Pair) []string {
	counts := make(map[string]int, len(pairs))
	var order []string
	for _, p := range pairs {
		if counts[p.Key] == 0 {
			order = append(order, p.Key)
		}
		counts[p.Key]++
	}
	var dups []string
	for _, k := range order {
		if counts[k] > 1 {
			dups = append(dups, k)
		}
	}
	return dups
}
