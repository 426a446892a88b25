package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xmazu/denv/internal/envfile"
	"github.com/xmazu/denv/internal/tui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the variables defined by the env files",
	Long: `List every variable in file order. Values are masked unless --show-values
is given. Definitions replaced by a later one are marked as overridden.

Examples:
  denv list
  denv -f .env.local list --show-values`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var listShowValues bool

func init() {
	listCmd.Flags().BoolVar(&listShowValues, "show-values", false, "Print values in clear text")
	rootCmd.AddCommand(listCmd)
}

type listEntry struct {
	file string
	pair envfile.Pair
}

func runList(cmd *cobra.Command, args []string) error {
	files, err := resolveFiles()
	if err != nil {
		return err
	}

	var entries []listEntry
	for _, f := range files {
		pairs, err := envfile.BuildEnv(f)
		if err != nil {
			return err
		}
		for _, p := range pairs {
			entries = append(entries, listEntry{file: f, pair: p})
		}
	}

	last := make(map[string]int, len(entries))
	for i, e := range entries {
		last[e.pair.Key] = i
	}

	out := cmd.OutOrStdout()
	current := ""
	for i, e := range entries {
		if e.file != current {
			current = e.file
			fmt.Fprintln(out, tui.Header(current))
		}
		value := e.pair.Value
		if !listShowValues {
			value = tui.MaskValue(value)
		}
		line := fmt.Sprintf("  %s=%s", tui.Key(e.pair.Key), value)
		if last[e.pair.Key] != i {
			line += " " + tui.Muted("(overridden)")
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
