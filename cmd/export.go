package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/xmazu/denv/internal/envfile"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the merged environment defined by the env files",
	Long: `Print the variables the env files define after later definitions have
overridden earlier ones, sorted by key.

Formats:
  denv    KEY=VALUE lines, readable by denv again (default)
  dotenv  quoted KEY="VALUE" lines for other dotenv loaders
  json    a JSON object
  yaml    a YAML mapping

Examples:
  denv export > merged.env
  denv -f .env -f .env.local export --format json`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var exportFormat string

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "denv", "Output format: denv, dotenv, json or yaml")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	files, err := resolveFiles()
	if err != nil {
		return err
	}
	pairs, err := envfile.Collect(files)
	if err != nil {
		return err
	}
	return writeExport(cmd.OutOrStdout(), exportFormat, envfile.ToMap(pairs))
}

func writeExport(w io.Writer, format string, env map[string]string) error {
	switch format {
	case "denv":
		keys := make([]string, 0, len(env))
		for k := range env {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		var sb strings.Builder
		for _, k := range keys {
			sb.WriteString(k)
			sb.WriteByte('=')
			sb.WriteString(env[k])
			sb.WriteByte('\n')
		}
		_, err := io.WriteString(w, sb.String())
		return err
	case "dotenv":
		out, err := godotenv.Marshal(env)
		if err != nil {
			return fmt.Errorf("marshal dotenv: %w", err)
		}
		if out != "" {
			out += "\n"
		}
		_, err = io.WriteString(w, out)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(env); err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}
		return nil
	case "yaml":
		if len(env) == 0 {
			_, err := io.WriteString(w, "{}\n")
			return err
		}
		out, err := yaml.Marshal(env)
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	default:
		return fmt.Errorf("unknown format %q (want denv, dotenv, json or yaml)", format)
	}
}
