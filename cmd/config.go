package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/xmazu/denv/internal/config"
	"github.com/xmazu/denv/internal/tui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the settings file",
	Long: `Print the location of the settings file and the effective settings.
Set DENV_CONFIG_DIR to use a different directory.

Examples:
  denv config
  denv config --init       # write the defaults if no file exists`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

var configInit bool

func init() {
	configCmd.Flags().BoolVar(&configInit, "init", false, "Write a settings file with the defaults if none exists")
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	path := config.SettingsPath()

	if configInit {
		wrote, err := config.InitSettings()
		if err != nil {
			return err
		}
		if wrote {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s wrote %s\n", tui.Success("✓"), path)
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %s already exists\n", tui.Warning("!"), path)
		}
	}

	s, err := loadSettings()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}

	fmt.Fprintf(out, "# %s\n%s", path, data)
	return nil
}
