package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/frasere/matchreport/internal/colorscale"
)

var configWrite bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the configuration in effect after reading the config file and
applying flags. With --write it is saved to the --config path, which makes
a good starting point for editing.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configWrite, "write", false, "save the effective configuration to the config file")
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg.DatabasePath = dbPath
	if _, err := colorscale.Lookup(cfg.Colormap); err != nil {
		return fmt.Errorf("config colormap: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	fmt.Fprintf(os.Stdout, "# %s\n%s", configPath, data)

	if !configWrite {
		return nil
	}
	if err := cfg.Save(configPath); err != nil {
		return err
	}
	cMuted.Fprintf(os.Stdout, "Wrote %s\n", configPath)
	return nil
}
