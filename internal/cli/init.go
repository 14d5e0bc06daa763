package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "init",
		Short:       "Initialize shelter storage",
		Long:        "Create the configuration directory and config.yaml, then create shelter.db and the pets table.",
		Args:        usageArgs(cobra.NoArgs),
		Annotations: map[string]string{annotationCatalog: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			// The catalog was opened by setup, which created the file and table.
			// Only an explicit --data-dir is pinned in config.yaml.
			var cfg configFile
			if a.flags.dataDir != "" {
				cfg.DataDir = a.dataDir
			}
			path, err := writeConfigIfMissing(a.configDir, cfg)
			if err != nil {
				return err
			}
			a.logger.Debug("config ready", "path", path)

			n, err := a.catalog.Count(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Shelter initialized (%d pets)\n", n)
			return nil
		},
	}
}
