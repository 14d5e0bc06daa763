package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newDeleteAllCmd is the placeholder for the delete-all action. The catalog
// is append-only, so the command reports and leaves every row in place.
func newDeleteAllCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "delete-all",
		Short:       "Delete all entries (not supported; the catalog is unchanged)",
		Args:        usageArgs(cobra.NoArgs),
		Annotations: map[string]string{annotationCatalog: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.catalog.Count(cmd.Context())
			if err != nil {
				return err
			}
			a.logger.Info("delete-all is a no-op", "pets", n)
			fmt.Fprintf(cmd.OutOrStdout(), "Delete all entries is not supported; %d pets kept.\n", n)
			return nil
		},
	}
}
