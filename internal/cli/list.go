package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelter/pkg/types"
)

// listColumns is the display order of the catalog listing.
var listColumns = []string{
	types.ColumnID,
	types.ColumnName,
	types.ColumnBreed,
	types.ColumnGender,
	types.ColumnWeight,
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Display the pets catalog",
		Long: `List prints the number of pets followed by one line per pet:

  _id - name - breed - gender - weight

With --json the pets are printed as a JSON array.`,
		Args:        usageArgs(cobra.NoArgs),
		Annotations: map[string]string{annotationCatalog: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rs, err := a.catalog.QueryAll(ctx, listColumns...)
			if err != nil {
				return fmt.Errorf("query pets: %w", err)
			}
			defer rs.Close()

			pets := []types.Pet{}
			for row, err := range rs.All() {
				if err != nil {
					return fmt.Errorf("read pets: %w", err)
				}
				pets = append(pets, row.Pet())
			}

			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				data, err := json.MarshalIndent(pets, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal pets: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			fmt.Fprintf(out, "The pets table contains %d pets.\n\n", len(pets))
			fmt.Fprintln(out, strings.Join(listColumns, " - "))
			for _, p := range pets {
				fmt.Fprintln(out, formatPet(p))
			}
			return nil
		},
	}
}

// formatPet renders p in listing order, with the gender as its code.
func formatPet(p types.Pet) string {
	return fmt.Sprintf("%d - %s - %s - %d - %d", p.ID, p.Name, p.BreedOrEmpty(), int64(p.Gender), p.Weight)
}
