package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelter/pkg/types"
)

func newInsertCmd(a *app) *cobra.Command {
	var (
		name   string
		breed  string
		gender string
		weight int64
	)

	cmd := &cobra.Command{
		Use:   "insert",
		Short: "Insert a pet (the sample pet when no flags are given)",
		Long: `Insert writes one pet and prints its id.

Without flags the sample pet is inserted: Toto, a male Terrier weighing 7.
With flags only the given columns are written; name and gender are required
by the catalog and weight defaults to 0.

Example:
  shelter insert
  shelter insert --name Garfield --breed Tabby --gender male --weight 14`,
		Args:        usageArgs(cobra.NoArgs),
		Annotations: map[string]string{annotationCatalog: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			values := types.SamplePet().Values()

			f := cmd.Flags()
			if f.Changed("name") || f.Changed("breed") || f.Changed("gender") || f.Changed("weight") {
				values = types.Values{}
				if f.Changed("name") {
					values[types.ColumnName] = name
				}
				if f.Changed("breed") {
					values[types.ColumnBreed] = breed
				}
				if f.Changed("gender") {
					g, err := types.ParseGender(gender)
					if err != nil {
						return err
					}
					values[types.ColumnGender] = int64(g)
				}
				if f.Changed("weight") {
					if weight < 0 {
						return fmt.Errorf("%w: weight must not be negative", errUsage)
					}
					values[types.ColumnWeight] = weight
				}
			}

			ctx := cmd.Context()
			id, err := a.catalog.Insert(ctx, values)
			if err != nil {
				return fmt.Errorf("insert pet: %w", err)
			}

			out := cmd.OutOrStdout()
			if !a.flags.jsonMode {
				fmt.Fprintf(out, "Inserted pet %d\n", id)
				return nil
			}

			pet, err := a.catalog.Get(ctx, id)
			if err != nil {
				return fmt.Errorf("get inserted pet: %w", err)
			}
			data, err := json.MarshalIndent(pet, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal pet: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "pet name (required with other flags)")
	cmd.Flags().StringVar(&breed, "breed", "", "pet breed")
	cmd.Flags().StringVar(&gender, "gender", "", "pet gender: unknown, male, female or 0-2 (required with other flags)")
	cmd.Flags().Int64Var(&weight, "weight", 0, "pet weight")

	return cmd
}
