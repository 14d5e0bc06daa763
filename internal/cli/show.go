package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "show <id>",
		Short:       "Display one pet",
		Args:        usageArgs(cobra.ExactArgs(1)),
		Annotations: map[string]string{annotationCatalog: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("%w: invalid id %q", errUsage, args[0])
			}

			pet, err := a.catalog.Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get pet %d: %w", id, err)
			}

			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				data, err := json.MarshalIndent(pet, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal pet: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			fmt.Fprintf(out, "ID:     %d\n", pet.ID)
			fmt.Fprintf(out, "Name:   %s\n", pet.Name)
			fmt.Fprintf(out, "Breed:  %s\n", pet.BreedOrEmpty())
			fmt.Fprintf(out, "Gender: %s\n", pet.Gender)
			fmt.Fprintf(out, "Weight: %d\n", pet.Weight)
			return nil
		},
	}
}
