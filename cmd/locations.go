package cmd

import (
	"errors"
	"fmt"

	"github.com/eccentric-easel/easel/internal/pipeline"
	"github.com/spf13/cobra"
)

func newLocationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locations",
		Short: "List the seller's locations",
		Long:  `Prints the id, name and address of each location. Use an id as target_location_id in the configuration file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadCommerceEnv()
			if err != nil {
				return errors.New(pipeline.Describe(err))
			}

			locations, err := newCatalogClient(env).ListLocations(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, l := range locations {
				fmt.Fprintf(out, "ID: %s, Name: %s, Address: %s, %s\n", l.ID, l.Name, l.Address.AddressLine1, l.Address.Locality)
			}
			return nil
		},
	}
}
