package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/eccentric-easel/easel/internal/models"
	"github.com/eccentric-easel/easel/internal/pipeline"
	"github.com/eccentric-easel/easel/internal/review"
	"github.com/spf13/cobra"
)

func newAddCmd(root *rootOptions) *cobra.Command {
	var (
		price    int64
		name     string
		location string
	)

	cmd := &cobra.Command{
		Use:   "add IMAGE",
		Short: "Create a catalog item from a photo",
		Long: `Generates a name and description for the photographed item, asks you to
accept, reject or edit the draft, then creates the item, adds one unit of
stock at the configured location and attaches the photo.`,
		Example: `  # List a painting at the default price of $1000
  easel add painting.jpg

  # Set the price and skip name generation
  easel add mug.jpg --price 35 --name "Speckled Mug"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cents, err := models.CentsFromDollars(price)
			if err != nil {
				return errors.New(pipeline.Describe(err))
			}

			reviewer := review.NewInteractive(cmd.InOrStdin(), cmd.OutOrStdout())
			p, err := newPipeline(root.configPath, location, reviewer)
			if err != nil {
				return errors.New(pipeline.Describe(err))
			}

			result, err := p.Run(cmd.Context(), pipeline.Input{
				ImagePath:  args[0],
				PriceCents: cents,
				Name:       strings.TrimSpace(name),
			})
			if err != nil {
				return errors.New(pipeline.Describe(err))
			}

			out := cmd.OutOrStdout()
			if result.Outcome == pipeline.Cancelled {
				fmt.Fprintln(out, "Item not posted.")
				return nil
			}
			fmt.Fprintf(out, "Item %q added to catalog (item %s, price %s).\n", result.Draft.Name, result.Record.ItemID, result.Draft.PriceDollars())
			return nil
		},
	}

	cmd.Flags().Int64Var(&price, "price", 1000, "Price in whole dollars")
	cmd.Flags().StringVar(&name, "name", "", "Item name (generated from the photo when empty)")
	cmd.Flags().StringVar(&location, "location", "", "Location id to stock the item at (defaults to target_location_id)")

	return cmd
}
