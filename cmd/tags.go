package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/eccentric-easel/easel/internal/catalog"
	"github.com/eccentric-easel/easel/internal/pipeline"
	"github.com/eccentric-easel/easel/internal/pricetags"
	"github.com/eccentric-easel/easel/internal/storage"
	"github.com/spf13/cobra"
)

func newTagsCmd() *cobra.Command {
	var (
		output string
		from   string
	)

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Print price tags for every catalog item",
		Long: `Lists the catalog and writes a PDF with eight 3.5 x 2 inch tags per
Letter page. Each tag shows the item name, its price and a QR code linking
to the item's online store page.`,
		Example: `  # Render from the live catalog
  easel tags --output price_tags.pdf

  # Render from a snapshot taken with "easel catalog export"
  easel tags --from catalog.parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				objects []catalog.Object
				err     error
			)
			if from != "" {
				objects, err = storage.LoadSnapshot(from)
			} else {
				objects, err = listCatalog(cmd)
			}
			if err != nil {
				return errors.New(pipeline.Describe(err))
			}

			entries := pricetags.Extract(objects)
			slog.Info("Rendering price tags", "items", len(objects), "tags", len(entries))
			if err := pricetags.NewRenderer().RenderFile(entries, output); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d price tags to %s\n", len(entries), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "price_tags.pdf", "PDF file to write")
	cmd.Flags().StringVar(&from, "from", "", "Read items from a parquet snapshot instead of the live catalog")

	return cmd
}

func listCatalog(cmd *cobra.Command) ([]catalog.Object, error) {
	env, err := loadCommerceEnv()
	if err != nil {
		return nil, err
	}
	return newCatalogClient(env).ListItems(cmd.Context())
}
