package cmd

import (
	"errors"
	"fmt"

	"github.com/eccentric-easel/easel/internal/pipeline"
	"github.com/eccentric-easel/easel/internal/storage"
	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Work with the commerce catalog",
	}
	cmd.AddCommand(newCatalogExportCmd())
	return cmd
}

func newCatalogExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "export",
		Short:   "Save the catalog item listing to a parquet snapshot",
		Example: `  easel catalog export --output catalog.parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			objects, err := listCatalog(cmd)
			if err != nil {
				return errors.New(pipeline.Describe(err))
			}
			if err := storage.SaveSnapshot(output, objects); err != nil {
				return errors.New(pipeline.Describe(err))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d items to %s\n", len(objects), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "catalog.parquet", "Snapshot file to write")

	return cmd
}
