package cmd

import (
	"log/slog"
	"os"

	"github.com/eccentric-easel/easel/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "easel",
		Short: "Turn product photos into catalog listings and print price tags",
		Long: `Easel onboards physical items into a Square catalog from a photo.

A vision model writes the name and description, you review the draft, and
the item is created, stocked and given its photo. Price tags with QR codes
for every catalog item can be printed as a PDF.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "Path to the YAML configuration file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newAddCmd(opts))
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newTagsCmd())
	cmd.AddCommand(newCatalogCmd())
	cmd.AddCommand(newLocationsCmd())

	return cmd
}
