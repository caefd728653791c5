package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/brigade/internal/progress"
	"github.com/ziadkadry99/brigade/internal/site"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the presentation as a static site",
	Long: `Writes the presentation as static files. The exported page keeps its
anchors and panel but runs without the live navigator.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")

		lib, err := loadLibrary(cfg.Content)
		if err != nil {
			return err
		}

		n, err := site.NewExporter(out, progress.NewReporter(logger)).Export(lib)
		if err != nil {
			return fmt.Errorf("exporting: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Static site exported: %s (%d files)\n", out, n)
		return nil
	},
}

func init() {
	exportCmd.Flags().String("out", "site", "output directory")
	rootCmd.AddCommand(exportCmd)
}
