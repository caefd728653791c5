package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/brigade/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a brigade config file with an interactive wizard",
	Long: `Asks where the presentation lives, how last-visited sections are stored
and which port to serve on, then writes the answers to .brigade.yml (or the
path given with --config). The content directory is loaded once so a broken
registry is reported before the first serve.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		created, err := config.RunWizard(cfgFile)
		if err != nil {
			return err
		}

		lib, err := loadLibrary(created.Content)
		if err != nil {
			return fmt.Errorf("config saved, but the content does not load: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Loaded %q: %d sections in %s and %s.\n",
			lib.Title, lib.Registry.Len(), lib.Registry.Primary(), lib.Registry.Secondary())
		fmt.Fprintf(cmd.OutOrStdout(), "Run `brigade serve` and open http://localhost:%d/\n", created.Server.Port)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
