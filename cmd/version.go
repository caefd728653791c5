package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/brigade/internal/config"
)

// Version is set via ldflags at build time.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of brigade and what it would serve",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "brigade %s\n", Version)
		if short, _ := cmd.Flags().GetBool("short"); short {
			return nil
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "  config:\t%s\n", describeConfigFile(cfgFile))
		fmt.Fprintf(tw, "  content:\t%s\n", describeContent(cfg.Content))
		fmt.Fprintf(tw, "  sessions:\t%s\n", cfg.Session.Backend)
		gate := "disabled (no access code)"
		if cfg.Access.Code != "" {
			gate = "enabled"
		}
		fmt.Fprintf(tw, "  access gate:\t%s\n", gate)
		return tw.Flush()
	},
}

func describeConfigFile(path string) string {
	if _, err := os.Stat(path); err != nil {
		return path + " (not found, using defaults)"
	}
	return path
}

func describeContent(cc config.ContentConfig) string {
	where := "built-in demo"
	if cc.Dir != "" {
		where = cc.Dir
	}
	lib, err := loadLibrary(cc)
	if err != nil {
		return fmt.Sprintf("%s (unreadable: %v)", where, err)
	}
	return fmt.Sprintf("%s, %q with %d sections", where, lib.Title, lib.Registry.Len())
}

func init() {
	versionCmd.Flags().Bool("short", false, "print only the version")
	rootCmd.AddCommand(versionCmd)
}
