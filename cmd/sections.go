package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/brigade/internal/location"
	"github.com/ziadkadry99/brigade/internal/sections"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List the sections of the configured presentation",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := loadLibrary(cfg.Content)
		if err != nil {
			return err
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			groups := lib.Registry.Groups()
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Title    string             `json:"title"`
				Groups   []sections.Group   `json:"groups"`
				Sections []sections.Section `json:"sections"`
			}{lib.Title, groups[:], lib.Registry.Sections()})
		}

		codec := location.ForRegistry(lib.Registry)
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%d sections)\n\n", lib.Title, lib.Registry.Len())
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "GROUP\tORDER\tID\tLABEL\tFRAGMENT")
		for _, s := range lib.Registry.Sections() {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", s.Group, s.Order, s.ID, s.Label, codec.Encode(s.Group, s.ID))
		}
		return tw.Flush()
	},
}

func init() {
	sectionsCmd.Flags().Bool("json", false, "print the registry as JSON")
	rootCmd.AddCommand(sectionsCmd)
}
