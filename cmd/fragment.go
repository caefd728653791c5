package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/brigade/internal/location"
	"github.com/ziadkadry99/brigade/internal/sections"
)

var fragmentCmd = &cobra.Command{
	Use:   "fragment",
	Short: "Encode or decode section URL fragments",
}

var fragmentEncodeCmd = &cobra.Command{
	Use:   "encode <group> <section-id>",
	Short: "Print the URL fragment for a section",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := loadLibrary(cfg.Content)
		if err != nil {
			return err
		}
		s, ok := lib.Registry.Lookup(sections.Group(args[0]), args[1])
		if !ok {
			return fmt.Errorf("no section %s in group %s", args[1], args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), location.ForRegistry(lib.Registry).Encode(s.Group, s.ID))
		return nil
	},
}

var fragmentDecodeCmd = &cobra.Command{
	Use:   "decode <fragment>",
	Short: "Resolve a URL fragment to a section",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := loadLibrary(cfg.Content)
		if err != nil {
			return err
		}
		ref, err := location.ForRegistry(lib.Registry).Decode(args[0])
		if err != nil {
			return err
		}
		s, ok := lib.Registry.Lookup(ref.Group, ref.SectionID)
		if !ok {
			return fmt.Errorf("fragment %q names no known section (group %s, id %s)", args[0], ref.Group, ref.SectionID)
		}
		order, total, _ := lib.Registry.Position(s.CompositeID())
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s (%d of %d in %s)\n", s.CompositeID(), s.Label, order, total, s.Group)
		return nil
	},
}

func init() {
	fragmentCmd.AddCommand(fragmentEncodeCmd, fragmentDecodeCmd)
	rootCmd.AddCommand(fragmentCmd)
}
