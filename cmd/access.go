package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/brigade/internal/access"
)

var accessCmd = &cobra.Command{
	Use:   "access",
	Short: "Work with the access gate",
}

var accessCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Submit a code to a running access gate",
	RunE: func(cmd *cobra.Command, args []string) error {
		url, _ := cmd.Flags().GetString("url")
		code, _ := cmd.Flags().GetString("code")

		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()

		resp, err := access.NewClient(url, nil).Check(ctx, code)
		if err != nil {
			return err
		}
		if !resp.Authorized {
			return fmt.Errorf("not authorized: %s", resp.Message)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "authorized")
		return nil
	},
}

func init() {
	accessCheckCmd.Flags().String("url", "http://localhost:8080/access", "access gate endpoint")
	accessCheckCmd.Flags().String("code", "", "access code to submit")
	_ = accessCheckCmd.MarkFlagRequired("code")
	accessCmd.AddCommand(accessCheckCmd)
	rootCmd.AddCommand(accessCmd)
}
