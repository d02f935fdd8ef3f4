package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// previewCmd builds the digest payload and prints it without publishing.
// Useful for tuning the signal table against today's front page.
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Build the digest and print the Slack payload as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := newBuilder(GetConfig(), false)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		msg, ranked, err := b.Build(ctx)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(msg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		fmt.Fprintf(cmd.ErrOrStderr(), "%d stories ranked\n", len(ranked))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
}
