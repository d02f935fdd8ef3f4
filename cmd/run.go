package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

// runCmd executes one digest run end to end. A missing webhook URL or a
// failed publish returns an error so the caller observes a non-zero exit.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch, rank, and publish one digest",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := newBuilder(GetConfig(), true)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		return b.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
