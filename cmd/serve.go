package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ainews-digest/worker"
)

var serveRunAtStart bool

// serveCmd runs the digest on the configured cron schedule until interrupted.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the digest on a schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		b, err := newBuilder(cfg, true)
		if err != nil {
			return err
		}

		w := &worker.DigestWorker{
			Builder:    b,
			Schedule:   cfg.Digest.Schedule,
			RunAtStart: serveRunAtStart,
		}
		mgr := worker.NewManager(w)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Signal handling for systemd
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			s := <-sigc
			slog.Info("received signal, shutting down", "signal", s.String())
			cancel()
		}()

		return mgr.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveRunAtStart, "run-at-start", false, "run one digest immediately on startup")
	rootCmd.AddCommand(serveCmd)
}
