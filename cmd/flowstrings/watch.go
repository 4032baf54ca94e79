// Watch command: hot-reload a string table as it is edited.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/emberlink/flowstrings/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <strings.json>",
	Short: "Watch a string table and revalidate it on every save",
	Long: `Watch loads a string table, then reloads and revalidates it whenever the
file changes. A save that fails to parse or validate is rejected and the
previous table stays live, so the served strings are never a partial mix.
Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger(flagDebug)
		defer log.Sync()

		reg, err := resolveRegistry()
		if err != nil {
			return err
		}

		w, err := watch.New(watch.Config{
			Path:     args[0],
			Registry: reg,
			Logger:   log,
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := w.Start(ctx); err != nil {
			return err
		}
		log.Infow("table loaded", "path", args[0], "keys", len(w.Current().Keys()))

		<-ctx.Done()
		w.Stop()
		log.Infow("stopped", "reloads", w.Reloads(), "rejected", w.Failures())
		return nil
	},
}
