package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/loupe/internal/watch"
)

func newFilesCmd(g *globalOptions) *cobra.Command {
	var patterns []string

	cmd := &cobra.Command{
		Use:   "files DIR...",
		Short: "List the log files the UI would show for DIR",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, done, err := loadCLI(g)
			if err != nil {
				return err
			}
			defer done()

			opts := watch.Options{
				Patterns: cfg.Patterns,
				Debounce: cfg.Debounce,
				Logger:   logger,
			}
			if len(patterns) > 0 {
				opts.Patterns = patterns
			}

			session, err := watch.Start(cmd.Context(), args, opts)
			if err != nil {
				return err
			}
			snap, ok := <-session.Snapshots()
			session.Stop()
			if !ok {
				return cmd.Context().Err()
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, f := range snap.ByRecency() {
				fmt.Fprintf(tw, "%s\t%d\t%s\n", f.ModTime.Format(time.DateTime), f.Size, f.Path)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringSliceVar(&patterns, "pattern", nil, "doublestar patterns relative to DIR (default from config)")
	return cmd
}
