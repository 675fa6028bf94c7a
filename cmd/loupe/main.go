package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/five82/loupe/internal/app"
	"github.com/five82/loupe/internal/config"
	"github.com/five82/loupe/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "loupe: %v\n", err)
		return 1
	}
	return 0
}

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	prefsPath  string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	var (
		g       globalOptions
		project string
		dirs    []string
	)

	cmd := &cobra.Command{
		Use:   "loupe",
		Short: "Browse and follow engine logs with structural highlighting",
		Long: `loupe watches a project's log directory and shows every .log and .txt
file, newest first. The open file is annotated line by line: severities,
timestamps and frame numbers, subsystem tags, source locations, and JSON
blocks that may span many lines.

Without a subcommand loupe starts the terminal UI.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), app.Options{
				ConfigPath: g.configPath,
				PrefsPath:  g.prefsPath,
				Project:    project,
				Dirs:       dirs,
			})
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&g.configPath, "config", "", "config file (default ~/.config/loupe/config.toml)")
	flags.StringVar(&g.prefsPath, "prefs", "", "preferences file (default ~/.config/loupe/prefs.toml)")
	flags.StringVar(&g.logLevel, "log-level", "", "diagnostic level for subcommands (overrides config)")

	cmd.Flags().StringVarP(&project, "project", "p", "", "project to open instead of the last used one")
	cmd.Flags().StringSliceVarP(&dirs, "dir", "d", nil, "watch these directories instead of a configured project")

	cmd.AddCommand(newRenderCmd(&g), newFilesCmd(&g))
	return cmd
}

// loadCLI loads the config and a stderr logger for a subcommand.
func loadCLI(g *globalOptions) (config.Config, zerolog.Logger, func(), error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return config.Config{}, zerolog.Nop(), nil, fmt.Errorf("load config: %w", err)
	}

	level := cfg.LogLevel
	if g.logLevel != "" {
		level = g.logLevel
	}
	logger, closer, err := logging.New(logging.Config{Level: level, Console: true})
	if err != nil {
		return config.Config{}, zerolog.Nop(), nil, fmt.Errorf("init logging: %w", err)
	}
	return cfg, logger, func() { _ = closer.Close() }, nil
}
