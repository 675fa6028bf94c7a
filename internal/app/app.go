package app

import (
	"context"
	"fmt"
	"time"

	"github.com/five82/loupe/internal/config"
	"github.com/five82/loupe/internal/logging"
	"github.com/five82/loupe/internal/prefs"
	"github.com/five82/loupe/internal/source"
	"github.com/five82/loupe/internal/ui"
)

// Options configure the loupe application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/loupe/prefs.toml
	Project    string // overrides the last used project
	Dirs       []string
	PollEvery  time.Duration // zero uses the UI default
}

// Run boots the loupe TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger, closer, err := logging.New(logging.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closer.Close() }()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sel := source.New(ctx, source.OptionsFromConfig(cfg, logger))
	defer sel.Close()

	if err := selectInitial(sel, cfg, userPrefs, opts); err != nil {
		// The UI still starts; the header shows the failure.
		logger.Error().Err(err).Msg("initial selection failed")
	}

	StartPoller(ctx, sel, defaultRetryInterval, logger.With().Str("component", "poller").Logger())

	logger.Info().Str("project", sel.Active()).Msg("starting ui")
	return ui.Run(ui.Options{
		Context:   ctx,
		Selector:  sel,
		PollTick:  opts.PollEvery,
		Prefs:     userPrefs,
		PrefsPath: prefsPath,
		Logger:    logger.With().Str("component", "ui").Logger(),
	})
}

// selectInitial picks explicit directories first, then the requested
// project, then the last used one, then the first configured project.
func selectInitial(sel *source.Selector, cfg config.Config, p prefs.Prefs, opts Options) error {
	if len(opts.Dirs) > 0 {
		dirs := make([]string, 0, len(opts.Dirs))
		for _, d := range opts.Dirs {
			expanded, err := config.ExpandPath(d)
			if err != nil {
				return err
			}
			dirs = append(dirs, expanded)
		}
		return sel.SelectDirs(dirs...)
	}

	if opts.Project != "" {
		return sel.Select(opts.Project)
	}
	if p.LastProject != "" {
		if _, ok := cfg.Project(p.LastProject); ok {
			return sel.Select(p.LastProject)
		}
	}
	if len(cfg.Projects) == 0 {
		return nil
	}
	return sel.Select(cfg.Projects[0].Name)
}
