package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/five82/loupe/internal/config"
	"github.com/five82/loupe/internal/highlight"
	"github.com/five82/loupe/internal/logtail"
	"github.com/five82/loupe/internal/state"
	"github.com/five82/loupe/internal/watch"
)

// ErrUnknownProject is returned by Select for a name that is not configured.
var ErrUnknownProject = errors.New("unknown project")

// Options configure a Selector.
type Options struct {
	Projects      []config.Project
	Watch         watch.Options
	Rules         highlight.Rules
	MaxBytes      int64
	CreateMissing bool
	Store         *state.Store
	Logger        zerolog.Logger
}

// OptionsFromConfig maps a loaded config onto selector options.
func OptionsFromConfig(cfg config.Config, logger zerolog.Logger) Options {
	return Options{
		Projects: cfg.Projects,
		Watch: watch.Options{
			Patterns: cfg.Patterns,
			Debounce: cfg.Debounce,
			Logger:   logger.With().Str("component", "watch").Logger(),
		},
		Rules:         highlight.Rules{CoreTags: cfg.CoreTags, AppTags: cfg.AppTags},
		MaxBytes:      cfg.MaxBytes,
		CreateMissing: cfg.CreateMissing,
		Logger:        logger.With().Str("component", "source").Logger(),
	}
}

// Selector holds the active log root. Changing the selection stops the
// current watch session, waits for it to exit, and starts a new one whose
// snapshots are forwarded into the Store.
type Selector struct {
	ctx        context.Context
	opts       Options
	store      *state.Store
	classifier *highlight.Classifier
	log        zerolog.Logger

	mu        sync.Mutex
	active    *watch.Session
	label     string
	requested []string
	forward   sync.WaitGroup
}

// New returns a Selector with nothing selected.
func New(ctx context.Context, opts Options) *Selector {
	if ctx == nil {
		ctx = context.Background()
	}
	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}
	return &Selector{
		ctx:        ctx,
		opts:       opts,
		store:      store,
		classifier: highlight.NewClassifier(opts.Rules),
		log:        opts.Logger,
	}
}

// Store returns the store snapshots are forwarded to.
func (s *Selector) Store() *state.Store {
	return s.store
}

// Classifier returns the classifier shared by every loaded document.
func (s *Selector) Classifier() *highlight.Classifier {
	return s.classifier
}

// Projects lists the configured projects.
func (s *Selector) Projects() []config.Project {
	return append([]config.Project(nil), s.opts.Projects...)
}

// Active returns the label of the current selection, or "" when none.
func (s *Selector) Active() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.label
}

// Select switches to the configured project called name.
func (s *Selector) Select(name string) error {
	for _, p := range s.opts.Projects {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return s.watch(p.Name, []string{p.Dir})
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownProject, name)
}

// SelectDirs switches to an ad-hoc set of roots.
func (s *Selector) SelectDirs(dirs ...string) error {
	if len(dirs) == 0 {
		return errors.New("no directories given")
	}
	label := filepath.Base(dirs[0])
	if len(dirs) > 1 {
		label = fmt.Sprintf("%s (+%d)", label, len(dirs)-1)
	}
	return s.watch(label, dirs)
}

// Close stops the active watch session.
func (s *Selector) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	s.label = ""
	s.requested = nil
}

// Pending lists requested roots of the active selection that are not being
// watched, usually because they did not exist yet.
func (s *Selector) Pending() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingLocked()
}

func (s *Selector) pendingLocked() []string {
	if s.active == nil {
		return nil
	}
	watched := make(map[string]struct{})
	for _, root := range s.active.Roots() {
		watched[root] = struct{}{}
	}
	var pending []string
	for _, root := range s.requested {
		abs, err := filepath.Abs(root)
		if err != nil {
			abs = root
		}
		if _, ok := watched[filepath.Clean(abs)]; !ok {
			pending = append(pending, root)
		}
	}
	return pending
}

// Retry restarts the active selection when one of its pending roots has
// appeared. It reports whether a restart happened. The check and the restart
// happen under one lock, so a concurrent Select is never undone.
func (s *Selector) Retry() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ready := false
	for _, root := range s.pendingLocked() {
		if info, err := os.Stat(root); err == nil && info.IsDir() {
			ready = true
			break
		}
	}
	if !ready {
		return false, nil
	}
	label, roots := s.label, append([]string(nil), s.requested...)
	s.log.Info().Str("project", label).Msg("pending root appeared, restarting watch")
	return true, s.watchLocked(label, roots)
}

func (s *Selector) watch(label string, roots []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.watchLocked(label, roots)
}

func (s *Selector) watchLocked(label string, roots []string) error {
	s.stopLocked()

	if s.opts.CreateMissing {
		for _, root := range roots {
			if err := os.MkdirAll(root, 0o755); err != nil {
				s.log.Warn().Str("root", root).Err(err).Msg("cannot create log directory")
			}
		}
	}

	session, err := watch.Start(s.ctx, roots, s.opts.Watch)
	if err != nil {
		s.label = ""
		s.requested = nil
		s.store.Reset(label, roots, nil)
		s.store.Fail(err)
		return fmt.Errorf("watch %s: %w", label, err)
	}

	s.store.Reset(label, session.Roots(), session.Warnings())
	s.active = session
	s.label = label
	s.requested = append([]string(nil), roots...)
	s.log.Info().Str("project", label).Strs("roots", session.Roots()).Msg("watching")

	s.forward.Add(1)
	go func() {
		defer s.forward.Done()
		for snap := range session.Snapshots() {
			s.store.Update(snap)
		}
	}()
	return nil
}

// stopLocked quiesces the worker and the forwarder, so nothing from the old
// session reaches the store afterwards.
func (s *Selector) stopLocked() {
	if s.active == nil {
		return
	}
	s.active.Stop()
	s.forward.Wait()
	s.active = nil
}

// Load reads path into a new highlight session. The error is a short
// message suitable for a status line.
func (s *Selector) Load(path string) (*Document, error) {
	chunk, err := logtail.ReadAll(path, s.opts.MaxBytes)
	if err != nil {
		s.log.Warn().Str("path", path).Err(err).Msg("load failed")
		return nil, fmt.Errorf("cannot read %s: %w", filepath.Base(path), errors.Unwrap(err))
	}

	session := highlight.NewSession(s.classifier)
	session.Load(chunk.Text)
	return &Document{
		Path:    path,
		Session: session,
		Offset:  chunk.Offset,
		Clipped: chunk.Clipped,
	}, nil
}
