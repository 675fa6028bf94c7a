package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const defaultDebounce = 250 * time.Millisecond

// DefaultPatterns select .log and .txt files at any depth.
var DefaultPatterns = []string{"**/*.log", "**/*.txt"}

// Options configures a watch session.
type Options struct {
	// Patterns are doublestar globs matched against the slash separated
	// path relative to the root.
	Patterns []string

	// Debounce is the minimum interval between two rescans. Events that
	// arrive inside the interval are folded into the next rescan.
	Debounce time.Duration

	Logger zerolog.Logger
}

// DefaultOptions returns the options used when a field is left empty.
func DefaultOptions() Options {
	return Options{
		Patterns: DefaultPatterns,
		Debounce: defaultDebounce,
		Logger:   zerolog.Nop(),
	}
}

// Session watches a set of root directories and publishes a new Snapshot
// whenever the set of matching files changes.
//
// A single goroutine owns the fsnotify watcher and the last computed
// snapshot. Snapshots are handed to the consumer through an unbuffered
// channel, so once Stop returns no further snapshot can be received.
type Session struct {
	roots    []string
	patterns []string
	log      zerolog.Logger
	limiter  *rate.Limiter
	warnings []string

	fsw  *fsnotify.Watcher
	out  chan Snapshot
	done chan struct{}

	stopOnce sync.Once
	wg       sync.WaitGroup

	// owned by the worker after Start returns
	last Snapshot
	seq  uint64
}

// Start begins watching roots recursively. Roots that are missing or not
// directories are skipped and reported through Warnings. The initial scan is
// always published, even when it is empty.
func Start(ctx context.Context, roots []string, opts Options) (*Session, error) {
	if len(opts.Patterns) == 0 {
		opts.Patterns = DefaultPatterns
	}
	for _, p := range opts.Patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid pattern %q", p)
		}
	}
	if opts.Debounce <= 0 {
		opts.Debounce = defaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	s := &Session{
		patterns: opts.Patterns,
		log:      opts.Logger,
		limiter:  rate.NewLimiter(rate.Every(opts.Debounce), 1),
		fsw:      fsw,
		out:      make(chan Snapshot),
		done:     make(chan struct{}),
	}

	seen := make(map[string]bool)
	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			s.warn(root, err)
			continue
		}
		info, err := os.Stat(abs)
		if err != nil {
			s.warn(abs, err)
			continue
		}
		if !info.IsDir() {
			s.warn(abs, fmt.Errorf("not a directory"))
			continue
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true
		s.roots = append(s.roots, abs)
		s.addTree(abs)
	}

	s.limiter.Allow()
	s.seq = 1
	s.last = s.scan()
	s.last.Seq = s.seq

	s.wg.Add(1)
	go s.run(ctx, s.last)

	return s, nil
}

// Snapshots returns the channel snapshots are delivered on. It is closed
// when the session stops.
func (s *Session) Snapshots() <-chan Snapshot {
	return s.out
}

// Roots returns the roots that are actually watched.
func (s *Session) Roots() []string {
	return append([]string(nil), s.roots...)
}

// Warnings lists the roots that were skipped by Start.
func (s *Session) Warnings() []string {
	return append([]string(nil), s.warnings...)
}

// Stop halts the session and waits for the worker to exit. It is safe to
// call more than once and from several goroutines.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
	s.wg.Wait()
}

func (s *Session) warn(root string, err error) {
	msg := fmt.Sprintf("skipping %s: %v", root, err)
	s.warnings = append(s.warnings, msg)
	s.log.Warn().Str("root", root).Err(err).Msg("skipping watch root")
}

func (s *Session) run(ctx context.Context, initial Snapshot) {
	defer s.wg.Done()
	defer close(s.out)
	defer s.fsw.Close()

	pending := initial
	hasPending := true

	var timer *time.Timer
	var timerC <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		var out chan<- Snapshot
		if hasPending {
			out = s.out
		}

		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return

		case out <- pending:
			hasPending = false
			pending = Snapshot{}

		case ev, ok := <-s.fsw.Events:
			if !ok {
				return
			}
			if !s.relevant(ev) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					s.addTree(ev.Name)
				}
			}
			if timerC == nil {
				delay := s.limiter.Reserve().Delay()
				if timer == nil {
					timer = time.NewTimer(delay)
				} else {
					timer.Reset(delay)
				}
				timerC = timer.C
			}

		case err, ok := <-s.fsw.Errors:
			if !ok {
				return
			}
			s.log.Warn().Err(err).Msg("watcher error")

		case <-timerC:
			timerC = nil
			snap := s.scan()
			if snap.Equal(s.last) {
				continue
			}
			s.seq++
			snap.Seq = s.seq
			s.last = snap
			pending = snap
			hasPending = true
			s.log.Debug().Uint64("seq", snap.Seq).Int("files", len(snap.Files)).Msg("snapshot changed")
		}
	}
}

func (s *Session) relevant(ev fsnotify.Event) bool {
	return ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) ||
		ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}

// addTree watches dir and every directory below it.
func (s *Session) addTree(dir string) {
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && path != dir {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := s.fsw.Add(path); err != nil {
			s.log.Debug().Str("dir", path).Err(err).Msg("cannot watch directory")
		}
		return nil
	})
}

// scan walks every root. Directories that cannot be read contribute no files.
func (s *Session) scan() Snapshot {
	found := make(map[string]File)
	for _, root := range s.roots {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() && path != root {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil || !s.matches(filepath.ToSlash(rel)) {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}
			found[path] = File{Path: path, ModTime: info.ModTime(), Size: info.Size()}
			return nil
		})
	}

	files := make([]File, 0, len(found))
	for _, f := range found {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return Snapshot{Taken: time.Now(), Files: files}
}

func (s *Session) matches(rel string) bool {
	for _, p := range s.patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}
