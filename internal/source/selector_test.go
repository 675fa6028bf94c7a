package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/loupe/internal/config"
	"github.com/five82/loupe/internal/highlight"
	"github.com/five82/loupe/internal/state"
	"github.com/five82/loupe/internal/watch"
)

func newSelector(t *testing.T, projects ...config.Project) *Selector {
	t.Helper()
	s := New(context.Background(), Options{
		Projects: projects,
		Watch: watch.Options{
			Debounce: 20 * time.Millisecond,
			Logger:   zerolog.Nop(),
		},
		Rules:         highlight.DefaultRules(),
		CreateMissing: true,
		Logger:        zerolog.Nop(),
	})
	t.Cleanup(s.Close)
	return s
}

func waitForFiles(t *testing.T, store *state.Store, project string, n int) state.Snapshot {
	t.Helper()
	var snap state.Snapshot
	require.Eventually(t, func() bool {
		snap = store.Snapshot()
		return snap.Project == project && snap.HasFiles && len(snap.Files.Files) == n
	}, 3*time.Second, 10*time.Millisecond)
	return snap
}

func TestSelect_SwitchesRootsAndQuiescesOld(t *testing.T) {
	editor := t.TempDir()
	game := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(editor, "editor.log"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(game, "a.log"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(game, "b.txt"), []byte("x"), 0o644))

	s := newSelector(t,
		config.Project{Name: "DuinEditor", Dir: editor},
		config.Project{Name: "DuinFPS", Dir: game},
	)

	require.NoError(t, s.Select("DuinEditor"))
	assert.Equal(t, "DuinEditor", s.Active())
	snap := waitForFiles(t, s.Store(), "DuinEditor", 1)
	assert.Equal(t, []string{filepath.Join(editor, "editor.log")}, snap.Files.Paths())

	require.NoError(t, s.Select("duinfps"))
	assert.Equal(t, "DuinFPS", s.Active())

	// Changes under the old root must never reach the store again.
	require.NoError(t, os.WriteFile(filepath.Join(editor, "late.log"), []byte("x"), 0o644))

	snap = waitForFiles(t, s.Store(), "DuinFPS", 2)
	assert.Equal(t, []string{game}, snap.Roots)
	time.Sleep(100 * time.Millisecond)
	for _, p := range s.Store().Snapshot().Files.Paths() {
		assert.NotContains(t, p, editor)
	}
}

func TestSelect_UnknownProject(t *testing.T) {
	s := newSelector(t)
	err := s.Select("nope")
	assert.ErrorIs(t, err, ErrUnknownProject)
	assert.Empty(t, s.Active())
}

func TestSelect_CreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "DuinEditor", "logs")
	s := newSelector(t, config.Project{Name: "DuinEditor", Dir: dir})

	require.NoError(t, s.Select("DuinEditor"))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	snap := waitForFiles(t, s.Store(), "DuinEditor", 0)
	assert.Empty(t, snap.Warnings)
}

func TestSelectDirs_Label(t *testing.T) {
	a := filepath.Join(t.TempDir(), "alpha")
	b := t.TempDir()
	s := newSelector(t)

	require.NoError(t, s.SelectDirs(a, b))
	assert.Equal(t, "alpha (+1)", s.Active())

	assert.Error(t, s.SelectDirs())
}

func TestClose_IsIdempotent(t *testing.T) {
	s := newSelector(t, config.Project{Name: "p", Dir: t.TempDir()})
	require.NoError(t, s.Select("p"))
	s.Close()
	s.Close()
	assert.Empty(t, s.Active())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	content := "[ 10:00:00 | 1 ]\tDUIN\t(main.cpp:4): Info: boot\n{\n  \"level\": \"error\"\n}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s := newSelector(t)
	doc, err := s.Load(path)
	require.NoError(t, err)
	assert.Equal(t, content, doc.Session.Raw())
	assert.Equal(t, int64(len(content)), doc.Offset)

	counts := doc.Session.Counts()
	assert.Equal(t, 1, counts[highlight.CategoryInfo])
	assert.Equal(t, 3, counts[highlight.CategoryJSON])
	assert.Zero(t, counts[highlight.CategoryError])
}

func TestLoad_MissingFileIsShortDiagnostic(t *testing.T) {
	s := newSelector(t)
	_, err := s.Load(filepath.Join(t.TempDir(), "gone.log"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "cannot read gone.log")
}

func TestDocument_Refresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grow.log")
	require.NoError(t, os.WriteFile(path, []byte("info start\n{\n"), 0o644))

	s := newSelector(t)
	doc, err := s.Load(path)
	require.NoError(t, err)
	require.True(t, doc.Session.State().Open())

	changed, err := doc.Refresh()
	require.NoError(t, err)
	assert.False(t, changed)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.WriteString("\"a\": 1\n}\nwarn done\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	changed, err = doc.Refresh()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.False(t, doc.Session.State().Open())
	assert.Equal(t, 1, doc.Session.Counts()[highlight.CategoryWarning])

	// Truncation reloads from scratch.
	require.NoError(t, os.WriteFile(path, []byte("debug\n"), 0o644))
	changed, err = doc.Refresh()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "debug\n", doc.Session.Raw())
	assert.Equal(t, int64(6), doc.Offset)
}

func TestRetry_PicksUpRootCreatedLater(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	s := New(context.Background(), Options{
		Projects: []config.Project{{Name: "late", Dir: dir}},
		Watch:    watch.Options{Debounce: 20 * time.Millisecond, Logger: zerolog.Nop()},
		Rules:    highlight.DefaultRules(),
		Logger:   zerolog.Nop(),
	})
	t.Cleanup(s.Close)

	require.NoError(t, s.Select("late"))
	assert.Equal(t, []string{dir}, s.Pending())

	restarted, err := s.Retry()
	require.NoError(t, err)
	assert.False(t, restarted)

	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "run.log"), []byte("x"), 0o644))

	restarted, err = s.Retry()
	require.NoError(t, err)
	assert.True(t, restarted)
	assert.Empty(t, s.Pending())
	waitForFiles(t, s.Store(), "late", 1)
}

func TestRetry_DoesNotUndoConcurrentSelect(t *testing.T) {
	lateDir := filepath.Join(t.TempDir(), "late")
	otherDir := t.TempDir()
	s := New(context.Background(), Options{
		Projects: []config.Project{
			{Name: "late", Dir: lateDir},
			{Name: "other", Dir: otherDir},
		},
		Watch:  watch.Options{Debounce: 20 * time.Millisecond, Logger: zerolog.Nop()},
		Rules:  highlight.DefaultRules(),
		Logger: zerolog.Nop(),
	})
	t.Cleanup(s.Close)

	require.NoError(t, s.Select("late"))
	require.NoError(t, os.MkdirAll(lateDir, 0o755))

	done := make(chan error, 1)
	go func() {
		_, err := s.Retry()
		done <- err
	}()
	require.NoError(t, s.Select("other"))
	require.NoError(t, <-done)

	assert.Equal(t, "other", s.Active())
	assert.Empty(t, s.Pending())

	restarted, err := s.Retry()
	require.NoError(t, err)
	assert.False(t, restarted)
	assert.Equal(t, "other", s.Active())
}
