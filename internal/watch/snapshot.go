package watch

import (
	"os"
	"slices"
	"sort"
	"time"
)

// File is one matching log file at scan time.
type File struct {
	Path    string
	ModTime time.Time
	Size    int64
}

// Snapshot is the de-duplicated set of matching files under every active
// root. Files are ordered by path. A published snapshot is never modified.
type Snapshot struct {
	Seq   uint64
	Taken time.Time
	Files []File
}

// Paths returns the file paths in path order.
func (s Snapshot) Paths() []string {
	paths := make([]string, len(s.Files))
	for i, f := range s.Files {
		paths[i] = f.Path
	}
	return paths
}

// Equal reports whether both snapshots hold the same path set. Size and
// modification time are ignored.
func (s Snapshot) Equal(other Snapshot) bool {
	return slices.Equal(s.Paths(), other.Paths())
}

// ByRecency returns a copy of the files, most recently modified first.
func (s Snapshot) ByRecency() []File {
	files := slices.Clone(s.Files)
	sort.SliceStable(files, func(i, j int) bool {
		if files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].Path < files[j].Path
		}
		return files[i].ModTime.After(files[j].ModTime)
	})
	return files
}

// Clone returns a snapshot that shares no memory with s.
func (s Snapshot) Clone() Snapshot {
	dup := s
	dup.Files = slices.Clone(s.Files)
	return dup
}

// Restat returns a copy whose sizes and modification times are read again.
// Writes to a file do not change the path set, so a published snapshot
// keeps the values from its scan. Files that cannot be stated keep them too.
func (s Snapshot) Restat() Snapshot {
	dup := s.Clone()
	for i, f := range dup.Files {
		if info, err := os.Stat(f.Path); err == nil {
			dup.Files[i].ModTime = info.ModTime()
			dup.Files[i].Size = info.Size()
		}
	}
	return dup
}
