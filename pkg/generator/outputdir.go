package generator

import (
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
)

// ErrDirLocked is returned when another run holds the output directory.
var ErrDirLocked = errors.New("output directory is in use by another run")

// DirLock guards an output directory for the duration of a run. The lock file
// sits next to the directory so that resetting the directory keeps it.
type DirLock struct {
	lock *flock.Flock
	path string
}

// LockPath returns the lock file used for dir.
func LockPath(dir string) string {
	return filepath.Clean(dir) + ".lock"
}

// LockOutputDir takes the run lock for dir without blocking.
func LockOutputDir(dir string) (*DirLock, error) {
	path := LockPath(dir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil { // #nosec G301
		return nil, ErrIO("lock", path, err)
	}

	lock := flock.New(path)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, ErrIO("lock", path, err)
	}
	if !locked {
		return nil, ErrIO("lock", path, ErrDirLocked)
	}
	return &DirLock{lock: lock, path: path}, nil
}

// Unlock releases the lock and removes the lock file.
func (l *DirLock) Unlock() error {
	if err := l.lock.Unlock(); err != nil {
		return ErrIO("unlock", l.path, err)
	}
	_ = os.Remove(l.path) // best effort
	return nil
}

// PrepareOutputDir removes dir with everything in it and creates it again
// empty, so no stale rotation names survive from an earlier run.
func PrepareOutputDir(dir string) error {
	if _, err := os.Stat(dir); err == nil {
		if err := os.RemoveAll(dir); err != nil {
			return ErrIO("remove", dir, err)
		}
	} else if !os.IsNotExist(err) {
		return ErrIO("stat", dir, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil { // #nosec G301 - fixtures are shared with other tools
		return ErrIO("mkdir", dir, err)
	}
	return nil
}

// EnsureOutputDir creates dir if it does not exist, keeping its contents.
func EnsureOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil { // #nosec G301
		return ErrIO("mkdir", dir, err)
	}
	return nil
}
