package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// ErrAlreadyRunning is returned by AcquireInstanceLock when another process
// already holds the lock (spec §5: "a second instance exits immediately
// with a diagnostic").
var ErrAlreadyRunning = errors.New("platform: another instance is already running")

// InstanceLock is the named OS handle held for the process lifetime.
type InstanceLock struct {
	file *os.File
	path string
}

// AcquireInstanceLock takes an exclusive, non-blocking flock on a file
// under dir named by name. Release must be called before process exit.
func AcquireInstanceLock(dir, name string) (*InstanceLock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("platform: create lock dir: %w", err)
	}
	path := filepath.Join(dir, name+".lock")

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("platform: open lock file: %w", err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		_ = f.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, ErrAlreadyRunning
		}
		return nil, fmt.Errorf("platform: flock: %w", err)
	}

	return &InstanceLock{file: f, path: path}, nil
}

// Release drops the lock and closes the underlying file.
func (l *InstanceLock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	_ = unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
	return l.file.Close()
}
