package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// acquireRunLock takes the single-instance lock guarding live runs, so two
// concurrent invocations cannot submit the same plan twice. The returned
// release function must be called when the run finishes.
func acquireRunLock() (func(), error) {
	return acquireLock(filepath.Join(os.TempDir(), "immich-stacker.lock"))
}

func acquireLock(path string) (func(), error) {
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, errors.New("another immich-stacker run is already in progress")
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			slog.Warn("failed to release run lock", "error", err)
		}
	}, nil
}
