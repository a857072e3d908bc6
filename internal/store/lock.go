package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"
)

const lockPollInterval = 25 * time.Millisecond

type fileLock struct {
	f    *os.File
	path string
}

// acquireLock takes an exclusive lock on path, retrying until it succeeds or
// ctx is done.
func acquireLock(ctx context.Context, path string) (*fileLock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644) // #nosec G304 -- sibling of the data file
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	waited := false
	for {
		ok, err := tryLock(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("lock %s: %w", path, err)
		}
		if ok {
			return &fileLock{f: f, path: path}, nil
		}
		if !waited {
			slog.Debug("waiting for lock held by another process", "path", path)
			waited = true
		}
		select {
		case <-ctx.Done():
			_ = f.Close()
			return nil, fmt.Errorf("lock %s: %w", path, ctx.Err())
		case <-time.After(lockPollInterval):
		}
	}
}

// release drops the lock. The lock file itself stays on disk; removing it
// would let a waiter lock an unlinked inode.
func (l *fileLock) release() {
	if err := unlock(l.f); err != nil {
		slog.Warn("release lock", "path", l.path, "err", err)
	}
	_ = l.f.Close()
}
