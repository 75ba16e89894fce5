package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"
)

// lockRetry is how often a busy seed lock is polled.
const lockRetry = 50 * time.Millisecond

// ErrSeedLocked is returned when the context ends before the lock frees.
var ErrSeedLocked = errors.New("seed file is locked")

// SeedLock guards a seed file across processes. Exporters take it
// exclusively, the board takes it shared while reading. The lock lives in
// a sibling ".lock" file so it survives the database being replaced.
type SeedLock struct {
	fl *flock.Flock
}

// NewSeedLock returns the lock for the seed database at dbPath.
func NewSeedLock(dbPath string) *SeedLock {
	return &SeedLock{fl: flock.New(dbPath + ".lock")}
}

// Lock takes the exclusive writer lock, waiting until ctx ends.
func (l *SeedLock) Lock(ctx context.Context) error {
	return l.acquire(ctx, l.fl.TryLockContext)
}

// RLock takes a shared reader lock, waiting until ctx ends.
func (l *SeedLock) RLock(ctx context.Context) error {
	return l.acquire(ctx, l.fl.TryRLockContext)
}

func (l *SeedLock) acquire(ctx context.Context, try func(context.Context, time.Duration) (bool, error)) error {
	ok, err := try(ctx, lockRetry)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return fmt.Errorf("%w: %s", ErrSeedLocked, l.fl.Path())
		}
		return fmt.Errorf("locking %s: %w", l.fl.Path(), err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrSeedLocked, l.fl.Path())
	}
	return nil
}

// Unlock releases whichever lock is held.
func (l *SeedLock) Unlock() error {
	return l.fl.Unlock()
}
