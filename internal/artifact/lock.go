package artifact

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/flock"

	"github.com/spigell/mentor-match/internal/utils"
)

var lockRetryInterval = 100 * time.Millisecond

// Lock takes an exclusive file lock at path, retrying until ctx is done.
// The returned func releases the lock.
func Lock(ctx context.Context, path string) (func(), error) {
	l := flock.New(path)
	for {
		locked, err := l.TryLock()
		if err != nil {
			return func() {}, fmt.Errorf("cannot acquire artifact lock %s: %w", path, err)
		}
		if locked {
			return func() { _ = l.Unlock() }, nil
		}

		if err := utils.WaitFor(ctx, lockRetryInterval); err != nil {
			return func() {}, fmt.Errorf("waiting for artifact lock %s: %w", path, err)
		}
	}
}
