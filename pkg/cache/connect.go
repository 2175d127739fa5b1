package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrUnavailable is returned when a remote backend never answered its ping.
var ErrUnavailable = errors.New("cache backend unavailable")

// Connection probing. Tests shorten connectBackoff.
var (
	connectAttempts = 3
	connectBackoff  = time.Second
	pingTimeout     = 5 * time.Second
)

// awaitBackend pings a freshly created client until it answers. Each ping
// gets its own timeout; the wait between pings doubles. Cancelling ctx
// stops immediately with ctx's error.
func awaitBackend(ctx context.Context, backend string, ping func(context.Context) error) error {
	wait := connectBackoff
	var last error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		last = ping(pctx)
		cancel()
		if last == nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if attempt == connectAttempts {
			break
		}
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		wait *= 2
	}
	return fmt.Errorf("%w: %s after %d attempts: %v", ErrUnavailable, backend, connectAttempts, last)
}
