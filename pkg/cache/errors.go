package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnavailable is returned when a remote backend cannot be reached.
	ErrUnavailable = errors.New("cache backend unavailable")

	// ErrUnknownBackend is returned by [Open] for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown cache backend")
)

// BackendError reports a failed operation against a remote backend. It
// matches [ErrUnavailable] with errors.Is.
type BackendError struct {
	Backend string // BackendRedis or BackendMongo
	Op      string
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Backend, e.Op, e.Err)
}

func (e *BackendError) Unwrap() []error { return []error{ErrUnavailable, e.Err} }

// connectPolicy controls how often a backend is pinged before giving up.
type connectPolicy struct {
	attempts int
	delay    time.Duration
}

// defaultConnect is used by the remote constructors; tests shorten it.
var defaultConnect = connectPolicy{attempts: 3, delay: time.Second}

// ping calls fn until it succeeds or the attempts run out, doubling the
// delay after each failure. The last failure is returned as a
// [*BackendError]. Cancelling ctx stops the loop with ctx.Err().
func (p connectPolicy) ping(ctx context.Context, backend string, fn func(context.Context) error) error {
	delay := p.delay
	var last error
	for i := range p.attempts {
		if last = fn(ctx); last == nil {
			return nil
		}
		if i == p.attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return &BackendError{Backend: backend, Op: "ping", Err: last}
}
