// Package reconcile implements the client's write protocol: every mutation
// against the backend is followed by an unconditional refetch of the
// authoritative state, and local state is only ever replaced by that refetch.
package reconcile

import (
	"context"
	"fmt"
)

// Step is one request against the backend
type Step func(ctx context.Context) error

// RefetchError reports a mutation that succeeded but whose resynchronisation failed.
// Local state is stale until the next successful refetch.
type RefetchError struct {
	Err error
}

func (e *RefetchError) Error() string {
	return fmt.Sprintf("refetch after mutation: %v", e.Err)
}

func (e *RefetchError) Unwrap() error { return e.Err }

// Run performs mutate and, only if it succeeds, refetch.
// A failed mutation is returned as is and nothing is refetched.
func Run(ctx context.Context, mutate, refetch Step) error {
	if err := mutate(ctx); err != nil {
		return err
	}
	if err := refetch(ctx); err != nil {
		return &RefetchError{Err: err}
	}
	return nil
}
