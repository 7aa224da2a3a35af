// Package admin holds the management tables behind the admin dashboard.
// Every table works the same way: it lists on load, and every action is a
// single backend call followed by a fresh list.
package admin

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/ecommerce-storefront/internal/infrastructure/api"
	"github.com/your-org/ecommerce-storefront/internal/pkg/notify"
	"github.com/your-org/ecommerce-storefront/internal/pkg/reconcile"
)

// ErrNotConfirmed is returned by Delete when the admin did not confirm
var ErrNotConfirmed = errors.New("deletion not confirmed")

// ErrUnsupported is returned for actions a table's backend does not offer
var ErrUnsupported = errors.New("action not supported")

// Source binds a table to its endpoints. Update and Delete may be nil.
type Source[T, P any] struct {
	// Name is the plural noun used in messages, e.g. "products"
	Name   string
	List   func(ctx context.Context) ([]T, error)
	Update func(ctx context.Context, id string, patch P) error
	Delete func(ctx context.Context, id string) error
}

// Messages are the notification descriptions for one action
type Messages struct {
	Success string
	Failure string
}

// Table is a client-side copy of one backend collection
type Table[T, P any] struct {
	source   Source[T, P]
	notifier notify.Notifier
	logger   *logrus.Logger

	mu     sync.RWMutex
	rows   []T
	loaded bool
}

// NewTable creates an empty table over source
func NewTable[T, P any](source Source[T, P], notifier notify.Notifier, logger *logrus.Logger) *Table[T, P] {
	return &Table[T, P]{source: source, notifier: notifier, logger: logger}
}

// Load replaces the rows with a fresh list. On failure the previous rows stay.
func (t *Table[T, P]) Load(ctx context.Context) error {
	rows, err := t.source.List(ctx)
	if err != nil {
		t.logger.WithError(err).WithField("table", t.source.Name).Error("Failed to fetch " + t.source.Name)
		t.notifier.Notify(notify.Failure("Error", "Failed to fetch "+t.source.Name))
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = rows
	t.loaded = true
	return nil
}

// Mutate applies patch to row id and reloads
func (t *Table[T, P]) Mutate(ctx context.Context, id string, patch P, msgs Messages) error {
	if t.source.Update == nil {
		return ErrUnsupported
	}
	return t.Do(ctx, func(ctx context.Context) error {
		return t.source.Update(ctx, id, patch)
	}, msgs)
}

// Delete removes row id and reloads. Nothing is sent unless confirmed.
func (t *Table[T, P]) Delete(ctx context.Context, id string, confirmed bool, msgs Messages) error {
	if t.source.Delete == nil {
		return ErrUnsupported
	}
	if !confirmed {
		return ErrNotConfirmed
	}
	return t.Do(ctx, func(ctx context.Context) error {
		return t.source.Delete(ctx, id)
	}, msgs)
}

// Do runs any backend write against the collection, such as a create, and reloads
func (t *Table[T, P]) Do(ctx context.Context, mutate reconcile.Step, msgs Messages) error {
	err := reconcile.Run(ctx, mutate, t.Load)

	var refetchErr *reconcile.RefetchError
	if err == nil || errors.As(err, &refetchErr) {
		t.notifier.Notify(notify.Success("Success", msgs.Success))
		return err
	}

	t.logger.WithError(err).WithField("table", t.source.Name).Warn("Admin action failed")
	t.notifier.Notify(notify.Failure("Error", api.Message(err, msgs.Failure)))
	return err
}

// Rows returns a copy of the current rows in backend order
func (t *Table[T, P]) Rows() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	rows := make([]T, len(t.rows))
	copy(rows, t.rows)
	return rows
}

// Loaded reports whether any list has succeeded yet
func (t *Table[T, P]) Loaded() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.loaded
}

// Filter returns the rows keep accepts
func (t *Table[T, P]) Filter(keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var rows []T
	for _, row := range t.rows {
		if keep(row) {
			rows = append(rows, row)
		}
	}
	return rows
}
