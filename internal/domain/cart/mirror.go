// internal/domain/cart/mirror.go
package cart

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/ecommerce-storefront/internal/domain/session"
	"github.com/your-org/ecommerce-storefront/internal/domain/user"
	"github.com/your-org/ecommerce-storefront/internal/infrastructure/api"
	"github.com/your-org/ecommerce-storefront/internal/pkg/notify"
	"github.com/your-org/ecommerce-storefront/internal/pkg/reconcile"
)

// ErrAuthRequired is returned by Add when nobody is signed in
var ErrAuthRequired = errors.New("login required")

// DefaultQuantity is used by Add when no positive quantity is given
const DefaultQuantity = 1

// Session is the part of the session store the mirror depends on
type Session interface {
	UserID() string
	Subscribe(o session.Observer)
}

// Mirror is a client-side copy of the signed-in user's cart. It never edits
// lines itself: every write is followed by a full refetch from the backend.
type Mirror struct {
	api      api.Caller
	session  Session
	notifier notify.Notifier
	logger   *logrus.Logger

	mu       sync.RWMutex
	lines    []Line
	epoch    uint64
	inflight int
}

// NewMirror creates an empty mirror that follows sess
func NewMirror(caller api.Caller, sess Session, notifier notify.Notifier, logger *logrus.Logger) *Mirror {
	m := &Mirror{
		api:      caller,
		session:  sess,
		notifier: notifier,
		logger:   logger,
	}
	sess.Subscribe(m.onSessionChange)
	return m
}

func (m *Mirror) onSessionChange(ctx context.Context, prev, next *user.User) {
	if prev != nil && next != nil && prev.ID == next.ID {
		return
	}

	m.mu.Lock()
	m.epoch++
	m.lines = nil
	m.mu.Unlock()

	if next == nil {
		return
	}
	if err := m.Fetch(ctx); err != nil {
		m.logger.WithError(err).Warn("Failed to fetch cart after sign in")
	}
}

// Fetch replaces the mirror with the backend's cart. It does nothing when
// nobody is signed in. A response for a user who is no longer signed in is
// dropped.
func (m *Mirror) Fetch(ctx context.Context) error {
	m.mu.RLock()
	epoch := m.epoch
	m.mu.RUnlock()

	userID := m.session.UserID()
	if userID == "" {
		return nil
	}

	m.begin()
	defer m.end()

	var resp cartResponse
	if err := m.api.Call(ctx, http.MethodGet, api.Pathf("/getcartofuser/%s", userID), nil, &resp); err != nil {
		m.logger.WithError(err).WithField("user_id", userID).Error("Failed to fetch cart")
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.epoch != epoch {
		m.logger.WithField("user_id", userID).Debug("Dropping cart fetched for previous session")
		return nil
	}
	m.lines = resp.Cart
	return nil
}

// Add puts quantity of productID into the cart and refetches
func (m *Mirror) Add(ctx context.Context, productID string, quantity int) error {
	userID := m.session.UserID()
	if userID == "" {
		m.notifier.Notify(notify.Failure("Login Required", "Please login to add items to cart"))
		return ErrAuthRequired
	}
	if quantity <= 0 {
		quantity = DefaultQuantity
	}

	return m.write(ctx,
		api.Pathf("/addtocart/%s/%s/%s", userID, productID, quantity), http.MethodPost,
		notify.Success("Added to Cart", "Item added to your cart successfully"),
		"Failed to Add", "Failed to add item to cart")
}

// Update sets the quantity of a cart line and refetches. Bounds are the caller's concern.
func (m *Mirror) Update(ctx context.Context, lineID string, quantity int) error {
	return m.write(ctx,
		api.Pathf("/updatecart/%s/%s", lineID, quantity), http.MethodPatch,
		notify.Success("Cart Updated", "Item quantity updated successfully"),
		"Update Failed", "Failed to update cart")
}

// Remove deletes a cart line and refetches
func (m *Mirror) Remove(ctx context.Context, lineID string) error {
	return m.write(ctx,
		api.Pathf("/deletecart/%s", lineID), http.MethodDelete,
		notify.Success("Item Removed", "Item removed from cart successfully"),
		"Remove Failed", "Failed to remove item")
}

func (m *Mirror) write(ctx context.Context, path, method string, success notify.Notification, failTitle, failFallback string) error {
	mutate := func(ctx context.Context) error {
		return m.api.Call(ctx, method, path, nil, nil)
	}

	err := reconcile.Run(ctx, mutate, m.Fetch)

	var refetchErr *reconcile.RefetchError
	switch {
	case err == nil, errors.As(err, &refetchErr):
		// The write landed even if the mirror could not catch up with it.
		m.notifier.Notify(success)
	default:
		m.notifier.Notify(notify.Failure(failTitle, api.Message(err, failFallback)))
	}
	return err
}

// Clear empties the mirror without telling the backend
func (m *Mirror) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = nil
}

// Lines returns the mirrored lines in server order
func (m *Mirror) Lines() []Line {
	m.mu.RLock()
	defer m.mu.RUnlock()
	lines := make([]Line, len(m.lines))
	copy(lines, m.lines)
	return lines
}

// Totals returns count and total computed from the current lines
func (m *Mirror) Totals() Totals {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Summarize(m.lines)
}

// Count is the number of distinct lines
func (m *Mirror) Count() int {
	return m.Totals().Count
}

// Total is Σ price × quantity over the current lines
func (m *Mirror) Total() decimal.Decimal {
	return m.Totals().Total
}

// Loading is true while a fetch is in flight
func (m *Mirror) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.inflight > 0
}

func (m *Mirror) begin() {
	m.mu.Lock()
	m.inflight++
	m.mu.Unlock()
}

func (m *Mirror) end() {
	m.mu.Lock()
	m.inflight--
	m.mu.Unlock()
}
