// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/your-org/ecommerce-storefront/internal/infrastructure/api"
	"github.com/your-org/ecommerce-storefront/internal/pkg/validate"
)

var (
	// ErrInvalidStatus is returned for statuses the admin screen may not set
	ErrInvalidStatus = errors.New("invalid order status")
	// ErrNotFound is returned when an order is not among those the backend returned
	ErrNotFound = errors.New("order not found")
)

// Service wraps the order endpoints
type Service struct {
	api api.Caller
}

// NewService creates a new order service
func NewService(caller api.Caller) *Service {
	return &Service{api: caller}
}

type listResponse struct {
	Orders []Order `json:"orders"`
}

type createResponse struct {
	Order *Order `json:"order"`
}

// StatusPatch is the body of an admin status update
type StatusPatch struct {
	Status OrderStatus `json:"status"`
}

// Create places an order for everything in the user's cart. New orders
// always start pending. The created order is returned when the backend
// echoes it, nil otherwise.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Order, error) {
	req.Status = OrderStatusPending
	if err := validate.Check(req); err != nil {
		return nil, err
	}

	var resp createResponse
	if err := s.api.Call(ctx, http.MethodPost, "/createorder", req, &resp); err != nil {
		return nil, err
	}
	return resp.Order, nil
}

// ListAll returns every order, for admins
func (s *Service) ListAll(ctx context.Context) ([]Order, error) {
	var resp listResponse
	if err := s.api.Call(ctx, http.MethodGet, "/getorders", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// ListForUser returns the orders placed by userID
func (s *Service) ListForUser(ctx context.Context, userID string) ([]Order, error) {
	var resp listResponse
	if err := s.api.Call(ctx, http.MethodGet, api.Pathf("/getuserorders/%s", userID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// GetForUser finds one of userID's orders
func (s *Service) GetForUser(ctx context.Context, userID, orderID string) (*Order, error) {
	orders, err := s.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == orderID {
			return &orders[i], nil
		}
	}
	return nil, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
}

// UpdateStatus sets an order's status. Only pending and completed are accepted
// and anything else is rejected before the network is touched.
func (s *Service) UpdateStatus(ctx context.Context, id string, patch StatusPatch) error {
	if !patch.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, patch.Status)
	}
	return s.api.Call(ctx, http.MethodPut, api.Pathf("/updateorder/%s", id), patch, nil)
}
