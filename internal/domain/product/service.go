// internal/domain/product/service.go
package product

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/your-org/ecommerce-storefront/internal/infrastructure/api"
	"github.com/your-org/ecommerce-storefront/internal/pkg/validate"
)

// ErrInvalidPrice is returned when a product input carries a negative price
var ErrInvalidPrice = errors.New("price must not be negative")

// Service wraps the catalog endpoints
type Service struct {
	api api.Caller
}

// NewService creates a new product service
func NewService(caller api.Caller) *Service {
	return &Service{api: caller}
}

type listResponse struct {
	Products []Product `json:"products"`
}

type productResponse struct {
	Product *Product `json:"product"`
}

// List returns every product, active or not. Callers filter with Active.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	var resp listResponse
	if err := s.api.Call(ctx, http.MethodGet, "/product", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// ListActive returns the products shoppers may see
func (s *Service) ListActive(ctx context.Context) ([]Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	active := products[:0]
	for _, p := range products {
		if p.Active() {
			active = append(active, p)
		}
	}
	return active, nil
}

// Get fetches a single product
func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	var resp productResponse
	if err := s.api.Call(ctx, http.MethodGet, api.Pathf("/getproductbyid/%s", id), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Product == nil {
		return nil, fmt.Errorf("product %s: empty response", id)
	}
	return resp.Product, nil
}

// Create adds a product owned by userID. New products are always active.
func (s *Service) Create(ctx context.Context, userID string, in Input) error {
	if err := check(in); err != nil {
		return err
	}
	in.IsActive = true
	return s.api.Call(ctx, http.MethodPost, api.Pathf("/createproduct/%s", userID), in, nil)
}

// Update replaces a product's editable fields
func (s *Service) Update(ctx context.Context, id string, in Input) error {
	if err := check(in); err != nil {
		return err
	}
	return s.api.Call(ctx, http.MethodPut, api.Pathf("/updateproduct/%s", id), in, nil)
}

// Delete removes a product
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.api.Call(ctx, http.MethodDelete, api.Pathf("/deleteproduct/%s", id), nil, nil)
}

func check(in Input) error {
	if err := validate.Check(in); err != nil {
		return err
	}
	if in.Price.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}
