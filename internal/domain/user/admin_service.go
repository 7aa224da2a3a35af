// internal/domain/user/admin_service.go
package user

import (
	"context"
	"net/http"

	"github.com/your-org/ecommerce-storefront/internal/infrastructure/api"
)

// AdminService handles admin user management operations
type AdminService struct {
	api api.Caller
}

// NewAdminService creates a new admin user service
func NewAdminService(caller api.Caller) *AdminService {
	return &AdminService{api: caller}
}

// Patch is a partial user update. Nil fields are left out of the request.
type Patch struct {
	Username  *string `json:"username,omitempty"`
	Contact   *int64  `json:"contact,omitempty"`
	IsBlocked *bool   `json:"isblocked,omitempty"`
}

// BlockPatch flips the blocked flag relative to current
func BlockPatch(current bool) Patch {
	blocked := !current
	return Patch{IsBlocked: &blocked}
}

type listResponse struct {
	Users []User `json:"users"`
}

type userResponse struct {
	User *User `json:"user"`
}

// List returns every account
func (s *AdminService) List(ctx context.Context) ([]User, error) {
	var resp listResponse
	if err := s.api.Call(ctx, http.MethodGet, "/getusers", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// GetByEmail looks an account up by email address
func (s *AdminService) GetByEmail(ctx context.Context, email string) (*User, error) {
	var resp userResponse
	if err := s.api.Call(ctx, http.MethodGet, api.Pathf("/getuserbyemail/%s", email), nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Update applies patch to the account
func (s *AdminService) Update(ctx context.Context, id string, patch Patch) error {
	return s.api.Call(ctx, http.MethodPut, api.Pathf("/updateuser/%s", id), patch, nil)
}

// Delete removes the account
func (s *AdminService) Delete(ctx context.Context, id string) error {
	return s.api.Call(ctx, http.MethodDelete, api.Pathf("/deleteuser/%s", id), nil, nil)
}
