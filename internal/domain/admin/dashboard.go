// internal/domain/admin/dashboard.go
package admin

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/your-org/ecommerce-storefront/internal/domain/analytics"
	"github.com/your-org/ecommerce-storefront/internal/domain/order"
	"github.com/your-org/ecommerce-storefront/internal/domain/product"
	"github.com/your-org/ecommerce-storefront/internal/domain/user"
	"github.com/your-org/ecommerce-storefront/internal/pkg/notify"
)

type (
	ProductTable = Table[product.Product, product.Input]
	UserTable    = Table[user.User, user.Patch]
	OrderTable   = Table[order.Order, order.StatusPatch]
)

// Dashboard groups the product, user and order tables
type Dashboard struct {
	Products *ProductTable
	Users    *UserTable
	Orders   *OrderTable

	products *product.Service
}

// NewDashboard wires the three tables to their services
func NewDashboard(products *product.Service, users *user.AdminService, orders *order.Service, notifier notify.Notifier, logger *logrus.Logger) *Dashboard {
	return &Dashboard{
		Products: NewTable(Source[product.Product, product.Input]{
			Name:   "products",
			List:   products.List,
			Update: products.Update,
			Delete: products.Delete,
		}, notifier, logger),
		Users: NewTable(Source[user.User, user.Patch]{
			Name:   "users",
			List:   users.List,
			Update: users.Update,
			Delete: users.Delete,
		}, notifier, logger),
		Orders: NewTable(Source[order.Order, order.StatusPatch]{
			Name:   "orders",
			List:   orders.ListAll,
			Update: orders.UpdateStatus,
		}, notifier, logger),
		products: products,
	}
}

// Load lists all three tables. Each failure is reported on its own.
func (d *Dashboard) Load(ctx context.Context) error {
	return errors.Join(
		d.Products.Load(ctx),
		d.Users.Load(ctx),
		d.Orders.Load(ctx),
	)
}

// CreateProduct adds a product owned by ownerID
func (d *Dashboard) CreateProduct(ctx context.Context, ownerID string, in product.Input) error {
	return d.Products.Do(ctx, func(ctx context.Context) error {
		return d.products.Create(ctx, ownerID, in)
	}, Messages{Success: "Product added successfully", Failure: "Failed to add product"})
}

// UpdateProduct saves an edited product
func (d *Dashboard) UpdateProduct(ctx context.Context, id string, in product.Input) error {
	return d.Products.Mutate(ctx, id, in,
		Messages{Success: "Product updated successfully", Failure: "Failed to update product"})
}

// DeleteProduct removes a product once confirmed
func (d *Dashboard) DeleteProduct(ctx context.Context, id string, confirmed bool) error {
	return d.Products.Delete(ctx, id, confirmed,
		Messages{Success: "Product deleted successfully", Failure: "Failed to delete product"})
}

// ToggleBlock flips a user's blocked flag given its current value
func (d *Dashboard) ToggleBlock(ctx context.Context, id string, currentlyBlocked bool) error {
	success := "User blocked successfully"
	if currentlyBlocked {
		success = "User unblocked successfully"
	}
	return d.Users.Mutate(ctx, id, user.BlockPatch(currentlyBlocked),
		Messages{Success: success, Failure: "Failed to update user status"})
}

// DeleteUser removes an account once confirmed
func (d *Dashboard) DeleteUser(ctx context.Context, id string, confirmed bool) error {
	return d.Users.Delete(ctx, id, confirmed,
		Messages{Success: "User deleted successfully", Failure: "Failed to delete user"})
}

// SetOrderStatus moves an order to status
func (d *Dashboard) SetOrderStatus(ctx context.Context, id string, status order.OrderStatus) error {
	return d.Orders.Mutate(ctx, id, order.StatusPatch{Status: status},
		Messages{Success: "Order status updated successfully", Failure: "Failed to update order status"})
}

// ActiveProducts returns the listed products
func (d *Dashboard) ActiveProducts() []product.Product {
	return d.Products.Filter(func(p product.Product) bool { return p.Active() })
}

// Stats summarizes the loaded tables
func (d *Dashboard) Stats() analytics.DashboardStats {
	return analytics.Summarize(d.Products.Rows(), d.Users.Rows(), d.Orders.Rows())
}
