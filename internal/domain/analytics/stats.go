// internal/domain/analytics/stats.go
package analytics

import (
	"github.com/shopspring/decimal"
	"github.com/your-org/ecommerce-storefront/internal/domain/order"
	"github.com/your-org/ecommerce-storefront/internal/domain/product"
	"github.com/your-org/ecommerce-storefront/internal/domain/user"
)

// DashboardStats represents overall dashboard statistics
type DashboardStats struct {
	// Order metrics
	TotalOrders     int             `json:"total_orders"`
	PendingOrders   int             `json:"pending_orders"`
	CompletedOrders int             `json:"completed_orders"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	AvgOrderValue   decimal.Decimal `json:"avg_order_value"`

	// User metrics
	TotalUsers   int `json:"total_users"`
	BlockedUsers int `json:"blocked_users"`
	AdminUsers   int `json:"admin_users"`

	// Product metrics
	TotalProducts      int `json:"total_products"`
	ActiveProducts     int `json:"active_products"`
	OutOfStockProducts int `json:"out_of_stock_products"`
	LowStockProducts   int `json:"low_stock_products"`
}

// Summarize computes dashboard statistics from the rows the admin tables last loaded.
// Revenue counts completed orders only.
func Summarize(products []product.Product, users []user.User, orders []order.Order) DashboardStats {
	stats := DashboardStats{
		TotalOrders:   len(orders),
		TotalUsers:    len(users),
		TotalProducts: len(products),
		TotalRevenue:  decimal.Zero,
		AvgOrderValue: decimal.Zero,
	}

	for i := range products {
		p := &products[i]
		if p.Active() {
			stats.ActiveProducts++
		}
		switch {
		case !p.InStock():
			stats.OutOfStockProducts++
		case p.IsLowStock():
			stats.LowStockProducts++
		}
	}

	for _, u := range users {
		if u.IsBlocked {
			stats.BlockedUsers++
		}
		if u.IsAdmin {
			stats.AdminUsers++
		}
	}

	for _, o := range orders {
		switch o.Status {
		case order.OrderStatusPending:
			stats.PendingOrders++
		case order.OrderStatusCompleted:
			stats.CompletedOrders++
			stats.TotalRevenue = stats.TotalRevenue.Add(o.TotalAmount)
		}
	}
	if stats.CompletedOrders > 0 {
		stats.AvgOrderValue = stats.TotalRevenue.Div(decimal.NewFromInt(int64(stats.CompletedOrders))).Round(2)
	}

	return stats
}
