// internal/interfaces/http/handlers/admin.go
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/your-org/ecommerce-storefront/internal/domain/admin"
	"github.com/your-org/ecommerce-storefront/internal/domain/order"
	"github.com/your-org/ecommerce-storefront/internal/domain/product"
	"github.com/your-org/ecommerce-storefront/internal/domain/session"
	"github.com/your-org/ecommerce-storefront/internal/infrastructure/api"
	"github.com/your-org/ecommerce-storefront/internal/pkg/notify"
)

var adminTabs = map[string]bool{"products": true, "users": true, "orders": true}

// AdminHandler serves the admin dashboard and its table actions
type AdminHandler struct {
	view      *View
	dashboard *admin.Dashboard
	products  *product.Service
	session   *session.Store
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(view *View, dashboard *admin.Dashboard, products *product.Service, sess *session.Store) *AdminHandler {
	return &AdminHandler{
		view:      view,
		dashboard: dashboard,
		products:  products,
		session:   sess,
	}
}

// GetDashboard handles GET /admin
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	tab := c.DefaultQuery("tab", "products")
	if !adminTabs[tab] {
		tab = "products"
	}

	// each table reports its own load failure and keeps its last rows
	_ = h.dashboard.Load(c.Request.Context())

	activeOnly := c.Query("show") == "active"
	products := h.dashboard.Products.Rows()
	if activeOnly {
		products = h.dashboard.ActiveProducts()
	}

	h.view.Render(c, http.StatusOK, "admin.html", "admin", "Admin Dashboard", gin.H{
		"Tab":        tab,
		"ActiveOnly": activeOnly,
		"Stats":      h.dashboard.Stats(),
		"Products":   products,
		"Users":      h.dashboard.Users.Rows(),
		"Orders":     h.dashboard.Orders.Rows(),
		"Statuses":   order.Statuses,
	})
}

// NewProduct handles GET /admin/products/new
func (h *AdminHandler) NewProduct(c *gin.Context) {
	h.renderProductForm(c, http.StatusOK, "", product.Input{IsActive: true})
}

// CreateProduct handles POST /admin/products
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	in, ok := h.bindProduct(c, "")
	if !ok {
		return
	}
	if err := h.dashboard.CreateProduct(c.Request.Context(), h.session.UserID(), in); err != nil {
		h.renderProductForm(c, http.StatusUnprocessableEntity, "", in)
		return
	}
	redirect(c, "/admin?tab=products")
}

// EditProduct handles GET /admin/products/:id/edit
func (h *AdminHandler) EditProduct(c *gin.Context) {
	id := c.Param("id")
	p, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		h.view.Error(c, http.StatusNotFound, "Product not found", api.Message(err, "The product could not be loaded."))
		return
	}
	h.renderProductForm(c, http.StatusOK, id, product.InputFrom(p))
}

// UpdateProduct handles POST /admin/products/:id
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	in, ok := h.bindProduct(c, id)
	if !ok {
		return
	}
	if err := h.dashboard.UpdateProduct(c.Request.Context(), id, in); err != nil {
		h.renderProductForm(c, http.StatusUnprocessableEntity, id, in)
		return
	}
	redirect(c, "/admin?tab=products")
}

// ConfirmDeleteProduct handles GET /admin/products/:id/delete
func (h *AdminHandler) ConfirmDeleteProduct(c *gin.Context) {
	h.view.Confirm(c, "Are you sure you want to delete this product?",
		"/admin/products/"+c.Param("id")+"/delete", "/admin?tab=products")
}

// DeleteProduct handles POST /admin/products/:id/delete
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	_ = h.dashboard.DeleteProduct(c.Request.Context(), c.Param("id"), confirmed(c))
	redirect(c, "/admin?tab=products")
}

// ToggleBlock handles POST /admin/users/:id/block
func (h *AdminHandler) ToggleBlock(c *gin.Context) {
	blocked, err := strconv.ParseBool(c.PostForm("blocked"))
	if err != nil {
		h.view.Error(c, http.StatusBadRequest, "Invalid request", "blocked must be true or false")
		return
	}
	_ = h.dashboard.ToggleBlock(c.Request.Context(), c.Param("id"), blocked)
	redirect(c, "/admin?tab=users")
}

// ConfirmDeleteUser handles GET /admin/users/:id/delete
func (h *AdminHandler) ConfirmDeleteUser(c *gin.Context) {
	h.view.Confirm(c, "Are you sure you want to delete this user?",
		"/admin/users/"+c.Param("id")+"/delete", "/admin?tab=users")
}

// DeleteUser handles POST /admin/users/:id/delete
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	_ = h.dashboard.DeleteUser(c.Request.Context(), c.Param("id"), confirmed(c))
	redirect(c, "/admin?tab=users")
}

// SetOrderStatus handles POST /admin/orders/:id/status
func (h *AdminHandler) SetOrderStatus(c *gin.Context) {
	status := order.OrderStatus(c.PostForm("status"))
	_ = h.dashboard.SetOrderStatus(c.Request.Context(), c.Param("id"), status)
	redirect(c, "/admin?tab=orders")
}

// bindProduct reads the product form. On failure it re-renders the form and
// reports false.
func (h *AdminHandler) bindProduct(c *gin.Context, id string) (product.Input, bool) {
	var in product.Input
	if err := c.ShouldBind(&in); err != nil {
		h.view.Notify(notify.Failure("Error", err.Error()))
		h.renderProductForm(c, http.StatusBadRequest, id, in)
		return in, false
	}

	price, err := decimal.NewFromString(strings.TrimSpace(c.PostForm("price")))
	if err != nil {
		h.view.Notify(notify.Failure("Error", "price must be a number"))
		h.renderProductForm(c, http.StatusUnprocessableEntity, id, in)
		return in, false
	}
	in.Price = price
	return in, true
}

func (h *AdminHandler) renderProductForm(c *gin.Context, status int, id string, in product.Input) {
	title := "Add New Product"
	if id != "" {
		title = "Edit Product"
	}
	h.view.Render(c, status, "product_form.html", "admin", title, gin.H{
		"ProductID": id,
		"Form":      in,
	})
}

func confirmed(c *gin.Context) bool {
	return c.PostForm("confirm") == "yes"
}
