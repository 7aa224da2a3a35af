// internal/interfaces/http/handlers/product.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/ecommerce-storefront/internal/domain/cart"
	"github.com/your-org/ecommerce-storefront/internal/domain/product"
	"github.com/your-org/ecommerce-storefront/internal/infrastructure/api"
	"github.com/your-org/ecommerce-storefront/internal/pkg/notify"
)

// ProductHandler serves the catalogue
type ProductHandler struct {
	view     *View
	products *product.Service
	cart     *cart.Mirror
}

// NewProductHandler creates a new product handler
func NewProductHandler(view *View, products *product.Service, c *cart.Mirror) *ProductHandler {
	return &ProductHandler{view: view, products: products, cart: c}
}

// GetProducts handles GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.products.ListActive(c.Request.Context())
	if err != nil {
		h.view.Notify(notify.Failure("Error", api.Message(err, "Failed to fetch products")))
	}
	h.view.Render(c, http.StatusOK, "products.html", "products", "Products", gin.H{"Products": products})
}

// GetProduct handles GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	p, err := h.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.view.Error(c, http.StatusNotFound, "Product not found", api.Message(err, "The product could not be loaded."))
		return
	}
	h.view.Render(c, http.StatusOK, "product.html", "products", p.Name, gin.H{"Product": p})
}

// AddToCart handles POST /products/:id/cart
func (h *ProductHandler) AddToCart(c *gin.Context) {
	quantity := formInt(c, "quantity", cart.DefaultQuantity)
	if quantity < 1 {
		quantity = cart.DefaultQuantity
	}

	// failures are reported through the notification queue
	_ = h.cart.Add(c.Request.Context(), c.Param("id"), quantity)

	redirect(c, localPath(c.PostForm("next"), "/products"))
}
