// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/ecommerce-storefront/internal/domain/cart"
	"github.com/your-org/ecommerce-storefront/internal/pkg/notify"
)

// CartHandler serves the cart page and its line actions
type CartHandler struct {
	view *View
	cart *cart.Mirror
}

// NewCartHandler creates a new cart handler
func NewCartHandler(view *View, c *cart.Mirror) *CartHandler {
	return &CartHandler{view: view, cart: c}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	totals := h.cart.Totals()
	h.view.Render(c, http.StatusOK, "cart.html", "cart", "Cart", gin.H{
		"Loading": h.cart.Loading(),
		"Lines":   h.cart.Lines(),
		"Total":   totals.Total,
	})
}

// UpdateCartItem handles POST /cart/:id. The quantity is kept within
// 1..stock of the mirrored line.
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	lineID := c.Param("id")

	line, ok := h.findLine(lineID)
	if !ok {
		h.view.Notify(notify.Failure("Update Failed", "Item is no longer in your cart"))
		redirect(c, "/cart")
		return
	}

	quantity := formInt(c, "quantity", line.Quantity)
	if quantity < 1 {
		quantity = 1
	}
	if limit := line.MaxQuantity(); quantity > limit {
		quantity = limit
	}

	_ = h.cart.Update(c.Request.Context(), lineID, quantity)
	redirect(c, "/cart")
}

// RemoveCartItem handles POST /cart/:id/remove
func (h *CartHandler) RemoveCartItem(c *gin.Context) {
	_ = h.cart.Remove(c.Request.Context(), c.Param("id"))
	redirect(c, "/cart")
}

func (h *CartHandler) findLine(id string) (cart.Line, bool) {
	for _, line := range h.cart.Lines() {
		if line.ID == id {
			return line, true
		}
	}
	return cart.Line{}, false
}
