// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/ecommerce-storefront/internal/domain/cart"
	"github.com/your-org/ecommerce-storefront/internal/domain/checkout"
	"github.com/your-org/ecommerce-storefront/internal/domain/order"
)

// CheckoutHandler serves the checkout form
type CheckoutHandler struct {
	view     *View
	checkout *checkout.Service
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(view *View, svc *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{view: view, checkout: svc}
}

// GetCheckout handles GET /checkout
func (h *CheckoutHandler) GetCheckout(c *gin.Context) {
	summary := h.checkout.Summary()
	if len(summary.Lines) == 0 {
		redirect(c, "/cart")
		return
	}
	h.render(c, http.StatusOK, summary, checkout.PlaceOrderRequest{PaymentMode: order.PaymentModeCOD})
}

// PlaceOrder handles POST /checkout
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var req checkout.PlaceOrderRequest
	if err := c.ShouldBind(&req); err != nil {
		h.view.Error(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	// render the summary from before the order; success clears the mirror
	summary := h.checkout.Summary()

	if _, err := h.checkout.PlaceOrder(c.Request.Context(), req); err != nil {
		if errors.Is(err, cart.ErrAuthRequired) {
			redirect(c, "/login")
			return
		}
		h.render(c, http.StatusUnprocessableEntity, summary, req)
		return
	}
	redirect(c, "/orders")
}

func (h *CheckoutHandler) render(c *gin.Context, status int, summary checkout.Summary, form checkout.PlaceOrderRequest) {
	h.view.Render(c, status, "checkout.html", "cart", "Checkout", gin.H{
		"Summary": summary,
		"Form":    form,
	})
}
