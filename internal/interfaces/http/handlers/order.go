// internal/interfaces/http/handlers/order.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/ecommerce-storefront/internal/domain/order"
	"github.com/your-org/ecommerce-storefront/internal/domain/session"
	"github.com/your-org/ecommerce-storefront/internal/infrastructure/api"
	"github.com/your-org/ecommerce-storefront/internal/pkg/notify"
	"github.com/your-org/ecommerce-storefront/internal/pkg/pdf"
)

// OrderHandler serves the signed-in user's order history and invoices
type OrderHandler struct {
	view     *View
	orders   *order.Service
	session  *session.Store
	invoices *pdf.Service
	logger   *logrus.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(view *View, orders *order.Service, sess *session.Store, invoices *pdf.Service, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{
		view:     view,
		orders:   orders,
		session:  sess,
		invoices: invoices,
		logger:   logger,
	}
}

// GetOrders handles GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	orders, err := h.orders.ListForUser(c.Request.Context(), h.session.UserID())
	if err != nil {
		h.view.Notify(notify.Failure("Error", api.Message(err, "Failed to fetch orders")))
	}
	h.view.Render(c, http.StatusOK, "orders.html", "orders", "My Orders", gin.H{
		"Orders":          orders,
		"InvoicesEnabled": h.invoices.Enabled(),
	})
}

// DownloadInvoice handles GET /orders/:id/invoice
func (h *OrderHandler) DownloadInvoice(c *gin.Context) {
	if !h.invoices.Enabled() {
		h.view.Error(c, http.StatusNotFound, "Not Found", "Invoices are not available.")
		return
	}

	current := h.session.Current()
	if current == nil {
		redirect(c, "/login")
		return
	}

	o, err := h.orders.GetForUser(c.Request.Context(), current.ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			h.view.Error(c, http.StatusNotFound, "Order not found", "This order does not exist or is not yours.")
			return
		}
		h.view.Error(c, http.StatusBadGateway, "Error", api.Message(err, "Failed to fetch orders"))
		return
	}

	buf, err := h.invoices.GenerateInvoice(o, pdf.Customer{Name: current.GetDisplayName(), Email: current.Email})
	if err != nil {
		h.logger.WithError(err).WithField("order_id", o.ID).Error("Failed to generate invoice")
		h.view.Error(c, http.StatusInternalServerError, "Error", "Failed to generate invoice")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", pdf.Filename(o)))
	c.Header("Content-Length", strconv.Itoa(buf.Len()))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
