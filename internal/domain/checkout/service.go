// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/ecommerce-storefront/internal/domain/cart"
	"github.com/your-org/ecommerce-storefront/internal/domain/order"
	"github.com/your-org/ecommerce-storefront/internal/domain/payment"
	"github.com/your-org/ecommerce-storefront/internal/infrastructure/api"
	"github.com/your-org/ecommerce-storefront/internal/pkg/notify"
)

var (
	// ErrAddressRequired is returned when the shipping address is blank
	ErrAddressRequired = errors.New("shipping address required")
	// ErrEmptyCart is returned when there is nothing to order
	ErrEmptyCart = errors.New("cart is empty")
)

// Cart is the part of the cart mirror checkout depends on
type Cart interface {
	Lines() []cart.Line
	Totals() cart.Totals
	Clear()
	Fetch(ctx context.Context) error
}

// Identity tells checkout who is buying
type Identity interface {
	UserID() string
}

// Service places orders from the mirrored cart
type Service struct {
	orders   *order.Service
	cart     Cart
	identity Identity
	payments payment.Gateway
	notifier notify.Notifier
	logger   *logrus.Logger
}

// NewService creates a new checkout service
func NewService(orders *order.Service, c Cart, identity Identity, payments payment.Gateway, notifier notify.Notifier, logger *logrus.Logger) *Service {
	return &Service{
		orders:   orders,
		cart:     c,
		identity: identity,
		payments: payments,
		notifier: notifier,
		logger:   logger,
	}
}

// Summary is what the checkout form shows before the order is placed
type Summary struct {
	Lines []cart.Line
	Total decimal.Decimal
}

// PlaceOrderRequest is the submitted checkout form
type PlaceOrderRequest struct {
	ShippingAddress string            `form:"shippingaddress"`
	PaymentMode     order.PaymentMode `form:"paymentmode"`
}

// Result of a placed order. Order is nil when the backend does not echo it.
type Result struct {
	Order   *order.Order
	Payment *payment.Receipt
}

// Summary returns the lines and total currently mirrored
func (s *Service) Summary() Summary {
	return Summary{Lines: s.cart.Lines(), Total: s.cart.Totals().Total}
}

// PlaceOrder turns the user's server-side cart into an order. The backend
// empties its cart itself; the mirror is cleared at once and then refetched.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Result, error) {
	userID := s.identity.UserID()
	if userID == "" {
		s.notifier.Notify(notify.Failure("Login Required", "Please login to place an order"))
		return nil, cart.ErrAuthRequired
	}

	address := strings.TrimSpace(req.ShippingAddress)
	if address == "" {
		s.notifier.Notify(notify.Failure("Address Required", "Please enter your shipping address"))
		return nil, ErrAddressRequired
	}

	totals := s.cart.Totals()
	if totals.Count == 0 {
		s.notifier.Notify(notify.Failure("Order Failed", "Your cart is empty"))
		return nil, ErrEmptyCart
	}

	mode := req.PaymentMode
	if mode == "" {
		mode = order.PaymentModeCOD
	}

	result := &Result{}
	if mode == order.PaymentModeOnline {
		receipt, err := s.payments.Initiate(ctx, payment.Request{UserID: userID, Amount: totals.Total})
		if err != nil {
			s.notifier.Notify(notify.Failure("Payment Failed", err.Error()))
			return nil, err
		}
		result.Payment = receipt
	}

	created, err := s.orders.Create(ctx, order.CreateRequest{
		UserID:          userID,
		PaymentMode:     mode,
		ShippingAddress: address,
	})
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("Failed to place order")
		s.notifier.Notify(notify.Failure("Order Failed", api.Message(err, "Failed to place order")))
		return nil, err
	}
	result.Order = created

	s.cart.Clear()
	if err := s.cart.Fetch(ctx); err != nil {
		s.logger.WithError(err).Warn("Failed to refresh cart after order")
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":      userID,
		"payment_mode": mode,
		"total":        totals.Total.StringFixed(2),
	}).Info("Order placed")
	s.notifier.Notify(notify.Success("Order Placed Successfully!", "Your order has been placed and is being processed."))

	return result, nil
}
