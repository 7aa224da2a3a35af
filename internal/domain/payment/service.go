// internal/domain/payment/service.go
package payment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// DefaultCurrency is the currency prices are quoted in
const DefaultCurrency = "INR"

// ErrInvalidAmount is returned for payments of zero or less
var ErrInvalidAmount = errors.New("payment amount must be positive")

// Status of a payment attempt
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusFailed  Status = "failed"
)

// Request asks for an online payment
type Request struct {
	UserID   string
	Amount   decimal.Decimal
	Currency string
}

// Receipt acknowledges a payment request
type Receipt struct {
	Reference string          `json:"reference"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Status    Status          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// Gateway takes online payments
type Gateway interface {
	Initiate(ctx context.Context, req Request) (*Receipt, error)
}

// StubGateway accepts every valid request and leaves it pending. No money
// moves; the backend settles online orders on its own.
type StubGateway struct {
	logger *logrus.Logger
}

// NewStubGateway creates a gateway that only issues references
func NewStubGateway(logger *logrus.Logger) *StubGateway {
	return &StubGateway{logger: logger}
}

// Initiate issues a pending receipt for req
func (g *StubGateway) Initiate(ctx context.Context, req Request) (*Receipt, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if req.Currency == "" {
		req.Currency = DefaultCurrency
	}

	receipt := &Receipt{
		Reference: "pay_" + uuid.NewString(),
		Amount:    req.Amount,
		Currency:  req.Currency,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}

	g.logger.WithFields(logrus.Fields{
		"user_id":   req.UserID,
		"reference": receipt.Reference,
		"amount":    receipt.Amount.StringFixed(2),
		"currency":  receipt.Currency,
	}).Info("Online payment initiated")

	return receipt, nil
}
