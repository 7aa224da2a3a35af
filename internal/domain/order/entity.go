// internal/domain/order/entity.go
package order

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the order status
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
)

// Statuses lists the statuses an admin may set, in display order
var Statuses = []OrderStatus{OrderStatusPending, OrderStatusCompleted}

// Valid reports whether s may be set from the admin screen
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted:
		return true
	}
	return false
}

// Label capitalizes the status for display
func (s OrderStatus) Label() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// PaymentMode is how the customer pays
type PaymentMode string

const (
	PaymentModeCOD    PaymentMode = "cod"
	PaymentModeOnline PaymentMode = "online"
)

// Valid reports whether m is a known mode
func (m PaymentMode) Valid() bool {
	return m == PaymentModeCOD || m == PaymentModeOnline
}

// Display names the payment mode for customers. Anything but COD is shown as online.
func (m PaymentMode) Display() string {
	if m == PaymentModeCOD {
		return "Cash on Delivery"
	}
	return "Online Payment"
}

// UserRef is the order owner. The customer order list sends a bare id, the
// admin list embeds the user.
type UserRef struct {
	ID       string `json:"_id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// UnmarshalJSON accepts either an id string or a user object
func (u *UserRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*u = UserRef{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*u = UserRef{ID: id}
		return nil
	}

	type plain UserRef
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("order user: %w", err)
	}
	*u = UserRef(p)
	return nil
}

// ItemProduct is the product snapshot on an order line
type ItemProduct struct {
	ID    string          `json:"_id"`
	Name  string          `json:"productname"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image,omitempty"`
}

// OrderItem represents items in an order
type OrderItem struct {
	Product  ItemProduct `json:"productid"`
	Quantity int         `json:"quantity"`
}

// Subtotal returns price × quantity for the line
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order represents the order entity
type Order struct {
	ID              string          `json:"_id"`
	User            UserRef         `json:"userid"`
	Items           []OrderItem     `json:"products"`
	TotalAmount     decimal.Decimal `json:"totalamount"`
	PaymentMode     PaymentMode     `json:"paymentmode"`
	Status          OrderStatus     `json:"status"`
	OrderDate       time.Time       `json:"orderdate"`
	DeliveryDate    *time.Time      `json:"deliverydate,omitempty"`
	IsCancelled     bool            `json:"iscancle"`
	ShippingAddress string          `json:"shippingaddress"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ShortID is the order number shown to customers: the last 8 characters of the id, upper-cased
func (o Order) ShortID() string {
	id := o.ID
	if len(id) > 8 {
		id = id[len(id)-8:]
	}
	return strings.ToUpper(id)
}

// ItemCount is the number of lines in the order
func (o Order) ItemCount() int {
	return len(o.Items)
}

// IsCompleted checks if order is completed
func (o Order) IsCompleted() bool {
	return o.Status == OrderStatusCompleted
}

// CreateRequest is the body of POST /createorder. The backend builds the
// order lines from the user's server-side cart.
type CreateRequest struct {
	UserID          string      `json:"userid" validate:"required"`
	PaymentMode     PaymentMode `json:"paymentmode" validate:"required,oneof=cod online"`
	ShippingAddress string      `json:"shippingaddress" validate:"required"`
	Status          OrderStatus `json:"status"`
}
