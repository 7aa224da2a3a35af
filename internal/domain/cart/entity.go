// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRef is the product snapshot the backend joins onto each cart row
type ProductRef struct {
	ID             string          `json:"_id"`
	Name           string          `json:"productname"`
	Price          decimal.Decimal `json:"price"`
	Image          string          `json:"image"`
	StockAvailable int             `json:"stock_available"`
}

// Line is one row of the user's cart
type Line struct {
	ID        string     `json:"_id"`
	UserID    string     `json:"userid,omitempty"`
	Product   ProductRef `json:"productid"`
	Quantity  int        `json:"quantity"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Subtotal returns price × quantity for the line
func (l Line) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// MaxQuantity is the upper bound the UI offers for this line
func (l Line) MaxQuantity() int {
	if l.Product.StockAvailable < 1 {
		return 1
	}
	return l.Product.StockAvailable
}

// Totals is the derived view over a set of lines
type Totals struct {
	Count         int             `json:"count"`
	TotalQuantity int             `json:"total_quantity"`
	Total         decimal.Decimal `json:"total"`
}

// Summarize computes totals from lines. It is the only place totals come from.
func Summarize(lines []Line) Totals {
	totals := Totals{Count: len(lines), Total: decimal.Zero}
	for _, line := range lines {
		totals.TotalQuantity += line.Quantity
		totals.Total = totals.Total.Add(line.Subtotal())
	}
	return totals
}

type cartResponse struct {
	Cart []Line `json:"cart"`
}
