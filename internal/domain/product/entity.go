// internal/domain/product/entity.go
package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// The backend stores prices as JSON numbers.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// LowStockThreshold is the stock level below which a product is shown as running out
const LowStockThreshold = 10

// Product represents a catalog entry as the backend serves it
type Product struct {
	ID             string          `json:"_id"`
	Name           string          `json:"productname"`
	Price          decimal.Decimal `json:"price"`
	Category       string          `json:"category"`
	Description    string          `json:"description"`
	Image          string          `json:"image"`
	StockAvailable int             `json:"stock_available"`
	// IsActive is nil when the backend omits the field; see Active.
	IsActive  *bool     `json:"isactive,omitempty"`
	Reviews   []Review  `json:"reviews"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Review is a customer rating attached to a product
type Review struct {
	ID        string    `json:"_id,omitempty"`
	UserID    string    `json:"userid,omitempty"`
	Rating    float64   `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Active reports whether the product is listed. A product the backend never
// marked either way counts as active.
func (p Product) Active() bool {
	return p.IsActive == nil || *p.IsActive
}

// InStock checks if product has stock available
func (p Product) InStock() bool {
	return p.StockAvailable > 0
}

// IsLowStock checks if product stock is low but not exhausted
func (p Product) IsLowStock() bool {
	return p.StockAvailable > 0 && p.StockAvailable < LowStockThreshold
}

// AverageRating is the mean review rating, or 0 without reviews
func (p Product) AverageRating() float64 {
	if len(p.Reviews) == 0 {
		return 0
	}
	var sum float64
	for _, r := range p.Reviews {
		sum += r.Rating
	}
	return sum / float64(len(p.Reviews))
}

// Stars is the number of filled stars for the average rating
func (p Product) Stars() int {
	return int(p.AverageRating())
}

// TopReviews returns at most n reviews in backend order
func (p Product) TopReviews(n int) []Review {
	if n < len(p.Reviews) {
		return p.Reviews[:n]
	}
	return p.Reviews
}

// ClampQuantity bounds a requested quantity to 1..StockAvailable
func (p Product) ClampQuantity(q int) int {
	if q > p.StockAvailable {
		q = p.StockAvailable
	}
	if q < 1 {
		q = 1
	}
	return q
}

// Input is the body of product create and update calls
type Input struct {
	Name           string          `form:"productname" json:"productname" validate:"required"`
	Price          decimal.Decimal `form:"-" json:"price"`
	Category       string          `form:"category" json:"category" validate:"required"`
	Description    string          `form:"description" json:"description"`
	Image          string          `form:"image" json:"image"`
	StockAvailable int             `form:"stock_available" json:"stock_available" validate:"gte=0"`
	IsActive       bool            `form:"isactive" json:"isactive"`
}

// InputFrom prefills an edit form from an existing product
func InputFrom(p *Product) Input {
	return Input{
		Name:           p.Name,
		Price:          p.Price,
		Category:       p.Category,
		Description:    p.Description,
		Image:          p.Image,
		StockAvailable: p.StockAvailable,
		IsActive:       p.Active(),
	}
}
