package product

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/ecommerce-storefront/internal/infrastructure/api"
	"github.com/your-org/ecommerce-storefront/internal/pkg/logger"
)

func boolPtr(b bool) *bool { return &b }

func TestActive(t *testing.T) {
	tests := []struct {
		name     string
		isActive *bool
		want     bool
	}{
		{"absent", nil, true},
		{"true", boolPtr(true), true},
		{"false", boolPtr(false), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{IsActive: tt.isActive}
			assert.Equal(t, tt.want, p.Active())
		})
	}
}

func TestActive_FromJSON(t *testing.T) {
	var products []Product
	require.NoError(t, json.Unmarshal([]byte(`[{"_id":"a"},{"_id":"b","isactive":false},{"_id":"c","isactive":true}]`), &products))

	assert.True(t, products[0].Active())
	assert.False(t, products[1].Active())
	assert.True(t, products[2].Active())
}

func TestRatingAndStock(t *testing.T) {
	p := Product{
		StockAvailable: 4,
		Reviews:        []Review{{Rating: 5}, {Rating: 4}, {Rating: 2}, {Rating: 1}},
	}
	assert.Equal(t, 3.0, p.AverageRating())
	assert.Equal(t, 3, p.Stars())
	assert.Len(t, p.TopReviews(3), 3)
	assert.True(t, p.IsLowStock())

	assert.Equal(t, 1, p.ClampQuantity(0))
	assert.Equal(t, 4, p.ClampQuantity(9))
	assert.Equal(t, 2, p.ClampQuantity(2))

	empty := Product{}
	assert.Zero(t, empty.AverageRating())
	assert.Empty(t, empty.TopReviews(3))
	assert.False(t, empty.InStock())
	assert.False(t, empty.IsLowStock())
}

func TestService(t *testing.T) {
	var created map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("GET /product", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products":[{"_id":"p1","productname":"Lamp","price":12.5},{"_id":"p2","isactive":false}]}`))
	})
	mux.HandleFunc("GET /getproductbyid/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"product":{"_id":"` + r.PathValue("id") + `"}}`))
	})
	mux.HandleFunc("POST /createproduct/{user}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "admin1", r.PathValue("user"))
		json.NewDecoder(r.Body).Decode(&created)
		w.WriteHeader(http.StatusCreated)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	svc := NewService(api.NewClient(server.URL, logger.Discard()))
	ctx := context.Background()

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "12.5", all[0].Price.String())

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "p1", active[0].ID)

	p, err := svc.Get(ctx, "p9")
	require.NoError(t, err)
	assert.Equal(t, "p9", p.ID)

	in := Input{Name: "Chair", Category: "Home", Price: decimal.RequireFromString("40"), StockAvailable: 3}
	require.NoError(t, svc.Create(ctx, "admin1", in))
	assert.Equal(t, true, created["isactive"])
	assert.Equal(t, "Chair", created["productname"])
	assert.Equal(t, 40.0, created["price"])

	assert.EqualError(t, svc.Create(ctx, "admin1", Input{Category: "Home"}), "productname is a required field")
	in.Price = decimal.NewFromInt(-1)
	assert.ErrorIs(t, svc.Update(ctx, "p1", in), ErrInvalidPrice)
}

func TestInputFrom(t *testing.T) {
	in := InputFrom(&Product{Name: "Lamp", StockAvailable: 2})
	assert.True(t, in.IsActive)
	assert.Equal(t, "Lamp", in.Name)
}

func TestInput_PriceEncodesAsNumber(t *testing.T) {
	body, err := json.Marshal(Input{Name: "Lamp", Price: decimal.RequireFromString("12.5")})
	require.NoError(t, err)
	assert.Contains(t, string(body), `"price":12.5`)
}
