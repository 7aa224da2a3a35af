package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/ecommerce-storefront/internal/domain/order"
	"github.com/your-org/ecommerce-storefront/internal/domain/product"
	"github.com/your-org/ecommerce-storefront/internal/domain/user"
	"github.com/your-org/ecommerce-storefront/internal/infrastructure/api"
	"github.com/your-org/ecommerce-storefront/internal/pkg/logger"
	"github.com/your-org/ecommerce-storefront/internal/pkg/notify"
)

type row struct {
	ID    string
	Value int
}

// memorySource is a backend collection kept in memory
type memorySource struct {
	rows      map[string]int
	order     []string
	lists     int
	failList  bool
	failWrite error
}

func newMemorySource() *memorySource {
	return &memorySource{rows: map[string]int{"a": 1, "b": 2}, order: []string{"a", "b"}}
}

func (m *memorySource) source() Source[row, int] {
	return Source[row, int]{
		Name: "rows",
		List: func(ctx context.Context) ([]row, error) {
			m.lists++
			if m.failList {
				return nil, errors.New("boom")
			}
			var rows []row
			for _, id := range m.order {
				if v, ok := m.rows[id]; ok {
					rows = append(rows, row{id, v})
				}
			}
			return rows, nil
		},
		Update: func(ctx context.Context, id string, patch int) error {
			if m.failWrite != nil {
				return m.failWrite
			}
			m.rows[id] = patch
			return nil
		},
		Delete: func(ctx context.Context, id string) error {
			delete(m.rows, id)
			return nil
		},
	}
}

var msgs = Messages{Success: "done", Failure: "failed"}

func TestTable_LoadMutateDelete(t *testing.T) {
	src := newMemorySource()
	notes := notify.NewQueue(10)
	table := NewTable(src.source(), notes, logger.Discard())
	ctx := context.Background()

	assert.False(t, table.Loaded())
	require.NoError(t, table.Load(ctx))
	assert.True(t, table.Loaded())
	assert.Equal(t, []row{{"a", 1}, {"b", 2}}, table.Rows())

	require.NoError(t, table.Mutate(ctx, "a", 7, msgs))
	assert.Equal(t, []row{{"a", 7}, {"b", 2}}, table.Rows())
	assert.Equal(t, 2, src.lists)

	require.NoError(t, table.Delete(ctx, "b", true, msgs))
	assert.Equal(t, []row{{"a", 7}}, table.Rows())

	for _, n := range notes.Drain() {
		assert.Equal(t, "Success", n.Title)
		assert.Equal(t, "done", n.Description)
	}
}

func TestTable_DeleteRequiresConfirmation(t *testing.T) {
	src := newMemorySource()
	table := NewTable(src.source(), notify.Discard{}, logger.Discard())
	require.NoError(t, table.Load(context.Background()))

	err := table.Delete(context.Background(), "a", false, msgs)

	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.Contains(t, src.rows, "a")
	assert.Equal(t, 1, src.lists)
}

func TestTable_FailedMutationSkipsReload(t *testing.T) {
	src := newMemorySource()
	src.failWrite = &api.APIError{StatusCode: 400, Message: "Bad patch"}
	notes := notify.NewQueue(10)
	table := NewTable(src.source(), notes, logger.Discard())
	require.NoError(t, table.Load(context.Background()))

	err := table.Mutate(context.Background(), "a", 9, msgs)

	assert.Error(t, err)
	assert.Equal(t, 1, src.lists)
	assert.Equal(t, []row{{"a", 1}, {"b", 2}}, table.Rows())
	n := notes.Drain()
	require.Len(t, n, 1)
	assert.Equal(t, "Error", n[0].Title)
	assert.Equal(t, "Bad patch", n[0].Description)
}

func TestTable_LoadFailureKeepsRows(t *testing.T) {
	src := newMemorySource()
	notes := notify.NewQueue(10)
	table := NewTable(src.source(), notes, logger.Discard())
	require.NoError(t, table.Load(context.Background()))

	src.failList = true
	assert.Error(t, table.Load(context.Background()))
	assert.Len(t, table.Rows(), 2)
	assert.Equal(t, "Failed to fetch rows", notes.Drain()[0].Description)
}

func TestTable_Unsupported(t *testing.T) {
	table := NewTable(Source[row, int]{Name: "rows"}, notify.Discard{}, logger.Discard())
	assert.ErrorIs(t, table.Mutate(context.Background(), "a", 1, msgs), ErrUnsupported)
	assert.ErrorIs(t, table.Delete(context.Background(), "a", true, msgs), ErrUnsupported)
}

func TestTable_Filter(t *testing.T) {
	table := NewTable(newMemorySource().source(), notify.Discard{}, logger.Discard())
	require.NoError(t, table.Load(context.Background()))
	assert.Equal(t, []row{{"b", 2}}, table.Filter(func(r row) bool { return r.Value > 1 }))
}

// fakeBackend serves the admin endpoints from memory
type fakeBackend struct {
	mu       sync.Mutex
	statuses map[string]string
	blocked  map[string]bool
	products []map[string]any
	requests int
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.requests++
		b.mu.Unlock()
		http.NotFound(w, r)
	})
	mux.HandleFunc("GET /getorders", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.requests++
		var orders []map[string]any
		for id, s := range b.statuses {
			orders = append(orders, map[string]any{"_id": id, "status": s, "totalamount": 20})
		}
		json.NewEncoder(w).Encode(map[string]any{"orders": orders})
	})
	mux.HandleFunc("PUT /updateorder/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.requests++
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		b.statuses[r.PathValue("id")] = body["status"]
	})
	mux.HandleFunc("GET /getusers", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.requests++
		var users []map[string]any
		for id, blocked := range b.blocked {
			users = append(users, map[string]any{"_id": id, "isblocked": blocked})
		}
		json.NewEncoder(w).Encode(map[string]any{"users": users})
	})
	mux.HandleFunc("PUT /updateuser/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.requests++
		var body map[string]bool
		json.NewDecoder(r.Body).Decode(&body)
		b.blocked[r.PathValue("id")] = body["isblocked"]
	})
	mux.HandleFunc("GET /product", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.requests++
		json.NewEncoder(w).Encode(map[string]any{"products": b.products})
	})
	mux.HandleFunc("POST /createproduct/{user}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.requests++
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		body["_id"] = "new"
		b.products = append(b.products, body)
	})
	return mux
}

func (b *fakeBackend) requestCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requests
}

func newDashboard(t *testing.T, backend *fakeBackend) (*Dashboard, *notify.Queue) {
	t.Helper()
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)
	client := api.NewClient(server.URL, logger.Discard())
	notes := notify.NewQueue(20)
	return NewDashboard(
		product.NewService(client),
		user.NewAdminService(client),
		order.NewService(client),
		notes, logger.Discard(),
	), notes
}

func TestDashboard_OrderStatus(t *testing.T) {
	backend := &fakeBackend{statuses: map[string]string{"o1": "pending"}, blocked: map[string]bool{}}
	dash, notes := newDashboard(t, backend)
	ctx := context.Background()
	require.NoError(t, dash.Orders.Load(ctx))

	require.NoError(t, dash.SetOrderStatus(ctx, "o1", order.OrderStatusCompleted))

	rows := dash.Orders.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, order.OrderStatusCompleted, rows[0].Status)
	assert.Equal(t, "Order status updated successfully", notes.Drain()[0].Description)

	before := backend.requestCount()
	err := dash.SetOrderStatus(ctx, "o1", "cancelled")
	assert.ErrorIs(t, err, order.ErrInvalidStatus)
	assert.Equal(t, before, backend.requestCount())
	assert.True(t, notes.Drain()[0].IsDestructive())
}

func TestDashboard_ToggleBlock(t *testing.T) {
	backend := &fakeBackend{statuses: map[string]string{}, blocked: map[string]bool{"u1": false}}
	dash, notes := newDashboard(t, backend)
	ctx := context.Background()
	require.NoError(t, dash.Users.Load(ctx))

	require.NoError(t, dash.ToggleBlock(ctx, "u1", false))
	assert.True(t, dash.Users.Rows()[0].IsBlocked)
	assert.Equal(t, "User blocked successfully", notes.Drain()[0].Description)

	require.NoError(t, dash.ToggleBlock(ctx, "u1", true))
	assert.False(t, dash.Users.Rows()[0].IsBlocked)
	assert.Equal(t, "User unblocked successfully", notes.Drain()[0].Description)
}

func TestDashboard_CreateProductAndStats(t *testing.T) {
	inactive := map[string]any{"_id": "p0", "productname": "Old", "isactive": false, "stock_available": 0}
	backend := &fakeBackend{statuses: map[string]string{"o1": "completed"}, blocked: map[string]bool{}, products: []map[string]any{inactive}}
	dash, _ := newDashboard(t, backend)
	ctx := context.Background()

	require.NoError(t, dash.CreateProduct(ctx, "admin1", product.Input{Name: "Lamp", Category: "Home", StockAvailable: 4}))
	require.NoError(t, dash.Load(ctx))

	require.Len(t, dash.Products.Rows(), 2)
	active := dash.ActiveProducts()
	require.Len(t, active, 1)
	assert.Equal(t, "new", active[0].ID)

	stats := dash.Stats()
	assert.Equal(t, 2, stats.TotalProducts)
	assert.Equal(t, 1, stats.ActiveProducts)
	assert.Equal(t, 1, stats.CompletedOrders)
	assert.Equal(t, "20", stats.TotalRevenue.String())
}
