package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/ecommerce-storefront/internal/infrastructure/api"
	"github.com/your-org/ecommerce-storefront/internal/pkg/logger"
)

func TestBlockPatch(t *testing.T) {
	data, err := json.Marshal(BlockPatch(false))
	require.NoError(t, err)
	assert.JSONEq(t, `{"isblocked":true}`, string(data))

	data, err = json.Marshal(BlockPatch(true))
	require.NoError(t, err)
	assert.JSONEq(t, `{"isblocked":false}`, string(data))
}

func TestClone(t *testing.T) {
	contact := int64(555)
	u := &User{ID: "u1", Contact: &contact}
	c := u.Clone()
	*c.Contact = 1
	assert.Equal(t, int64(555), *u.Contact)

	var nilUser *User
	assert.Nil(t, nilUser.Clone())
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "a@b.com", (&User{Email: "a@b.com"}).GetDisplayName())
	assert.Equal(t, "alice", (&User{Username: "alice", Email: "a@b.com"}).GetDisplayName())
	assert.Equal(t, "Admin", (&User{IsAdmin: true}).Role())
	assert.Equal(t, "Blocked", (&User{IsBlocked: true}).StatusLabel())
	assert.Equal(t, "Active", (&User{}).StatusLabel())
}

func TestAdminService(t *testing.T) {
	var patch map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("GET /getusers", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"users":[{"_id":"u1","username":"alice","isAdmin":true,"isblocked":false}]}`))
	})
	mux.HandleFunc("GET /getuserbyemail/{email}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "a@b.com", r.PathValue("email"))
		w.Write([]byte(`{"user":{"_id":"u1","email":"a@b.com"}}`))
	})
	mux.HandleFunc("PUT /updateuser/{id}", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&patch)
	})
	mux.HandleFunc("DELETE /deleteuser/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"User not found"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	svc := NewAdminService(api.NewClient(server.URL, logger.Discard()))
	ctx := context.Background()

	users, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.True(t, users[0].IsAdmin)

	found, err := svc.GetByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", found.ID)

	require.NoError(t, svc.Update(ctx, "u1", BlockPatch(users[0].IsBlocked)))
	assert.Equal(t, map[string]any{"isblocked": true}, patch)

	assert.EqualError(t, svc.Delete(ctx, "u9"), "User not found")
}
