package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/ecommerce-storefront/internal/domain/user"
	"github.com/your-org/ecommerce-storefront/internal/infrastructure/api"
	"github.com/your-org/ecommerce-storefront/internal/infrastructure/localstore"
	"github.com/your-org/ecommerce-storefront/internal/pkg/logger"
	"github.com/your-org/ecommerce-storefront/internal/pkg/notify"
)

func newBackend(t *testing.T, handler http.HandlerFunc) *api.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return api.NewClient(server.URL, logger.Discard())
}

func loginOK(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]any{
		"message": "Login successful",
		"user":    map[string]any{"_id": "u1", "username": "alice", "email": "a@b.com", "isAdmin": false},
	})
}

func newStore(caller api.Caller, records localstore.Store) (*Store, *notify.Queue) {
	queue := notify.NewQueue(10)
	return NewStore(caller, records, queue, logger.Discard()), queue
}

func TestLogin_SetsAndPersistsSession(t *testing.T) {
	var body map[string]string
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/login", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		loginOK(w, r)
	})
	records := localstore.NewMemoryStore()
	store, queue := newStore(client, records)
	store.Restore(context.Background())

	ok := store.Login(context.Background(), "a@b.com", "x")

	require.True(t, ok)
	assert.Equal(t, "a@b.com", body["email"])
	assert.Equal(t, "x", body["password"])

	current := store.Current()
	require.NotNil(t, current)
	assert.Equal(t, "u1", current.ID)
	assert.Equal(t, "alice", current.Username)
	assert.False(t, store.IsAdmin())
	assert.Equal(t, StateAuthenticated, store.State())

	notes := queue.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, "Login Successful", notes[0].Title)
	assert.Equal(t, "Welcome back, alice!", notes[0].Description)

	// a new process restores the same identity from the persisted record
	restarted, _ := newStore(client, records)
	restarted.Restore(context.Background())
	require.NotNil(t, restarted.Current())
	assert.Equal(t, "u1", restarted.Current().ID)
	assert.Equal(t, StateAuthenticated, restarted.State())
}

func TestLogin_FailureLeavesSessionUnchanged(t *testing.T) {
	fail := false
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"Invalid email or password"}`))
			return
		}
		loginOK(w, r)
	})
	store, queue := newStore(client, localstore.NewMemoryStore())
	store.Restore(context.Background())

	require.True(t, store.Login(context.Background(), "a@b.com", "x"))
	before := store.Current()
	queue.Drain()

	fail = true
	assert.False(t, store.Login(context.Background(), "a@b.com", "wrong"))
	assert.Equal(t, before, store.Current())

	notes := queue.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, "Login Failed", notes[0].Title)
	assert.Equal(t, "Invalid email or password", notes[0].Description)
	assert.True(t, notes[0].IsDestructive())
}

func TestLogin_ResponseWithoutUser(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"ok"}`))
	})
	store, queue := newStore(client, localstore.NewMemoryStore())
	store.Restore(context.Background())

	assert.False(t, store.Login(context.Background(), "a@b.com", "x"))
	assert.Nil(t, store.Current())
	assert.Zero(t, queue.Len())
}

func TestLogin_InvalidInputSkipsBackend(t *testing.T) {
	called := false
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	store, queue := newStore(client, localstore.NewMemoryStore())
	store.Restore(context.Background())

	assert.False(t, store.Login(context.Background(), "not-an-email", "x"))
	assert.False(t, called)
	notes := queue.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, "email must be a valid email address", notes[0].Description)
}

func TestRegister_NeverTouchesSession(t *testing.T) {
	status := http.StatusCreated
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/register", r.URL.Path)
		w.WriteHeader(status)
		if status >= 400 {
			w.Write([]byte(`{"error":"User already exists"}`))
			return
		}
		w.Write([]byte(`{"message":"User registered successfully","user":{"_id":"u2","username":"bob"}}`))
	})
	records := localstore.NewMemoryStore()
	store, queue := newStore(client, records)
	store.Restore(context.Background())

	req := RegisterRequest{Username: "bob", Email: "bob@b.com", Password: "secret"}

	assert.True(t, store.Register(context.Background(), req))
	assert.Nil(t, store.Current())
	assert.Equal(t, StateAnonymous, store.State())
	_, err := records.Load(context.Background())
	assert.ErrorIs(t, err, localstore.ErrNotFound)
	assert.Equal(t, "Registration Successful", queue.Drain()[0].Title)

	status = http.StatusBadRequest
	assert.False(t, store.Register(context.Background(), req))
	assert.Nil(t, store.Current())
	notes := queue.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, "User already exists", notes[0].Description)
}

func TestLogout_ClearsSessionAndRecord(t *testing.T) {
	client := newBackend(t, loginOK)
	records := localstore.NewMemoryStore()
	store, queue := newStore(client, records)
	store.Restore(context.Background())
	require.True(t, store.Login(context.Background(), "a@b.com", "x"))
	queue.Drain()

	store.Logout(context.Background())

	assert.Nil(t, store.Current())
	assert.False(t, store.IsAuthenticated())
	assert.False(t, store.IsAdmin())
	_, err := records.Load(context.Background())
	assert.ErrorIs(t, err, localstore.ErrNotFound)
	assert.Equal(t, "Logged Out", queue.Drain()[0].Title)
}

func TestRestore(t *testing.T) {
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	valid, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name       string
		record     string
		wantUser   string
		wantRecord bool
	}{
		{name: "nothing saved"},
		{name: "corrupt record", record: `{"_id":`},
		{name: "missing id", record: `{"username":"alice"}`},
		{name: "expired token", record: `{"_id":"u1","token":"` + expired + `"}`},
		{name: "valid record", record: `{"_id":"u1","username":"alice"}`, wantUser: "u1", wantRecord: true},
		{name: "valid token", record: `{"_id":"u1","token":"` + valid + `"}`, wantUser: "u1", wantRecord: true},
		{name: "opaque token", record: `{"_id":"u1","token":"opaque"}`, wantUser: "u1", wantRecord: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := localstore.NewMemoryStore()
			if tt.record != "" {
				require.NoError(t, records.Save(context.Background(), []byte(tt.record)))
			}
			store, queue := newStore(nil, records)
			assert.True(t, store.Loading())

			store.Restore(context.Background())

			assert.False(t, store.Loading())
			assert.Zero(t, queue.Len())
			if tt.wantUser == "" {
				assert.Nil(t, store.Current())
				assert.Equal(t, StateAnonymous, store.State())
			} else {
				require.NotNil(t, store.Current())
				assert.Equal(t, tt.wantUser, store.Current().ID)
			}
			_, err := records.Load(context.Background())
			if tt.wantRecord {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, localstore.ErrNotFound)
			}
		})
	}
}

func TestRestore_RunsOnce(t *testing.T) {
	records := localstore.NewMemoryStore()
	store, _ := newStore(nil, records)
	store.Restore(context.Background())

	require.NoError(t, records.Save(context.Background(), []byte(`{"_id":"u1"}`)))
	store.Restore(context.Background())

	assert.Nil(t, store.Current())
}

func TestObservers(t *testing.T) {
	client := newBackend(t, loginOK)
	store, _ := newStore(client, localstore.NewMemoryStore())

	type transition struct{ prev, next *user.User }
	var seen []transition
	store.Subscribe(func(ctx context.Context, prev, next *user.User) {
		seen = append(seen, transition{prev, next})
	})

	store.Restore(context.Background())
	require.True(t, store.Login(context.Background(), "a@b.com", "x"))
	store.Logout(context.Background())

	require.Len(t, seen, 2)
	assert.Nil(t, seen[0].prev)
	assert.Equal(t, "u1", seen[0].next.ID)
	assert.Equal(t, "u1", seen[1].prev.ID)
	assert.Nil(t, seen[1].next)
}

func TestCurrentReturnsCopy(t *testing.T) {
	store, _ := newStore(newBackend(t, loginOK), localstore.NewMemoryStore())
	store.Restore(context.Background())
	require.True(t, store.Login(context.Background(), "a@b.com", "x"))

	store.Current().IsAdmin = true

	assert.False(t, store.IsAdmin())
}

func TestTokenFromLoginResponse(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user":{"_id":"u1"},"token":"tok"}`))
	})
	store, _ := newStore(client, localstore.NewMemoryStore())
	store.Restore(context.Background())
	require.True(t, store.Login(context.Background(), "a@b.com", "x"))

	assert.Equal(t, "tok", store.Token())
	store.Logout(context.Background())
	assert.Empty(t, store.Token())
}

func TestLogin_OpaqueTokenSurvivesRestart(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user":{"_id":"u1","username":"alice"},"token":"opaque-session-token"}`))
	})
	records := localstore.NewMemoryStore()
	store, _ := newStore(client, records)
	store.Restore(context.Background())
	require.True(t, store.Login(context.Background(), "a@b.com", "x"))

	restarted, _ := newStore(client, records)
	restarted.Restore(context.Background())

	require.NotNil(t, restarted.Current())
	assert.Equal(t, "u1", restarted.Current().ID)
	assert.Equal(t, "opaque-session-token", restarted.Token())
	assert.Equal(t, StateAuthenticated, restarted.State())
}
