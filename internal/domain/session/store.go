// internal/domain/session/store.go
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/ecommerce-storefront/internal/domain/user"
	"github.com/your-org/ecommerce-storefront/internal/infrastructure/api"
	"github.com/your-org/ecommerce-storefront/internal/infrastructure/localstore"
	"github.com/your-org/ecommerce-storefront/internal/pkg/auth"
	"github.com/your-org/ecommerce-storefront/internal/pkg/notify"
	"github.com/your-org/ecommerce-storefront/internal/pkg/validate"
)

// State is where the store is in its lifecycle
type State int

const (
	// StateUnknown lasts until Restore has run
	StateUnknown State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Observer is told about every identity transition. prev and next are
// copies; either may be nil for the anonymous side of the transition.
type Observer func(ctx context.Context, prev, next *user.User)

// LoginRequest represents user login data
type LoginRequest struct {
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required"`
}

// RegisterRequest represents user registration data
type RegisterRequest struct {
	Username string `form:"username" json:"username" validate:"required"`
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required"`
	Contact  *int64 `form:"contact" json:"contact,omitempty"`
}

// AuthResponse is the backend's reply to /login and /register
type AuthResponse struct {
	Message string     `json:"message"`
	User    *user.User `json:"user"`
	Token   string     `json:"token"`
}

// Store owns the signed-in identity and its persisted copy
type Store struct {
	api      api.Caller
	records  localstore.Store
	notifier notify.Notifier
	logger   *logrus.Logger
	now      func() time.Time

	mu        sync.RWMutex
	current   *user.User
	state     State
	inflight  int
	observers []Observer

	restoreOnce sync.Once
}

// NewStore creates an empty store in StateUnknown
func NewStore(caller api.Caller, records localstore.Store, notifier notify.Notifier, logger *logrus.Logger) *Store {
	return &Store{
		api:      caller,
		records:  records,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Subscribe registers o for identity transitions
func (s *Store) Subscribe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Restore loads the persisted session once per process. Anything that cannot
// be used as a session is discarded silently and the store becomes anonymous.
func (s *Store) Restore(ctx context.Context) {
	s.restoreOnce.Do(func() {
		restored := s.load(ctx)

		s.mu.Lock()
		s.current = restored
		if restored != nil {
			s.state = StateAuthenticated
		} else {
			s.state = StateAnonymous
		}
		s.mu.Unlock()

		if restored != nil {
			s.logger.WithField("user_id", restored.ID).Info("Session restored")
			s.publish(ctx, nil, restored)
		}
	})
}

func (s *Store) load(ctx context.Context) *user.User {
	data, err := s.records.Load(ctx)
	if errors.Is(err, localstore.ErrNotFound) {
		return nil
	}
	if err != nil {
		s.logger.WithError(err).Warn("Failed to read persisted session")
		return nil
	}

	var u user.User
	if err := json.Unmarshal(data, &u); err != nil || u.ID == "" {
		s.discard(ctx, "unreadable")
		return nil
	}
	if u.Token != "" && auth.Expired(u.Token, s.now()) {
		s.discard(ctx, "token expired")
		return nil
	}
	return &u
}

func (s *Store) discard(ctx context.Context, reason string) {
	s.logger.WithField("reason", reason).Info("Discarding persisted session")
	if err := s.records.Remove(ctx); err != nil {
		s.logger.WithError(err).Warn("Failed to remove persisted session")
	}
}

// Login authenticates against the backend. On success the session is set,
// persisted and true is returned. On any failure the session is unchanged.
func (s *Store) Login(ctx context.Context, email, password string) bool {
	s.begin()
	defer s.end()

	req := LoginRequest{Email: email, Password: password}
	if err := validate.Check(req); err != nil {
		s.notifier.Notify(notify.Failure("Login Failed", err.Error()))
		return false
	}

	var resp AuthResponse
	if err := s.api.Call(ctx, http.MethodPost, "/login", req, &resp); err != nil {
		s.notifier.Notify(notify.Failure("Login Failed", api.Message(err, "Invalid credentials")))
		return false
	}
	if resp.User == nil {
		return false
	}

	next := resp.User.Clone()
	if resp.Token != "" {
		next.Token = resp.Token
	}

	s.mu.Lock()
	prev := s.current
	s.current = next
	s.state = StateAuthenticated
	s.mu.Unlock()

	s.persist(ctx, next)

	s.notifier.Notify(notify.Success("Login Successful", fmt.Sprintf("Welcome back, %s!", next.Username)))
	s.publish(ctx, prev, next)
	return true
}

func (s *Store) persist(ctx context.Context, u *user.User) {
	data, err := json.Marshal(u)
	if err == nil {
		err = s.records.Save(ctx, data)
	}
	if err != nil {
		// The session still holds for this process; it just won't survive a restart.
		s.logger.WithError(err).Warn("Failed to persist session")
	}
}

// Register creates an account. It never signs the new user in.
func (s *Store) Register(ctx context.Context, req RegisterRequest) bool {
	s.begin()
	defer s.end()

	if err := validate.Check(req); err != nil {
		s.notifier.Notify(notify.Failure("Registration Failed", err.Error()))
		return false
	}

	var resp AuthResponse
	if err := s.api.Call(ctx, http.MethodPost, "/register", req, &resp); err != nil {
		s.notifier.Notify(notify.Failure("Registration Failed", api.Message(err, "Registration failed")))
		return false
	}
	if resp.User == nil {
		return false
	}

	s.notifier.Notify(notify.Success("Registration Successful", "Please login with your credentials"))
	return true
}

// Logout clears the session and its persisted copy. It cannot fail.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	prev := s.current
	s.current = nil
	s.state = StateAnonymous
	s.mu.Unlock()

	if err := s.records.Remove(ctx); err != nil {
		s.logger.WithError(err).Warn("Failed to remove persisted session")
	}

	s.notifier.Notify(notify.Success("Logged Out", "You have been successfully logged out"))
	if prev != nil {
		s.publish(ctx, prev, nil)
	}
}

// Current returns a copy of the signed-in user, or nil
func (s *Store) Current() *user.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// UserID returns the signed-in user's id, or "" when anonymous
func (s *Store) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.ID
}

// IsAuthenticated reports whether a user is signed in
func (s *Store) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}

// IsAdmin is false whenever nobody is signed in
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil && s.current.IsAdmin
}

// Token returns the bearer token of the signed-in user, if any
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// State returns the lifecycle state
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Loading is true until Restore has run and while login or register is in flight
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == StateUnknown || s.inflight > 0
}

func (s *Store) begin() {
	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()
}

func (s *Store) end() {
	s.mu.Lock()
	s.inflight--
	s.mu.Unlock()
}

func (s *Store) publish(ctx context.Context, prev, next *user.User) {
	s.mu.RLock()
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.RUnlock()

	for _, o := range observers {
		o(ctx, prev.Clone(), next.Clone())
	}
}
