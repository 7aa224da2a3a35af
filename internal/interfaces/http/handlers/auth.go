// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/your-org/ecommerce-storefront/internal/domain/session"
	"github.com/your-org/ecommerce-storefront/internal/pkg/notify"
)

// AuthHandler serves login, registration and logout
type AuthHandler struct {
	view    *View
	session *session.Store
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(view *View, sess *session.Store) *AuthHandler {
	return &AuthHandler{view: view, session: sess}
}

// LoginPage handles GET /login
func (h *AuthHandler) LoginPage(c *gin.Context) {
	h.view.Render(c, http.StatusOK, "login.html", "login", "Login", gin.H{"Email": ""})
}

// Login handles POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	if h.session.Login(c.Request.Context(), email, c.PostForm("password")) {
		redirect(c, "/products")
		return
	}
	h.view.Render(c, http.StatusUnauthorized, "login.html", "login", "Login", gin.H{"Email": email})
}

// RegisterPage handles GET /register
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	h.view.Render(c, http.StatusOK, "register.html", "register", "Register", gin.H{"Form": session.RegisterRequest{}})
}

// Register handles POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	req := session.RegisterRequest{
		Username: strings.TrimSpace(c.PostForm("username")),
		Email:    strings.TrimSpace(c.PostForm("email")),
		Password: c.PostForm("password"),
	}

	if raw := strings.TrimSpace(c.PostForm("contact")); raw != "" {
		contact, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.view.Notify(notify.Failure("Registration Failed", "contact must be a number"))
			h.registerFailed(c, req)
			return
		}
		req.Contact = &contact
	}

	if !h.session.Register(c.Request.Context(), req) {
		h.registerFailed(c, req)
		return
	}
	redirect(c, "/login")
}

func (h *AuthHandler) registerFailed(c *gin.Context, req session.RegisterRequest) {
	req.Password = ""
	h.view.Render(c, http.StatusUnprocessableEntity, "register.html", "register", "Register", gin.H{"Form": req})
}

// Logout handles POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.session.Logout(c.Request.Context())
	redirect(c, "/login")
}
