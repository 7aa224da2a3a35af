// internal/interfaces/http/routes/routes.go
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/ecommerce-storefront/internal/interfaces/http/handlers"
	"github.com/your-org/ecommerce-storefront/internal/interfaces/http/middleware"
)

// Handlers groups every page handler the router mounts
type Handlers struct {
	View     *handlers.View
	Auth     *handlers.AuthHandler
	Product  *handlers.ProductHandler
	Cart     *handlers.CartHandler
	Checkout *handlers.CheckoutHandler
	Order    *handlers.OrderHandler
	Admin    *handlers.AdminHandler
	Health   *handlers.HealthHandler
}

// SetupRoutes mounts all pages on r
func SetupRoutes(r *gin.Engine, h Handlers, id middleware.Identity) {
	r.GET("/health", h.Health.Health)

	pages := r.Group("")
	pages.Use(middleware.AwaitRestore(id))

	pages.GET("/", func(c *gin.Context) {
		if id.IsAuthenticated() {
			c.Redirect(http.StatusSeeOther, middleware.LandingPath)
			return
		}
		c.Redirect(http.StatusSeeOther, middleware.LoginPath)
	})

	SetupAuthRoutes(pages, h, id)
	SetupShopRoutes(pages, h, id)
	SetupAdminRoutes(pages, h, id)

	r.NoRoute(func(c *gin.Context) {
		h.View.Error(c, http.StatusNotFound, "Page not found", "The page you are looking for does not exist.")
	})
}

// SetupAuthRoutes sets up login, registration and logout
func SetupAuthRoutes(rg *gin.RouterGroup, h Handlers, id middleware.Identity) {
	guest := rg.Group("")
	guest.Use(middleware.RedirectIfAuthenticated(id))
	{
		guest.GET("/login", h.Auth.LoginPage)
		guest.POST("/login", h.Auth.Login)
		guest.GET("/register", h.Auth.RegisterPage)
		guest.POST("/register", h.Auth.Register)
	}

	rg.POST("/logout", h.Auth.Logout)
}

// SetupShopRoutes sets up the customer pages
func SetupShopRoutes(rg *gin.RouterGroup, h Handlers, id middleware.Identity) {
	shop := rg.Group("")
	shop.Use(middleware.RequireSession(id))
	{
		shop.GET("/products", h.Product.GetProducts)
		shop.GET("/products/:id", h.Product.GetProduct)
		shop.POST("/products/:id/cart", h.Product.AddToCart)

		shop.GET("/cart", h.Cart.GetCart)
		shop.POST("/cart/:id", h.Cart.UpdateCartItem)
		shop.POST("/cart/:id/remove", h.Cart.RemoveCartItem)

		shop.GET("/checkout", h.Checkout.GetCheckout)
		shop.POST("/checkout", h.Checkout.PlaceOrder)

		shop.GET("/orders", h.Order.GetOrders)
		shop.GET("/orders/:id/invoice", h.Order.DownloadInvoice)
	}
}

// SetupAdminRoutes sets up the admin dashboard
func SetupAdminRoutes(rg *gin.RouterGroup, h Handlers, id middleware.Identity) {
	adm := rg.Group("/admin")
	adm.Use(middleware.RequireAdmin(id, h.View))
	{
		adm.GET("", h.Admin.GetDashboard)

		adm.GET("/products/new", h.Admin.NewProduct)
		adm.POST("/products", h.Admin.CreateProduct)
		adm.GET("/products/:id/edit", h.Admin.EditProduct)
		adm.POST("/products/:id", h.Admin.UpdateProduct)
		adm.GET("/products/:id/delete", h.Admin.ConfirmDeleteProduct)
		adm.POST("/products/:id/delete", h.Admin.DeleteProduct)

		adm.POST("/users/:id/block", h.Admin.ToggleBlock)
		adm.GET("/users/:id/delete", h.Admin.ConfirmDeleteUser)
		adm.POST("/users/:id/delete", h.Admin.DeleteUser)

		adm.POST("/orders/:id/status", h.Admin.SetOrderStatus)
	}
}
