// internal/app/app.go
package app

import (
	"github.com/sirupsen/logrus"
	"github.com/your-org/ecommerce-storefront/internal/config"
	"github.com/your-org/ecommerce-storefront/internal/domain/admin"
	"github.com/your-org/ecommerce-storefront/internal/domain/cart"
	"github.com/your-org/ecommerce-storefront/internal/domain/checkout"
	"github.com/your-org/ecommerce-storefront/internal/domain/order"
	"github.com/your-org/ecommerce-storefront/internal/domain/payment"
	"github.com/your-org/ecommerce-storefront/internal/domain/product"
	"github.com/your-org/ecommerce-storefront/internal/domain/session"
	"github.com/your-org/ecommerce-storefront/internal/domain/user"
	"github.com/your-org/ecommerce-storefront/internal/infrastructure/api"
	"github.com/your-org/ecommerce-storefront/internal/infrastructure/localstore"
	httpserver "github.com/your-org/ecommerce-storefront/internal/interfaces/http"
	"github.com/your-org/ecommerce-storefront/internal/interfaces/http/handlers"
	"github.com/your-org/ecommerce-storefront/internal/interfaces/http/routes"
	"github.com/your-org/ecommerce-storefront/internal/pkg/notify"
	"github.com/your-org/ecommerce-storefront/internal/pkg/pdf"
)

// NoticeLimit caps the notifications waiting for the next page
const NoticeLimit = 20

// App is the wired storefront client
type App struct {
	Config    *config.Config
	Logger    *logrus.Logger
	Client    *api.Client
	Notices   *notify.Queue
	Session   *session.Store
	Cart      *cart.Mirror
	Dashboard *admin.Dashboard
	Checkout  *checkout.Service
	Server    *httpserver.Server
}

// New wires every component. records holds the persisted session; health,
// when non-nil, is pinged by /health.
func New(cfg *config.Config, logger *logrus.Logger, records localstore.Store, health handlers.Pinger) *App {
	notices := notify.NewQueue(NoticeLimit)
	notifier := notify.Fanout{notices, notify.LogNotifier{Logger: logger}}

	client := api.New(cfg, logger)
	sess := session.NewStore(client, records, notifier, logger)
	client.SetTokenSource(sess.Token)

	mirror := cart.NewMirror(client, sess, notifier, logger)

	products := product.NewService(client)
	orders := order.NewService(client)
	users := user.NewAdminService(client)

	dashboard := admin.NewDashboard(products, users, orders, notifier, logger)
	checkoutSvc := checkout.NewService(orders, mirror, sess, payment.NewStubGateway(logger), notifier, logger)
	invoices := pdf.NewService(cfg)

	view := handlers.NewView(cfg.App.Name, sess, mirror, notices, notifier)
	h := routes.Handlers{
		View:     view,
		Auth:     handlers.NewAuthHandler(view, sess),
		Product:  handlers.NewProductHandler(view, products, mirror),
		Cart:     handlers.NewCartHandler(view, mirror),
		Checkout: handlers.NewCheckoutHandler(view, checkoutSvc),
		Order:    handlers.NewOrderHandler(view, orders, sess, invoices, logger),
		Admin:    handlers.NewAdminHandler(view, dashboard, products, sess),
		Health:   handlers.NewHealthHandler(cfg, sess, health),
	}

	return &App{
		Config:    cfg,
		Logger:    logger,
		Client:    client,
		Notices:   notices,
		Session:   sess,
		Cart:      mirror,
		Dashboard: dashboard,
		Checkout:  checkoutSvc,
		Server:    httpserver.NewServer(cfg, logger, h, sess),
	}
}
