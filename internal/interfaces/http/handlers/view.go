// internal/interfaces/http/handlers/view.go
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/your-org/ecommerce-storefront/internal/domain/cart"
	"github.com/your-org/ecommerce-storefront/internal/domain/session"
	"github.com/your-org/ecommerce-storefront/internal/pkg/notify"
)

// View renders pages with the shared header: the signed-in user, the cart
// badge and any notifications raised since the last page.
type View struct {
	appName  string
	session  *session.Store
	cart     *cart.Mirror
	notices  *notify.Queue
	notifier notify.Notifier
}

// NewView creates a view. notifier receives page-level failures; notices is
// the queue drained into each rendered page.
func NewView(appName string, sess *session.Store, c *cart.Mirror, notices *notify.Queue, notifier notify.Notifier) *View {
	return &View{
		appName:  appName,
		session:  sess,
		cart:     c,
		notices:  notices,
		notifier: notifier,
	}
}

// Render executes the named page with data plus the header fields
func (v *View) Render(c *gin.Context, status int, name, page, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	data["AppName"] = v.appName
	data["Page"] = page
	data["User"] = v.session.Current()
	data["IsAdmin"] = v.session.IsAdmin()
	data["CartCount"] = v.cart.Count()
	data["Notifications"] = v.notices.Drain()

	c.HTML(status, name, data)
}

// Error renders the error page
func (v *View) Error(c *gin.Context, status int, heading, message string) {
	v.Render(c, status, "error.html", "", heading, gin.H{
		"Heading": heading,
		"Message": message,
	})
}

// Confirm asks before a destructive POST to action
func (v *View) Confirm(c *gin.Context, question, action, cancel string) {
	v.Render(c, http.StatusOK, "confirm.html", "admin", "Confirm", gin.H{
		"Question": question,
		"Action":   action,
		"Cancel":   cancel,
	})
}

// Notify raises a notification shown on the next page
func (v *View) Notify(n notify.Notification) {
	v.notifier.Notify(n)
}

// redirect answers a form POST with a GET of path
func redirect(c *gin.Context, path string) {
	c.Redirect(http.StatusSeeOther, path)
}

// localPath returns next when it is a path on this site, fallback otherwise
func localPath(next, fallback string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	return next
}

// formInt reads an integer form field, returning def when absent or invalid
func formInt(c *gin.Context, key string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(c.PostForm(key)))
	if err != nil {
		return def
	}
	return n
}
