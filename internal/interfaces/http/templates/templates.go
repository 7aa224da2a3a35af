// Package templates embeds the storefront's server-rendered pages
package templates

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

//go:embed *.html static
var files embed.FS

// Funcs are the helpers every page may use
var Funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string {
		return "₹" + d.StringFixed(2)
	},
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("Jan 2, 2006")
	},
	"seq": func(n int) []int {
		s := make([]int, n)
		for i := range s {
			s[i] = i
		}
		return s
	},
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
	"plural": func(n int, singular, plural string) string {
		if n == 1 {
			return singular
		}
		return plural
	},
	"upper": strings.ToUpper,
}

// Parse loads every page with Funcs. Pages are named by file name.
func Parse() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(files, "*.html")
}

// Must is Parse for package initialization
func Must() *template.Template {
	return template.Must(Parse())
}

// Static serves the bundled images under /static
func Static() http.FileSystem {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
