package controllers

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"shortly-web/internal/format"
	"shortly-web/internal/views"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the page templates with the display helpers available as functions
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"formatNumber": formatNumber,
		"formatDate": func(value string) string {
			return format.FormatDate(value, time.Now())
		},
		"dict": dict,
	}).ParseFS(templateFS, "templates/*.html")
}

func formatNumber(v interface{}) string {
	switch n := v.(type) {
	case int:
		return format.FormatNumber(int64(n))
	case int64:
		return format.FormatNumber(n)
	case *int64:
		if n == nil {
			return "0"
		}
		return format.FormatNumber(*n)
	default:
		return ""
	}
}

// dict builds a map from alternating keys and values, for passing several values to a sub-template
func dict(pairs ...interface{}) (map[string]interface{}, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict needs an even number of arguments")
	}
	m := make(map[string]interface{}, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, errors.New("dict keys must be strings")
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["Nav"]; !ok {
		data["Nav"] = views.Nav{}
	}
	c.HTML(status, name, data)
}

// protectedNav is shown on pages that hold a token but never hydrate the session
func protectedNav() views.Nav {
	return views.Nav{Authenticated: true}
}

// proceed acts on a non-ready outcome and reports whether the handler should go on rendering
func proceed(c *gin.Context, outcome views.Outcome) bool {
	switch outcome {
	case views.OutcomeRedirectLogin:
		c.Redirect(http.StatusSeeOther, "/login")
		return false
	case views.OutcomeDenied:
		render(c, http.StatusForbidden, "denied.html", gin.H{"Title": "Access denied", "Nav": views.Nav{Authenticated: true}})
		return false
	default:
		return true
	}
}

// fail handles the errors a view returns instead of a model: a gone client gets
// nothing, anything else an error page.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		c.Abort()
		return
	}
	render(c, http.StatusInternalServerError, "error.html", gin.H{
		"Title":   "Something went wrong",
		"Message": "Something went wrong. Please try again.",
	})
	c.Abort()
}
