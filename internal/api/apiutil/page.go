package apiutil

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/codr1/CourtPlay/internal/api/authz"
	"github.com/codr1/CourtPlay/internal/api/htmx"
	"github.com/codr1/CourtPlay/internal/templates/layouts"
)

var appName = "Court & Play"

// SetAppName sets the name shown in page titles and the navigation bar.
func SetAppName(name string) {
	if name != "" {
		appName = name
	}
}

// AppName is the name set by SetAppName.
func AppName() string {
	return appName
}

func PageFor(r *http.Request, title string) layouts.Page {
	page := layouts.Page{AppName: appName, Title: title}
	if user := authz.UserFromContext(r.Context()); user != nil {
		page.User = &layouts.NavUser{Name: user.Name, Role: user.Role}
	}
	return page
}

// RenderPage renders content inside the base layout, or alone for HTMX
// requests that swap a fragment.
func RenderPage(w http.ResponseWriter, r *http.Request, status int, title string, content templ.Component, logMsg string) bool {
	component := content
	if !htmx.IsRequest(r) {
		component = layouts.Base(content, PageFor(r, title))
	}
	return RenderHTMLComponent(r.Context(), w, status, component, nil, logMsg)
}
