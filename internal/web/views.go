package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"

	"github.com/dmitrymomot/sessionlab/core/handler"
	"github.com/dmitrymomot/sessionlab/core/response"
	"github.com/dmitrymomot/sessionlab/core/validator"
	"github.com/dmitrymomot/sessionlab/internal/item"
	"github.com/dmitrymomot/sessionlab/internal/member"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page names.
const (
	viewHome      = "home"
	viewLoginHome = "login_home"
	viewMemberAdd = "member_add"
	viewLogin     = "login"
	viewItems     = "items"
	viewItem      = "item"
	viewItemForm  = "item_form"
	viewError     = "error"
)

// page is the data every template receives. Form is never nil on form pages.
type page struct {
	Title       string
	Member      *member.Member
	Form        any
	Errors      validator.ValidationErrors
	RedirectURL string
	Items       []item.Item
	Item        item.Item
	Flash       string
	Action      string
	Cancel      string
	Status      int
	Message     string
}

// views holds one template set per page, each parsed together with the layout.
type views map[string]*template.Template

func loadViews() (views, error) {
	v := views{}
	for _, name := range []string{
		viewHome, viewLoginHome, viewMemberAdd, viewLogin,
		viewItems, viewItem, viewItemForm, viewError,
	} {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s view: %w", name, err)
		}
		v[name] = tmpl
	}
	return v, nil
}

func (v views) render(name string, data page) handler.Response {
	return v.renderWithStatus(name, data, 0)
}

func (v views) renderWithStatus(name string, data page, status int) handler.Response {
	return response.TemplateNameWithStatus(v[name], "layout", data, status)
}

func staticFiles() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
