package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/Masterminds/sprig/v3"

	"github.com/aussiebroadwan/realmadmin/internal/console/alerts"
	"github.com/aussiebroadwan/realmadmin/internal/console/confirm"
	"github.com/aussiebroadwan/realmadmin/internal/console/i18n"
	"github.com/aussiebroadwan/realmadmin/internal/console/navigation"
	"github.com/aussiebroadwan/realmadmin/internal/console/roles"
	"github.com/aussiebroadwan/realmadmin/internal/console/table"
	"github.com/aussiebroadwan/realmadmin/pkg/adminsdk"
	"github.com/aussiebroadwan/realmadmin/pkg/slogx"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	pageRoles   = "roles.html"
	pageDetail  = "detail.html"
	pageAddRole = "add_role.html"
)

type templates map[string]*template.Template

func parseTemplates() (templates, error) {
	out := make(templates)
	for _, page := range []string{pageRoles, pageDetail, pageAddRole} {
		t, err := template.New(page).
			Funcs(sprig.FuncMap()).
			ParseFS(templatesFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		out[page] = t
	}
	return out, nil
}

// viewData is passed to every template.
type viewData struct {
	t    i18n.Translator
	base string

	Lang      string
	Languages []string
	Realm     string
	Alerts    []alerts.Alert

	Header roles.Header
	Dialog confirm.Dialog
	View   *table.View[adminsdk.Role]
	Search string

	PrevURL string
	NextURL string

	Role     *adminsdk.Role
	NotFound bool
}

// T translates key for the request's language.
func (d viewData) T(key string, params ...i18n.Param) string {
	return d.t.T(key, params...)
}

// URL prefixes an absolute console route with the base path.
func (d viewData) URL(route string) string {
	return navigation.Join(d.base, route)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data viewData) {
	tmpl, ok := h.templates[page]
	if !ok {
		http.Error(w, "unknown page", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		slogx.FromContext(r.Context()).Error("failed to render page", "page", page, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
