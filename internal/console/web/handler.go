// Package web serves the realm roles page as server-rendered HTML.
//
// Each browser gets a session (cookie + session.Store) holding the page's
// selection, dialog state and pending alerts. Requests of one session are
// serialised, so a double submitted confirmation deletes once.
package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/realmadmin/internal/console/alerts"
	"github.com/aussiebroadwan/realmadmin/internal/console/i18n"
	"github.com/aussiebroadwan/realmadmin/internal/console/navigation"
	"github.com/aussiebroadwan/realmadmin/internal/console/roles"
	"github.com/aussiebroadwan/realmadmin/internal/console/session"
	"github.com/aussiebroadwan/realmadmin/pkg/adminsdk"
	"github.com/aussiebroadwan/realmadmin/pkg/httpx"
	"github.com/aussiebroadwan/realmadmin/pkg/slogx"
)

// RolesAPI is the admin API surface the console needs.
type RolesAPI interface {
	roles.RolesAPI
	GetByID(ctx context.Context, id string) (*adminsdk.Role, error)
}

var _ RolesAPI = (*adminsdk.RolesClient)(nil)

type Options struct {
	Realm        string
	BasePath     string
	PageSize     int
	DefaultLang  string
	SecureCookie bool
	BuildVersion string
}

// Handler serves the console.
type Handler struct {
	api       RolesAPI
	sessions  *session.Store
	bundle    *i18n.Bundle
	templates templates
	opts      Options
	logger    *slog.Logger
	startTime time.Time

	mux     *http.ServeMux
	handler http.Handler
}

func NewHandler(api RolesAPI, sessions *session.Store, bundle *i18n.Bundle, opts Options, logger *slog.Logger) (*Handler, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 10
	}

	h := &Handler{
		api:       api,
		sessions:  sessions,
		bundle:    bundle,
		templates: tmpl,
		opts:      opts,
		logger:    logger,
		startTime: time.Now(),
		mux:       http.NewServeMux(),
	}
	h.routes()

	var inner http.Handler = h.mux
	if base := h.basePath(); base != "" {
		inner = http.StripPrefix(base, h.mux)
	}
	h.handler = httpx.Chain(inner, slogx.HTTPMiddleware(logger))

	return h, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.handler.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	post := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, httpx.RateLimitByIP(httpx.LenientLimit))
	}

	h.mux.HandleFunc("GET /{$}", h.handleIndex)
	h.mux.HandleFunc("GET /roles", h.handleList)
	h.mux.HandleFunc("GET /roles/add-role", h.handleAddRole)
	h.mux.HandleFunc("GET /roles/{id}", h.handleDetail)
	h.mux.Handle("POST /roles/{id}/delete", post(h.handleDeleteRow))
	h.mux.Handle("POST /roles/delete/confirm", post(h.handleConfirm))
	h.mux.Handle("POST /roles/delete/cancel", post(h.handleCancel))
	h.mux.Handle("POST /roles/create", post(h.handleCreate))

	h.mux.HandleFunc("GET /livez", h.handleLivez)
}

func (h *Handler) basePath() string {
	base := h.opts.BasePath
	for len(base) > 0 && base[len(base)-1] == '/' {
		base = base[:len(base)-1]
	}
	return base
}

// request is the per-request view of a session.
type request struct {
	id      string
	state   session.State
	alerts  *alerts.Store
	history *navigation.Recorder
	t       *i18n.Localizer
	page    *roles.Page
}

// withSession loads the caller's session, builds its page, runs fn and
// saves the page state back. Requests of one session never overlap.
func (h *Handler) withSession(w http.ResponseWriter, r *http.Request, fn func(*request)) {
	log := slogx.FromContext(r.Context())

	id := session.IDFromRequest(r)
	if id == "" {
		var err error
		if id, err = session.NewID(); err != nil {
			log.Error("failed to create session id", "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	unlock := h.sessions.Lock(id)
	defer unlock()

	st, ok, err := h.sessions.Load(id)
	if err != nil {
		log.Warn("discarding unreadable session", "error", err)
	}
	if !ok {
		st = session.State{}
	}

	if lang := r.URL.Query().Get("lang"); lang != "" {
		st.Lang = h.bundle.Match(lang)
	}
	lang := st.Lang
	if lang == "" {
		lang = h.bundle.Match(r.Header.Get("Accept-Language"), h.opts.DefaultLang)
	}

	req := &request{
		id:      id,
		state:   st,
		alerts:  alerts.NewStore(st.Alerts...),
		history: &navigation.Recorder{},
		t:       h.bundle.Translator(lang),
	}
	req.page = roles.New(roles.Deps{
		API:     h.api,
		Alerts:  req.alerts,
		History: req.history,
		T:       req.t,
	})
	req.page.Restore(st.Roles)

	// The cookie must be set before fn writes the response.
	session.SetCookie(w, id, h.cookiePath(), h.sessions.TTL(), h.opts.SecureCookie)

	fn(req)

	req.state.Roles = req.page.State()
	req.state.Alerts = req.alerts.Pending()
	if err := h.sessions.Save(id, req.state); err != nil {
		log.Error("failed to save session", "error", err)
	}
}

func (h *Handler) cookiePath() string {
	if base := h.basePath(); base != "" {
		return base + "/"
	}
	return "/"
}

// redirect answers a form post with 303 See Other to an absolute console
// route.
func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, route string) {
	http.Redirect(w, r, navigation.Join(h.basePath(), route), http.StatusSeeOther)
}

// redirectBack returns to the roles list the user last looked at.
func (h *Handler) redirectBack(w http.ResponseWriter, r *http.Request, req *request) {
	back := req.state.Return
	if back == "" {
		back = "/roles"
	}
	h.redirect(w, r, back)
}

// followHistory turns the page's last navigation into a redirect. It
// reports false when the page did not navigate.
func (h *Handler) followHistory(w http.ResponseWriter, r *http.Request, req *request) bool {
	target, ok := req.history.Last()
	if !ok {
		return false
	}
	h.redirect(w, r, target)
	return true
}

func (h *Handler) viewData(req *request) viewData {
	return viewData{
		t:         req.t,
		base:      h.basePath(),
		Lang:      req.t.Lang(),
		Languages: h.bundle.Languages(),
		Realm:     h.opts.Realm,
		Header:    req.page.Header(),
		Dialog:    req.page.Dialog(),
	}
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	h.redirect(w, r, "/roles")
}

func (h *Handler) handleLivez(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, adminsdk.HealthResponse{
		Status:  "ok",
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
		Version: h.opts.BuildVersion,
	})
}
