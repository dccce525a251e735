package web

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/aussiebroadwan/realmadmin/internal/console/alerts"
	"github.com/aussiebroadwan/realmadmin/internal/console/confirm"
	"github.com/aussiebroadwan/realmadmin/internal/console/roles"
	"github.com/aussiebroadwan/realmadmin/internal/console/table"
	"github.com/aussiebroadwan/realmadmin/pkg/adminsdk"
	"github.com/aussiebroadwan/realmadmin/pkg/slogx"
)

// GET /roles?first=&max=&search=
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(req *request) {
		params := h.parseParams(r.URL.Query())

		view, err := req.page.Table().Load(r.Context(), params)
		if err != nil {
			slogx.FromContext(r.Context()).Warn("failed to load roles", "error", err)
			req.alerts.AddAlert(req.t.T("roles:loadError")+" "+err.Error(), alerts.Danger)
		}

		req.state.Return = r.URL.RequestURI()

		data := h.viewData(req)
		data.View = view
		data.Search = params.Search
		if view != nil {
			data.Search = view.Params.Search
			if view.HasPrev {
				data.PrevURL = data.URL(listURL(view.Params.Prev()))
			}
			if view.HasNext {
				data.NextURL = data.URL(listURL(view.Params.Next()))
			}
		}
		data.Alerts = req.alerts.Drain()

		h.render(w, r, http.StatusOK, pageRoles, data)
	})
}

// POST /roles/{id}/delete
func (h *Handler) handleDeleteRow(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(req *request) {
		id := r.PathValue("id")

		role, ok := h.visibleRole(r, req, id)
		if !ok {
			req.alerts.AddAlert(req.t.T("roles:roleNotFound"), alerts.Warning)
			h.redirectBack(w, r, req)
			return
		}

		tbl := req.page.Table()
		if action, ok := tbl.Action(roles.ActionDelete); ok {
			action.OnRowClick(role)
		}
		h.redirectBack(w, r, req)
	})
}

// visibleRole finds id among the rows of the list the user last looked at.
func (h *Handler) visibleRole(r *http.Request, req *request, id string) (adminsdk.Role, bool) {
	params := table.Params{Max: h.opts.PageSize}
	if back, err := url.Parse(req.state.Return); err == nil && req.state.Return != "" {
		params = h.parseParams(back.Query())
	}

	view, err := req.page.Table().Load(r.Context(), params)
	if err != nil {
		slogx.FromContext(r.Context()).Warn("failed to load roles", "error", err)
		return adminsdk.Role{}, false
	}
	for _, row := range view.Rows {
		if row.Key == id {
			return row.Item, true
		}
	}
	return adminsdk.Role{}, false
}

// POST /roles/delete/confirm
func (h *Handler) handleConfirm(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(req *request) {
		err := req.page.Confirm(r.Context())
		switch {
		case errors.Is(err, roles.ErrNoSelection), errors.Is(err, confirm.ErrNotConfirming):
			slogx.FromContext(r.Context()).Debug("ignoring confirmation", "reason", err)
		case err != nil:
			slogx.FromContext(r.Context()).Error("confirmation failed", "error", err)
		}
		h.redirectBack(w, r, req)
	})
}

// POST /roles/delete/cancel
func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(req *request) {
		if err := req.page.Cancel(); err != nil {
			slogx.FromContext(r.Context()).Debug("ignoring cancel", "reason", err)
		}
		h.redirectBack(w, r, req)
	})
}

// POST /roles/create
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(req *request) {
		if item, ok := req.page.Table().ToolbarAction(roles.ToolbarCreate); ok {
			item.OnClick()
		}
		if !h.followHistory(w, r, req) {
			h.redirectBack(w, r, req)
		}
	})
}

// GET /roles/add-role
func (h *Handler) handleAddRole(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(req *request) {
		data := h.viewData(req)
		data.Dialog = confirm.Dialog{}
		data.Alerts = req.alerts.Drain()
		h.render(w, r, http.StatusOK, pageAddRole, data)
	})
}

// GET /roles/{id}
func (h *Handler) handleDetail(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(req *request) {
		data := h.viewData(req)
		data.Dialog = confirm.Dialog{}

		status := http.StatusOK
		role, err := h.api.GetByID(r.Context(), r.PathValue("id"))
		switch {
		case adminsdk.IsNotFound(err):
			status = http.StatusNotFound
			data.NotFound = true
		case err != nil:
			slogx.FromContext(r.Context()).Warn("failed to load role", "error", err)
			status = http.StatusBadGateway
			data.NotFound = true
			req.alerts.AddAlert(req.t.T("roles:loadError")+" "+err.Error(), alerts.Danger)
		default:
			data.Role = role
		}

		data.Alerts = req.alerts.Drain()
		h.render(w, r, status, pageDetail, data)
	})
}

func (h *Handler) parseParams(q url.Values) table.Params {
	p := table.Params{Max: h.opts.PageSize, Search: q.Get("search")}
	if v, err := strconv.Atoi(q.Get("first")); err == nil && v >= 0 {
		p.First = v
	}
	if v, err := strconv.Atoi(q.Get("max")); err == nil && v > 0 {
		p.Max = min(v, 100)
	}
	return p
}

func listURL(p table.Params) string {
	q := url.Values{}
	q.Set("first", strconv.Itoa(p.First))
	q.Set("max", strconv.Itoa(p.Max))
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	return "/roles?" + q.Encode()
}
