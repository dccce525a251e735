package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/realmadmin/internal/admin/domain"
	"github.com/aussiebroadwan/realmadmin/internal/admin/service"
	"github.com/aussiebroadwan/realmadmin/pkg/adminsdk"
	"github.com/aussiebroadwan/realmadmin/pkg/httpx"
	"github.com/aussiebroadwan/realmadmin/pkg/slogx"
)

type RolesHandler struct {
	RolesService *service.RolesService
}

// HandleFind godoc
//
//	@Summary		Search realm roles
//	@Description	Returns a window of roles whose name contains the search term, ordered by name. Requires roles:read.
//	@Tags			Roles
//	@Produce		json
//	@Param			realm	path		string				true	"Realm name"
//	@Param			first	query		int					false	"Offset of the first role"			default(0)
//	@Param			max		query		int					false	"Maximum roles to return (<=1000)"	default(100)
//	@Param			search	query		string				false	"Case-insensitive name filter"
//	@Success		200		{object}	adminsdk.RolePage	"Window of roles"
//	@Failure		400		{object}	httpx.ErrorResponse	"Malformed or negative first/max"
//	@Failure		401		{object}	httpx.ErrorResponse	"Unauthorized - missing or invalid token"
//	@Failure		403		{object}	httpx.ErrorResponse	"Forbidden - missing required scope"
//	@Failure		500		{object}	httpx.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/realms/{realm}/roles [get].
func (h *RolesHandler) HandleFind(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	q := r.URL.Query()

	first, err := optionalInt(q.Get("first"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, adminsdk.ErrorCodeInvalidRequest, "first must be an integer")
		return
	}
	maxResults, err := optionalInt(q.Get("max"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, adminsdk.ErrorCodeInvalidRequest, "max must be an integer")
		return
	}

	page, err := h.RolesService.Find(ctx, r.PathValue("realm"), service.FindParams{
		First:  first,
		Max:    maxResults,
		Search: q.Get("search"),
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidWindow) {
			httpx.WriteError(w, http.StatusBadRequest, adminsdk.ErrorCodeInvalidRequest, err.Error())
			return
		}
		log.Error("failed to find roles", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, adminsdk.ErrorCodeServerError, "Failed to retrieve roles")
		return
	}

	response := adminsdk.RolePage{
		Roles: make([]adminsdk.Role, len(page.Roles)),
		First: page.First,
		Max:   page.Max,
		Total: page.Total,
	}
	for i, role := range page.Roles {
		response.Roles[i] = toRoleResponse(role)
	}

	httpx.WriteJSON(w, http.StatusOK, response)
}

// HandleGet godoc
//
//	@Summary		Get a role by id
//	@Tags			Roles
//	@Produce		json
//	@Param			realm	path		string				true	"Realm name"
//	@Param			id		path		string				true	"Role id"
//	@Success		200		{object}	adminsdk.Role		"The role"
//	@Failure		401		{object}	httpx.ErrorResponse	"Unauthorized - missing or invalid token"
//	@Failure		403		{object}	httpx.ErrorResponse	"Forbidden - missing required scope"
//	@Failure		404		{object}	httpx.ErrorResponse	"Role not found"
//	@Security		BearerAuth
//	@Router			/v1/realms/{realm}/roles-by-id/{id} [get].
func (h *RolesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	role, err := h.RolesService.Get(ctx, r.PathValue("realm"), r.PathValue("id"))
	if err != nil {
		writeRoleError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toRoleResponse(role))
}

// HandleCreate godoc
//
//	@Summary		Create a role
//	@Description	Creates a role in the realm. Listing composites makes the role composite. Requires roles:write.
//	@Tags			Roles
//	@Accept			json
//	@Produce		json
//	@Param			realm	path		string						true	"Realm name"
//	@Param			request	body		adminsdk.CreateRoleRequest	true	"Role to create"
//	@Success		201		{object}	adminsdk.Role				"The created role"
//	@Failure		400		{object}	httpx.ErrorResponse			"Invalid name or unknown composite"
//	@Failure		401		{object}	httpx.ErrorResponse			"Unauthorized - missing or invalid token"
//	@Failure		403		{object}	httpx.ErrorResponse			"Forbidden - missing required scope"
//	@Failure		409		{object}	httpx.ErrorResponse			"A role with that name exists"
//	@Security		BearerAuth
//	@Router			/v1/realms/{realm}/roles [post].
func (h *RolesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req adminsdk.CreateRoleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, adminsdk.ErrorCodeInvalidRequest, "invalid JSON body")
		return
	}

	role, err := h.RolesService.Create(ctx, r.PathValue("realm"), service.CreateRoleInput{
		Name:        req.Name,
		Description: req.Description,
		Composites:  req.Composites,
	})
	if err != nil {
		writeRoleError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toRoleResponse(role))
}

// HandleDelete godoc
//
//	@Summary		Delete a role by id
//	@Description	Deletes the role and its composite links. Requires roles:write.
//	@Tags			Roles
//	@Param			realm	path	string	true	"Realm name"
//	@Param			id		path	string	true	"Role id"
//	@Success		204		"Role deleted"
//	@Failure		401		{object}	httpx.ErrorResponse	"Unauthorized - missing or invalid token"
//	@Failure		403		{object}	httpx.ErrorResponse	"Forbidden - missing required scope"
//	@Failure		404		{object}	httpx.ErrorResponse	"Role not found"
//	@Security		BearerAuth
//	@Router			/v1/realms/{realm}/roles-by-id/{id} [delete].
func (h *RolesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.RolesService.Delete(r.Context(), r.PathValue("realm"), r.PathValue("id")); err != nil {
		writeRoleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeRoleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrRoleNotFound):
		httpx.WriteError(w, http.StatusNotFound, adminsdk.ErrorCodeNotFound, "role not found")
	case errors.Is(err, service.ErrRoleExists):
		httpx.WriteError(w, http.StatusConflict, adminsdk.ErrorCodeConflict, "a role with that name already exists")
	case errors.Is(err, service.ErrInvalidRoleName), errors.Is(err, service.ErrUnknownComposite):
		httpx.WriteError(w, http.StatusBadRequest, adminsdk.ErrorCodeInvalidRequest, err.Error())
	default:
		slogx.FromContext(r.Context()).Error("role operation failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, adminsdk.ErrorCodeServerError, "internal server error")
	}
}

func toRoleResponse(role domain.Role) adminsdk.Role {
	return adminsdk.Role{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		Composite:   role.Composite,
		Composites:  role.Composites,
		CreatedAt:   role.CreatedAt,
		UpdatedAt:   role.UpdatedAt,
	}
}

// optionalInt parses s, returning nil for an empty string.
func optionalInt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
