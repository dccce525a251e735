package adminsdk

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Scopes required by the role endpoints.
const (
	ScopeRolesRead  = "roles:read"
	ScopeRolesWrite = "roles:write"
)

// RolesClient performs role operations in a single realm.
type RolesClient struct {
	session *Session
	realm   string
}

// Roles returns a client for the roles of realm.
func (s *Session) Roles(realm string) *RolesClient {
	return &RolesClient{session: s, realm: realm}
}

// Realm returns the realm this client operates on.
func (r *RolesClient) Realm() string { return r.realm }

func (r *RolesClient) basePath() string {
	return "/v1/realms/" + url.PathEscape(r.realm)
}

// Find searches roles by name.
// Requires: roles:read scope
func (r *RolesClient) Find(ctx context.Context, params FindParams) (*RolePage, error) {
	q := url.Values{}
	if params.First != nil {
		q.Set("first", strconv.Itoa(*params.First))
	}
	if params.Max != nil {
		q.Set("max", strconv.Itoa(*params.Max))
	}
	if params.Search != nil {
		q.Set("search", *params.Search)
	}

	path := r.basePath() + "/roles"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := r.session.doAuthRequest(ctx, http.MethodGet, path, nil, nil, ScopeRolesRead)
	if err != nil {
		return nil, err
	}

	var page RolePage
	if err := decodeJSON(resp, &page, http.StatusOK); err != nil {
		return nil, err
	}

	return &page, nil
}

// GetByID fetches a single role.
// Requires: roles:read scope
func (r *RolesClient) GetByID(ctx context.Context, id string) (*Role, error) {
	path := r.basePath() + "/roles-by-id/" + url.PathEscape(id)
	resp, err := r.session.doAuthRequest(ctx, http.MethodGet, path, nil, nil, ScopeRolesRead)
	if err != nil {
		return nil, err
	}

	var role Role
	if err := decodeJSON(resp, &role, http.StatusOK); err != nil {
		return nil, err
	}

	return &role, nil
}

// DelByID deletes a role.
// Requires: roles:write scope
func (r *RolesClient) DelByID(ctx context.Context, id string) error {
	path := r.basePath() + "/roles-by-id/" + url.PathEscape(id)
	resp, err := r.session.doAuthRequest(ctx, http.MethodDelete, path, nil, nil, ScopeRolesWrite)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}

// Create creates a role and returns it.
// Requires: roles:write scope
func (r *RolesClient) Create(ctx context.Context, req CreateRoleRequest) (*Role, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := r.session.doAuthRequest(
		ctx,
		http.MethodPost,
		r.basePath()+"/roles",
		bytes.NewReader(body),
		map[string]string{"Content-Type": "application/json"},
		ScopeRolesWrite,
	)
	if err != nil {
		return nil, err
	}

	var role Role
	if err := decodeJSON(resp, &role, http.StatusCreated); err != nil {
		return nil, err
	}

	return &role, nil
}
