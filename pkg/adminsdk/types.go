package adminsdk

import "time"

// ============================================================================
// Internal Response Types
// ============================================================================

// ErrorResponse is the error document returned by every failing endpoint.
// Client code should use APIError instead.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Token Types
// ============================================================================

// TokenResponse is returned from POST /v1/token.
type TokenResponse struct {
	// AccessToken is the EdDSA-signed JWT used as a bearer token
	AccessToken string `json:"access_token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the lifetime in seconds of the access token
	ExpiresIn int `json:"expires_in"`

	// Scope is the space-delimited list of scopes granted to this token
	Scope string `json:"scope,omitempty"`
}

// ============================================================================
// Role Types
// ============================================================================

// Role is a realm role as returned by the admin API.
type Role struct {
	ID   string `json:"id" example:"01J9Z3Q6S2K8V4N0R7T5W1X3Y9"`
	Name string `json:"name" example:"offline_access"`

	// Description is omitted when the role has none
	Description string `json:"description,omitempty" example:"Allows issuing offline tokens"`

	// Composite is true when the role aggregates other roles
	Composite bool `json:"composite"`

	// Composites lists the ids of the aggregated roles
	Composites []string `json:"composites,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RolePage is one window of a role search.
type RolePage struct {
	Roles []Role `json:"roles"`
	First int    `json:"first"`
	Max   int    `json:"max"`

	// Total counts every role matching the search, not just this window
	Total int `json:"total"`
}

// FindParams filters a role search. Nil fields are left out of the query
// and the server defaults apply.
type FindParams struct {
	First  *int
	Max    *int
	Search *string
}

// CreateRoleRequest creates a role in a realm.
type CreateRoleRequest struct {
	Name        string   `json:"name" example:"auditor"`
	Description string   `json:"description,omitempty"`
	Composites  []string `json:"composites,omitempty"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	// Status is "ok" or "degraded"
	Status string `json:"status"`

	// Uptime is the service uptime as a duration string
	Uptime string `json:"uptime,omitempty"`

	Version string `json:"version,omitempty"`

	// Checks is only set by /readyz
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of each dependency checked by /readyz.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// Int returns a pointer to v, for FindParams.
func Int(v int) *int { return &v }

// String returns a pointer to v, for FindParams.
func String(v string) *string { return &v }
