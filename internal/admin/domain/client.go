package domain

import "time"

// Client is a machine client allowed to call the admin API with the client
// credentials grant.
type Client struct {
	ID         string
	Name       string
	SecretHash string
	Scopes     []string
	Protected  bool // bootstrap client, cannot be removed
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Admin API scopes.
const (
	ScopeRolesRead  = "roles:read"
	ScopeRolesWrite = "roles:write"
)

// AllScopes is granted to the bootstrap client.
var AllScopes = []string{ScopeRolesRead, ScopeRolesWrite}
