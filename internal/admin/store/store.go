package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/realmadmin/internal/admin/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface implemented by the drivers. Repos
// hang off it so a transaction can hand out the same repos bound to a tx.
type Store interface {
	Roles() Roles
	Clients() Clients

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transaction scoped Store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Roles interface {
	// FindRoles returns the roles of a realm ordered by name. Search is a
	// case-insensitive substring match on the name.
	FindRoles(ctx context.Context, realm string, q domain.RoleQuery) ([]domain.Role, error)

	// CountRoles counts the roles FindRoles would match without a window.
	CountRoles(ctx context.Context, realm, search string) (int, error)

	GetRoleByID(ctx context.Context, realm, id string) (domain.Role, error)
	GetRoleByName(ctx context.Context, realm, name string) (domain.Role, error)

	// CreateRole inserts a role and its composite links. Returns
	// ErrAlreadyExists when the name is taken in the realm.
	CreateRole(ctx context.Context, r domain.Role) error

	// DeleteRole removes a role. Composite links in either direction cascade.
	DeleteRole(ctx context.Context, realm, id string) error

	IsEmpty(ctx context.Context, realm string) (bool, error)
}

type Clients interface {
	GetClientByID(ctx context.Context, id string) (domain.Client, error)
	CreateClient(ctx context.Context, c domain.Client) error
	IsEmpty(ctx context.Context) (bool, error)
}
