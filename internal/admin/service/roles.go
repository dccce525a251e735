package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/aussiebroadwan/realmadmin/internal/admin/domain"
	"github.com/aussiebroadwan/realmadmin/internal/admin/store"
	"github.com/aussiebroadwan/realmadmin/pkg/idx"
	"github.com/aussiebroadwan/realmadmin/pkg/slogx"
)

// Listing window limits.
const (
	DefaultMax = 100
	MaxMax     = 1000

	maxRoleNameLen = 255
)

var (
	ErrRoleNotFound     = errors.New("role not found")
	ErrRoleExists       = errors.New("role already exists")
	ErrInvalidRoleName  = errors.New("invalid role name")
	ErrInvalidWindow    = errors.New("first and max must not be negative")
	ErrUnknownComposite = errors.New("composite refers to an unknown role")
)

// FindParams mirrors the query string of a role listing. Nil means "not
// given" and falls back to the defaults.
type FindParams struct {
	First  *int
	Max    *int
	Search string
}

// CreateRoleInput describes a new role. Composites are role ids in the same
// realm.
type CreateRoleInput struct {
	Name        string
	Description string
	Composites  []string
}

type RolesService struct {
	Store store.Store
}

// Find returns a page of roles in realm.
func (s *RolesService) Find(ctx context.Context, realm string, p FindParams) (domain.RolePage, error) {
	q := domain.RoleQuery{First: 0, Max: DefaultMax, Search: strings.TrimSpace(p.Search)}
	if p.First != nil {
		q.First = *p.First
	}
	if p.Max != nil {
		q.Max = min(*p.Max, MaxMax)
	}
	if q.First < 0 || q.Max < 0 {
		return domain.RolePage{}, ErrInvalidWindow
	}

	roles, err := s.Store.Roles().FindRoles(ctx, realm, q)
	if err != nil {
		return domain.RolePage{}, err
	}
	total, err := s.Store.Roles().CountRoles(ctx, realm, q.Search)
	if err != nil {
		return domain.RolePage{}, err
	}

	return domain.RolePage{Roles: roles, First: q.First, Max: q.Max, Total: total}, nil
}

func (s *RolesService) Get(ctx context.Context, realm, id string) (domain.Role, error) {
	role, err := s.Store.Roles().GetRoleByID(ctx, realm, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Role{}, ErrRoleNotFound
	}
	return role, err
}

// Create validates and stores a new role. The role is composite when it
// lists at least one composite.
func (s *RolesService) Create(ctx context.Context, realm string, in CreateRoleInput) (domain.Role, error) {
	l := slogx.FromContext(ctx)

	name := strings.TrimSpace(in.Name)
	if name == "" || utf8.RuneCountInString(name) > maxRoleNameLen {
		return domain.Role{}, ErrInvalidRoleName
	}

	role := domain.Role{
		ID:          idx.New().String(),
		Realm:       realm,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Composite:   len(in.Composites) > 0,
		Composites:  dedupe(in.Composites),
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		for _, child := range role.Composites {
			if _, err := tx.Roles().GetRoleByID(ctx, realm, child); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return ErrUnknownComposite
				}
				return err
			}
		}

		if err := tx.Roles().CreateRole(ctx, role); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrRoleExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domain.Role{}, err
	}

	created, err := s.Store.Roles().GetRoleByID(ctx, realm, role.ID)
	if err != nil {
		return domain.Role{}, err
	}

	l.Info("role created", slog.String("realm", realm), slog.String("role_id", role.ID), slog.String("name", name))
	return created, nil
}

// Delete removes a role by id.
func (s *RolesService) Delete(ctx context.Context, realm, id string) error {
	err := s.Store.Roles().DeleteRole(ctx, realm, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrRoleNotFound
	}
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("role deleted", slog.String("realm", realm), slog.String("role_id", id))
	return nil
}

func dedupe(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
