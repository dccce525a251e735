package sqlite

import (
	"context"
	"strings"

	"github.com/aussiebroadwan/realmadmin/internal/admin/domain"
	"github.com/aussiebroadwan/realmadmin/internal/admin/store"
)

type rolesRepo struct {
	db dbtx
}

const roleColumns = `id, realm, name, description, composite, created_at, updated_at`

// likePattern builds a LIKE pattern for a substring search, escaping the
// wildcard characters in the user input.
func likePattern(search string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(search) + "%"
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRole(s scanner) (domain.Role, error) {
	var r domain.Role
	err := s.Scan(&r.ID, &r.Realm, &r.Name, &r.Description, &r.Composite, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

func (r *rolesRepo) FindRoles(ctx context.Context, realm string, q domain.RoleQuery) ([]domain.Role, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+roleColumns+`
		FROM roles
		WHERE realm = ? AND name LIKE ? ESCAPE '\'
		ORDER BY name, id
		LIMIT ? OFFSET ?`,
		realm, likePattern(q.Search), q.Max, q.First,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := make([]domain.Role, 0, q.Max)
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *rolesRepo) CountRoles(ctx context.Context, realm, search string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM roles WHERE realm = ? AND name LIKE ? ESCAPE '\'`,
		realm, likePattern(search),
	).Scan(&n)
	return n, err
}

func (r *rolesRepo) GetRoleByID(ctx context.Context, realm, id string) (domain.Role, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+roleColumns+` FROM roles WHERE realm = ? AND id = ?`, realm, id)
	return r.withComposites(ctx, row)
}

func (r *rolesRepo) GetRoleByName(ctx context.Context, realm, name string) (domain.Role, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+roleColumns+` FROM roles WHERE realm = ? AND name = ?`, realm, name)
	return r.withComposites(ctx, row)
}

func (r *rolesRepo) withComposites(ctx context.Context, row scanner) (domain.Role, error) {
	role, err := scanRole(row)
	if err != nil {
		return domain.Role{}, mapNotFound(err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT child_id FROM role_composites WHERE parent_id = ? ORDER BY child_id`, role.ID)
	if err != nil {
		return domain.Role{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var child string
		if err := rows.Scan(&child); err != nil {
			return domain.Role{}, err
		}
		role.Composites = append(role.Composites, child)
	}
	return role, rows.Err()
}

func (r *rolesRepo) CreateRole(ctx context.Context, role domain.Role) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO roles (id, realm, name, description, composite)
		VALUES (?, ?, ?, ?, ?)`,
		role.ID, role.Realm, role.Name, role.Description, role.Composite,
	)
	if err != nil {
		return mapConstraint(err)
	}

	for _, child := range role.Composites {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO role_composites (parent_id, child_id) VALUES (?, ?)`, role.ID, child,
		); err != nil {
			return mapConstraint(err)
		}
	}
	return nil
}

func (r *rolesRepo) DeleteRole(ctx context.Context, realm, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM roles WHERE realm = ? AND id = ?`, realm, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *rolesRepo) IsEmpty(ctx context.Context, realm string) (bool, error) {
	n, err := r.CountRoles(ctx, realm, "")
	return n == 0, err
}
