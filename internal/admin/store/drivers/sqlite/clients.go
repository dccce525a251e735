package sqlite

import (
	"context"

	"github.com/aussiebroadwan/realmadmin/internal/admin/domain"
)

type clientsRepo struct {
	db dbtx
}

func (r *clientsRepo) GetClientByID(ctx context.Context, id string) (domain.Client, error) {
	var (
		c      domain.Client
		scopes string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, secret_hash, scopes, protected, created_at, updated_at
		FROM clients WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.SecretHash, &scopes, &c.Protected, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}
	c.Scopes = splitFields(scopes)
	return c, nil
}

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clients (id, name, secret_hash, scopes, protected)
		VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.SecretHash, joinFields(c.Scopes), c.Protected,
	)
	return mapConstraint(err)
}

func (r *clientsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}
