package service

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/realmadmin/internal/admin/domain"
	"github.com/aussiebroadwan/realmadmin/internal/admin/store"
	"github.com/aussiebroadwan/realmadmin/pkg/cryptox"
	"github.com/aussiebroadwan/realmadmin/pkg/idx"
	"github.com/aussiebroadwan/realmadmin/pkg/slogx"
)

// BootstrapService seeds a fresh database with a protected client and the
// default roles of a realm.
type BootstrapService struct {
	Store  store.Store
	Hasher cryptox.Hasher
}

// Run is idempotent: the client is only created when no clients exist and
// the roles only when the realm has none.
func (s *BootstrapService) Run(ctx context.Context, realm, clientID, clientSecret string) error {
	l := slogx.FromContext(ctx)

	noClients, err := s.Store.Clients().IsEmpty(ctx)
	if err != nil {
		return err
	}
	noRoles, err := s.Store.Roles().IsEmpty(ctx, realm)
	if err != nil {
		return err
	}
	if !noClients && !noRoles {
		return nil
	}

	var secretHash string
	if noClients {
		if clientID == "" || clientSecret == "" {
			l.Warn("no clients configured, admin API will reject every request")
			noClients = false
		} else if secretHash, err = s.Hasher.Hash(clientSecret); err != nil {
			return err
		}
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if noClients {
			err := tx.Clients().CreateClient(ctx, domain.Client{
				ID:         clientID,
				Name:       "bootstrap",
				SecretHash: secretHash,
				Scopes:     domain.AllScopes,
				Protected:  true,
			})
			if err != nil {
				return err
			}
			l.Info("bootstrap client created", slog.String("client_id", clientID))
		}

		if noRoles {
			if err := seedDefaultRoles(ctx, tx, realm); err != nil {
				return err
			}
			l.Info("default roles seeded", slog.String("realm", realm))
		}
		return nil
	})
}

func seedDefaultRoles(ctx context.Context, tx store.Tx, realm string) error {
	offline := domain.Role{
		ID:          idx.New().String(),
		Realm:       realm,
		Name:        "offline_access",
		Description: "${role_offline-access}",
	}
	uma := domain.Role{
		ID:          idx.New().String(),
		Realm:       realm,
		Name:        "uma_authorization",
		Description: "${role_uma_authorization}",
	}
	defaults := domain.Role{
		ID:          idx.New().String(),
		Realm:       realm,
		Name:        "default-roles-" + realm,
		Description: "${role_default-roles}",
		Composite:   true,
		Composites:  []string{offline.ID, uma.ID},
	}

	for _, r := range []domain.Role{offline, uma, defaults} {
		if err := tx.Roles().CreateRole(ctx, r); err != nil {
			return err
		}
	}
	return nil
}
