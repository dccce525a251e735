package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/aussiebroadwan/realmadmin/internal/admin/store"
	"github.com/aussiebroadwan/realmadmin/pkg/cryptox"
	"github.com/aussiebroadwan/realmadmin/pkg/jwtx"
	"github.com/aussiebroadwan/realmadmin/pkg/slogx"
)

var (
	ErrInvalidClient = errors.New("invalid_client")
	ErrInvalidScope  = errors.New("invalid_scope")
)

// AccessToken is the result of a successful grant.
type AccessToken struct {
	Token     string
	ExpiresIn time.Duration
	Scopes    []string
}

type TokenService struct {
	Store     store.Store
	Signer    jwtx.Signer
	Hasher    cryptox.Hasher
	Issuer    string
	Audience  []string
	AccessTTL time.Duration
}

// ClientCredentials implements the OAuth2 client_credentials grant. With no
// requested scopes the client gets everything it is allowed; otherwise every
// requested scope must be allowed.
func (s *TokenService) ClientCredentials(
	ctx context.Context,
	clientID, clientSecret string,
	requested []string,
) (*AccessToken, error) {
	l := slogx.FromContext(ctx)

	client, err := s.Store.Clients().GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidClient
		}
		return nil, err
	}
	if err := s.Hasher.Verify(clientSecret, client.SecretHash); err != nil {
		l.Info("client authentication failed", slog.String("client_id", clientID))
		return nil, ErrInvalidClient
	}

	granted := client.Scopes
	if len(requested) > 0 {
		for _, sc := range requested {
			if !slices.Contains(client.Scopes, sc) {
				return nil, ErrInvalidScope
			}
		}
		granted = requested
	}

	ttl := s.AccessTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}

	claims := jwtx.NewAccessClaims(client.ID, client.Name, granted, ttl, s.Issuer, s.Audience, time.Now().UTC())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return nil, err
	}

	l.Debug("issued access token", slog.String("client_id", client.ID), slog.Any("scopes", granted))
	return &AccessToken{Token: token, ExpiresIn: ttl, Scopes: granted}, nil
}
