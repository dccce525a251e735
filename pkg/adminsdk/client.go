package adminsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the realm admin API.
// It provides access to unauthenticated operations and can create authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// CheckScopes enables client-side scope validation before requests are
	// sent. Tests disable it to exercise the server-side checks.
	// Default: true
	CheckScopes bool
}

// NewSDKClient creates a new admin API client with scope checking enabled.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		CheckScopes: true,
	}
}

// AuthenticateWithClientCredentials creates an authenticated session using
// the client credentials grant.
func (c *SDKClient) AuthenticateWithClientCredentials(
	ctx context.Context,
	clientID, clientSecret string,
	scopes []string,
) (*Session, error) {
	tokenResp, err := c.ClientCredentialsGrant(ctx, clientID, clientSecret, scopes)
	if err != nil {
		return nil, err
	}

	return newSession(c, clientID, clientSecret, scopes, tokenResp), nil
}
