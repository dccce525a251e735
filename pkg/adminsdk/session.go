package adminsdk

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// expiryBuffer is how long before expiry a session fetches a new token.
const expiryBuffer = 30 * time.Second

// Session represents an authenticated session. Access tokens are renewed
// through a new client credentials grant shortly before they expire.
type Session struct {
	client *SDKClient

	mu           sync.RWMutex
	accessToken  string
	clientID     string
	clientSecret string
	requested    []string
	expiresAt    time.Time
	scopes       map[string]bool
}

func newSession(client *SDKClient, clientID, clientSecret string, requested []string, tokenResp *TokenResponse) *Session {
	return &Session{
		client:       client,
		clientID:     clientID,
		clientSecret: clientSecret,
		requested:    append([]string(nil), requested...),
		accessToken:  tokenResp.AccessToken,
		expiresAt:    time.Now().Add(time.Duration(tokenResp.ExpiresIn)*time.Second - expiryBuffer),
		scopes:       parseScopes(tokenResp.Scope),
	}
}

// parseScopes parses a space-delimited scope string into a set.
func parseScopes(scopeStr string) map[string]bool {
	parts := strings.Fields(scopeStr)
	scopes := make(map[string]bool, len(parts))
	for _, scope := range parts {
		scopes[scope] = true
	}
	return scopes
}

// getValidToken returns a valid access token, re-authenticating if expired.
func (s *Session) getValidToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	if time.Now().Before(s.expiresAt) {
		token := s.accessToken
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have renewed while we waited for the lock.
	if time.Now().Before(s.expiresAt) {
		return s.accessToken, nil
	}

	tokenResp, err := s.client.ClientCredentialsGrant(ctx, s.clientID, s.clientSecret, s.requested)
	if err != nil {
		return "", fmt.Errorf("failed to renew token: %w", err)
	}

	s.accessToken = tokenResp.AccessToken
	s.expiresAt = time.Now().Add(time.Duration(tokenResp.ExpiresIn)*time.Second - expiryBuffer)
	s.scopes = parseScopes(tokenResp.Scope)

	return s.accessToken, nil
}

// AccessToken returns the current access token without checking expiration.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// ClientID returns the client the session authenticated as.
func (s *Session) ClientID() string {
	return s.clientID
}

// Scopes returns a copy of the granted scopes.
func (s *Session) Scopes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scopes := make([]string, 0, len(s.scopes))
	for scope := range s.scopes {
		scopes = append(scopes, scope)
	}
	return scopes
}

// HasScope returns true if the session has the specified scope.
func (s *Session) HasScope(scope string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scopes[scope]
}

// checkScopes returns an error naming any missing scope when scope checking
// is enabled.
func (s *Session) checkScopes(required ...string) error {
	if !s.client.CheckScopes || len(required) == 0 {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var missing []string
	for _, scope := range required {
		if !s.scopes[scope] {
			missing = append(missing, scope)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required scope(s): %s", strings.Join(missing, ", "))
	}

	return nil
}
