// Package session keeps per-browser console state between requests.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/allegro/bigcache"
	jsoniter "github.com/json-iterator/go"

	"github.com/aussiebroadwan/realmadmin/internal/console/alerts"
	"github.com/aussiebroadwan/realmadmin/internal/console/roles"
	"github.com/aussiebroadwan/realmadmin/pkg/cryptox"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CookieName is the session cookie.
const CookieName = "realmadmin_console"

// DefaultTTL is used when NewStore is given a non-positive ttl.
const DefaultTTL = 30 * time.Minute

var ErrInvalidID = errors.New("session: invalid id")

// State is everything the console remembers about one browser.
type State struct {
	Roles  roles.State    `json:"roles"`
	Alerts []alerts.Alert `json:"alerts,omitempty"`
	Lang   string         `json:"lang,omitempty"`

	// Return is the roles list URL to go back to after a form post.
	Return string `json:"return,omitempty"`
}

type record struct {
	State     State     `json:"state"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store is an in-memory session store backed by bigcache. Entries expire
// ttl after their last save.
type Store struct {
	cache *bigcache.BigCache
	ttl   time.Duration
	now   func() time.Time

	mu    sync.Mutex
	locks map[string]*lock
}

type lock struct {
	mu   sync.Mutex
	refs int
}

func NewStore(ttl time.Duration) (*Store, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	cfg := bigcache.DefaultConfig(ttl)
	cfg.CleanWindow = time.Minute
	cfg.Verbose = false

	cache, err := bigcache.NewBigCache(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session cache: %w", err)
	}

	return &Store{
		cache: cache,
		ttl:   ttl,
		now:   time.Now,
		locks: make(map[string]*lock),
	}, nil
}

func (s *Store) TTL() time.Duration { return s.ttl }

// Load returns the state of session id. Unknown or expired sessions report
// false with a zero State.
func (s *Store) Load(id string) (State, bool, error) {
	if id == "" {
		return State{}, false, nil
	}

	// bigcache reports misses with an error; any lookup failure is a miss.
	data, err := s.cache.Get(id)
	if err != nil {
		return State{}, false, nil
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return State{}, false, fmt.Errorf("decode session: %w", err)
	}
	if !s.now().Before(rec.ExpiresAt) {
		_ = s.cache.Delete(id)
		return State{}, false, nil
	}
	return rec.State, true, nil
}

// Save stores st under id and extends its lifetime.
func (s *Store) Save(id string, st State) error {
	if id == "" {
		return ErrInvalidID
	}

	data, err := json.Marshal(record{State: st, ExpiresAt: s.now().Add(s.ttl)})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.cache.Set(id, data); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *Store) Delete(id string) error {
	if err := s.cache.Delete(id); err != nil {
		// Deleting a missing entry is not an error for callers.
		if _, ok, _ := s.Load(id); ok {
			return fmt.Errorf("delete session: %w", err)
		}
	}
	return nil
}

// Lock serialises requests of one session. The returned func releases it.
func (s *Store) Lock(id string) (unlock func()) {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &lock{}
		s.locks[id] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.mu.Unlock()
	}
}

// NewID returns a random session id.
func NewID() (string, error) {
	return cryptox.GenerateToken(cryptox.TokenSize256)
}

// IDFromRequest returns the session id carried by r's cookie, if any.
func IDFromRequest(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// SetCookie writes the session cookie. path scopes it to the console.
func SetCookie(w http.ResponseWriter, id, path string, ttl time.Duration, secure bool) {
	if path == "" {
		path = "/"
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     path,
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
