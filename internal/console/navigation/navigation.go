// Package navigation models route changes triggered by page actions.
package navigation

import (
	"path"
	"strings"
	"sync"
)

// History accepts route pushes.
type History interface {
	Push(path string)
}

// Recorder is a History that keeps every pushed path. The web console uses
// it per request and turns the last push into a redirect.
type Recorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *Recorder) Push(p string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, p)
}

// Last returns the most recent push.
func (r *Recorder) Last() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.paths) == 0 {
		return "", false
	}
	return r.paths[len(r.paths)-1], true
}

func (r *Recorder) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

// Join prefixes an absolute route with the application's base path.
// Relative routes are returned unchanged.
func Join(base, route string) string {
	if !strings.HasPrefix(route, "/") {
		return route
	}
	base = strings.TrimRight(base, "/")
	if base == "" {
		return route
	}
	joined := path.Join(base, route)
	if strings.HasSuffix(route, "/") && !strings.HasSuffix(joined, "/") {
		joined += "/"
	}
	return joined
}
