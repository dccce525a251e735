// Package alerts collects user-facing notifications.
package alerts

import "sync"

type Variant string

const (
	Success Variant = "success"
	Danger  Variant = "danger"
	Warning Variant = "warning"
	Info    Variant = "info"
)

// Alert is a single notification.
type Alert struct {
	Message string  `json:"message"`
	Variant Variant `json:"variant"`
}

// Sink receives alerts. Delivery is fire and forget.
type Sink interface {
	AddAlert(message string, variant Variant)
}

// MaxPending bounds how many alerts a Store keeps; the oldest is dropped
// first.
const MaxPending = 8

// Store keeps pending alerts until they are drained for display.
type Store struct {
	mu     sync.Mutex
	alerts []Alert
}

// NewStore returns a Store holding the given pending alerts.
func NewStore(pending ...Alert) *Store {
	s := &Store{}
	for _, a := range pending {
		s.AddAlert(a.Message, a.Variant)
	}
	return s
}

func (s *Store) AddAlert(message string, variant Variant) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.alerts = append(s.alerts, Alert{Message: message, Variant: variant})
	if over := len(s.alerts) - MaxPending; over > 0 {
		s.alerts = append([]Alert(nil), s.alerts[over:]...)
	}
}

// Pending returns a copy of the pending alerts without removing them.
func (s *Store) Pending() []Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Alert(nil), s.alerts...)
}

// Drain returns and removes all pending alerts.
func (s *Store) Drain() []Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.alerts
	s.alerts = nil
	return out
}

// Recorder is a Sink that remembers everything, for tests.
type Recorder struct {
	mu     sync.Mutex
	Alerts []Alert
}

func (r *Recorder) AddAlert(message string, variant Variant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Alerts = append(r.Alerts, Alert{Message: message, Variant: variant})
}

// Last returns the most recent alert, or false when none was raised.
func (r *Recorder) Last() (Alert, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Alerts) == 0 {
		return Alert{}, false
	}
	return r.Alerts[len(r.Alerts)-1], true
}
