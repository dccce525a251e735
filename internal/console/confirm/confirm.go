// Package confirm implements a two-state confirmation dialog.
package confirm

import (
	"context"
	"errors"
	"sync"
)

// ErrNotConfirming is returned by Confirm and Cancel when the dialog is not open.
var ErrNotConfirming = errors.New("confirm: dialog is not open")

type State int

const (
	Idle State = iota
	Confirming
)

func (s State) String() string {
	if s == Confirming {
		return "confirming"
	}
	return "idle"
}

// Button variants for the continue button.
const (
	VariantPrimary = "primary"
	VariantDanger  = "danger"
)

// Dialog describes what the dialog shows. Message is already translated;
// the other fields are translation keys.
type Dialog struct {
	TitleKey      string
	Message       string
	ContinueLabel string
	CancelLabel   string
	Variant       string
	Open          bool
}

// Machine holds the dialog state. OnConfirm runs once per confirmed
// opening, after the dialog has closed. Safe for concurrent use.
type Machine struct {
	mu        sync.Mutex
	state     State
	onConfirm func(context.Context)
}

func New(onConfirm func(context.Context)) *Machine {
	return &Machine{onConfirm: onConfirm}
}

// Open shows the dialog. Opening an open dialog does nothing.
func (m *Machine) Open() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Confirming
}

// Toggle flips between shown and hidden without running OnConfirm.
func (m *Machine) Toggle() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Confirming {
		m.state = Idle
	} else {
		m.state = Confirming
	}
}

// Cancel closes the dialog with no side effect.
func (m *Machine) Cancel() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Confirming {
		return ErrNotConfirming
	}
	m.state = Idle
	return nil
}

// Confirm closes the dialog and runs OnConfirm. Of two concurrent calls
// only one runs the callback; the other gets ErrNotConfirming.
func (m *Machine) Confirm(ctx context.Context) error {
	m.mu.Lock()
	if m.state != Confirming {
		m.mu.Unlock()
		return ErrNotConfirming
	}
	m.state = Idle
	m.mu.Unlock()

	if m.onConfirm != nil {
		m.onConfirm(ctx)
	}
	return nil
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Restore sets the state without side effects, for state kept between
// requests.
func (m *Machine) Restore(s State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s
}
