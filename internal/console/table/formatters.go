package table

import (
	"unicode"
	"unicode/utf8"
)

// EmptyPlaceholder is shown for cells without a meaningful value.
const EmptyPlaceholder = "—"

// Formatter maps a cell to a display value. The bool is false when the
// formatter yields nothing and the next formatter in the chain should run.
type Formatter func(Cell) (Display, bool)

// Empty keeps truthy values as text and replaces anything else with the
// placeholder dash. It always yields, so it belongs last in a chain.
func Empty() Formatter {
	return func(c Cell) (Display, bool) {
		if c.truthy() {
			return Text(c.String()), true
		}
		return Text(EmptyPlaceholder), true
	}
}

// ExternalLink turns a truthy value into a link to prefix+value.
func ExternalLink(prefix string) Formatter {
	return func(c Cell) (Display, bool) {
		if !c.truthy() {
			return Display{}, false
		}
		return LinkTo(prefix+c.String(), ""), true
	}
}

// Bool upper-cases the first character of the value's string form, so
// true becomes "True". Absent values yield nothing.
func Bool() Formatter {
	return func(c Cell) (Display, bool) {
		if !c.present {
			return Display{}, false
		}
		s := c.String()
		if s == "" {
			return Display{}, false
		}
		r, size := utf8.DecodeRuneInString(s)
		return Text(string(unicode.ToUpper(r)) + s[size:]), true
	}
}

// Chain applies formatters left to right and returns the first result.
func Chain(c Cell, formatters ...Formatter) (Display, bool) {
	for _, f := range formatters {
		if d, ok := f(c); ok {
			return d, true
		}
	}
	return Display{}, false
}
