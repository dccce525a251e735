package table

import (
	"fmt"
	"math"
)

// Cell is a raw column value, either present or absent.
type Cell struct {
	value   any
	present bool
}

// Present wraps a value, including zero values such as false or "".
func Present(v any) Cell { return Cell{value: v, present: true} }

// Absent is a cell with no value.
func Absent() Cell { return Cell{} }

// Value returns the wrapped value and whether it is present.
func (c Cell) Value() (any, bool) { return c.value, c.present }

func (c Cell) IsPresent() bool { return c.present }

// truthy reports whether the cell holds a value that is not nil, "",
// false or numeric zero.
func (c Cell) truthy() bool {
	if !c.present || c.value == nil {
		return false
	}
	switch v := c.value.(type) {
	case string:
		return v != ""
	case bool:
		return v
	case int:
		return v != 0
	case int8:
		return v != 0
	case int16:
		return v != 0
	case int32:
		return v != 0
	case int64:
		return v != 0
	case uint:
		return v != 0
	case uint8:
		return v != 0
	case uint16:
		return v != 0
	case uint32:
		return v != 0
	case uint64:
		return v != 0
	case float32:
		return v != 0 && !math.IsNaN(float64(v))
	case float64:
		return v != 0 && !math.IsNaN(v)
	}
	return true
}

func (c Cell) String() string {
	if !c.present || c.value == nil {
		return ""
	}
	return fmt.Sprint(c.value)
}

// Link is a hyperlink. An empty Text renders as an icon only.
type Link struct {
	Href string
	Text string
}

// Display is what a formatter or renderer produced for a cell: either plain
// text or a link.
type Display struct {
	Text string
	Link *Link
}

func Text(s string) Display { return Display{Text: s} }

func LinkTo(href, text string) Display { return Display{Link: &Link{Href: href, Text: text}} }

func (d Display) IsLink() bool { return d.Link != nil }

// String returns the visible text, used by plain text front-ends.
func (d Display) String() string {
	if d.Link != nil {
		if d.Link.Text != "" {
			return d.Link.Text
		}
		return d.Link.Href
	}
	return d.Text
}
