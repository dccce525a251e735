package table

import (
	"context"
	"strings"
)

// DefaultPageSize is used when Params.Max is not positive.
const DefaultPageSize = 10

// Loader fetches up to max rows starting at first. Nil arguments mean the
// caller did not supply them.
type Loader[T any] func(ctx context.Context, first, max *int, search *string) ([]T, error)

// Column describes how one field of T is shown.
type Column[T any] struct {
	Name       string
	DisplayKey string

	// Value extracts the raw cell value fed to Formatters.
	Value func(T) Cell

	// Renderer, when set, produces the main cell content and the formatter
	// output becomes secondary content.
	Renderer func(T) Display

	Formatters []Formatter
}

// Action is a per-row action such as delete.
type Action[T any] struct {
	Name       string
	TitleKey   string
	OnRowClick func(T)
}

// ToolbarItem is a button shown above the table.
type ToolbarItem struct {
	Name     string
	LabelKey string
	OnClick  func()
}

// EmptyState is shown instead of the table when the loader returns nothing
// for an unfiltered first page.
type EmptyState struct {
	MessageKey           string
	InstructionsKey      string
	PrimaryActionTextKey string
	OnPrimaryAction      func()
}

// Table is a searchable, paginated table over rows of T.
type Table[T any] struct {
	// Key identifies the table instance; a new key means cached views are stale.
	Key string

	Loader               Loader[T]
	RowKey               func(T) string
	Columns              []Column[T]
	Actions              []Action[T]
	Toolbar              []ToolbarItem
	EmptyState           EmptyState
	AriaLabelKey         string
	SearchPlaceholderKey string
	Paginated            bool
}

// Params is the table's paging and search state.
type Params struct {
	First  int
	Max    int
	Search string
}

type Header struct {
	Name     string
	LabelKey string
}

// RenderedCell is one formatted cell. Secondary is nil unless the column
// has both a renderer and a formatter that yielded.
type RenderedCell struct {
	Column    string
	Content   Display
	Secondary *Display
}

type Row[T any] struct {
	Key   string
	Item  T
	Cells []RenderedCell
}

type ActionView struct {
	Name     string
	TitleKey string
}

// View is a loaded, rendered page of the table.
type View[T any] struct {
	Key     string
	Params  Params
	Headers []Header
	Rows    []Row[T]
	Actions []ActionView

	HasPrev bool
	HasNext bool

	// Empty is set when an unfiltered first page has no rows.
	Empty bool
	// NoResults is set when a search matched nothing.
	NoResults bool

	AriaLabelKey         string
	SearchPlaceholderKey string
	Toolbar              []ToolbarItem
	EmptyState           EmptyState
}

// Load calls the loader and renders the result. The loader is asked for one
// row more than the page size to find out whether a next page exists.
// Loader errors are returned as is.
func (t *Table[T]) Load(ctx context.Context, p Params) (*View[T], error) {
	p = normalize(p, t.Paginated)

	first := p.First
	limit := p.Max + 1
	var search *string
	if p.Search != "" {
		search = &p.Search
	}

	items, err := t.Loader(ctx, &first, &limit, search)
	if err != nil {
		return nil, err
	}

	view := &View[T]{
		Key:                  t.Key,
		Params:               p,
		Headers:              make([]Header, len(t.Columns)),
		HasPrev:              t.Paginated && p.First > 0,
		AriaLabelKey:         t.AriaLabelKey,
		SearchPlaceholderKey: t.SearchPlaceholderKey,
		Toolbar:              t.Toolbar,
		EmptyState:           t.EmptyState,
	}
	if len(items) > p.Max {
		items = items[:p.Max]
		view.HasNext = t.Paginated
	}
	for i, c := range t.Columns {
		view.Headers[i] = Header{Name: c.Name, LabelKey: c.DisplayKey}
	}
	for _, a := range t.Actions {
		view.Actions = append(view.Actions, ActionView{Name: a.Name, TitleKey: a.TitleKey})
	}

	view.Rows = make([]Row[T], len(items))
	for i, item := range items {
		view.Rows[i] = t.renderRow(item)
	}

	if len(items) == 0 {
		view.Empty = p.Search == "" && p.First == 0
		view.NoResults = !view.Empty
	}

	return view, nil
}

// Action looks up a row action by name.
func (t *Table[T]) Action(name string) (Action[T], bool) {
	for _, a := range t.Actions {
		if a.Name == name {
			return a, true
		}
	}
	return Action[T]{}, false
}

// ToolbarAction looks up a toolbar item by name.
func (t *Table[T]) ToolbarAction(name string) (ToolbarItem, bool) {
	for _, item := range t.Toolbar {
		if item.Name == name {
			return item, true
		}
	}
	return ToolbarItem{}, false
}

func (t *Table[T]) renderRow(item T) Row[T] {
	row := Row[T]{Item: item, Cells: make([]RenderedCell, len(t.Columns))}
	if t.RowKey != nil {
		row.Key = t.RowKey(item)
	}

	for i, c := range t.Columns {
		cell := Absent()
		if c.Value != nil {
			cell = c.Value(item)
		}

		rc := RenderedCell{Column: c.Name}
		formatted, ok := Chain(cell, c.Formatters...)
		switch {
		case c.Renderer != nil:
			rc.Content = c.Renderer(item)
			if ok {
				rc.Secondary = &formatted
			}
		case ok:
			rc.Content = formatted
		}
		row.Cells[i] = rc
	}
	return row
}

func normalize(p Params, paginated bool) Params {
	if p.First < 0 || !paginated {
		p.First = 0
	}
	if p.Max <= 0 {
		p.Max = DefaultPageSize
	}
	p.Search = strings.TrimSpace(p.Search)
	return p
}

// Next returns the params of the following page.
func (p Params) Next() Params {
	p.First += p.Max
	return p
}

// Prev returns the params of the preceding page.
func (p Params) Prev() Params {
	p.First = max(p.First-p.Max, 0)
	return p
}
