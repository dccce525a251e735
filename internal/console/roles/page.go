// Package roles implements the realm roles page: a searchable, paginated
// list of the realm's roles with delete confirmation and navigation to role
// creation. It has no UI toolkit dependency; the web console and rolesctl
// both drive it through the same ports.
package roles

import (
	"context"
	"errors"
	"sync"

	"github.com/aussiebroadwan/realmadmin/internal/console/alerts"
	"github.com/aussiebroadwan/realmadmin/internal/console/confirm"
	"github.com/aussiebroadwan/realmadmin/internal/console/i18n"
	"github.com/aussiebroadwan/realmadmin/internal/console/navigation"
	"github.com/aussiebroadwan/realmadmin/internal/console/table"
	"github.com/aussiebroadwan/realmadmin/pkg/adminsdk"
)

// ErrNoSelection is returned by Confirm when no role is selected.
var ErrNoSelection = errors.New("roles: no role selected")

// Routes the page navigates to.
const (
	CreatePath  = "/roles/add-role"
	detailPath  = "/roles/"
	detailRoute = "roles/"
)

// DefaultTableKey keys the table while nothing is selected.
const DefaultTableKey = "roleList"

// Column, action and toolbar names.
const (
	ColumnName        = "name"
	ColumnComposite   = "composite"
	ColumnDescription = "description"

	ActionDelete  = "delete"
	ToolbarCreate = "create"
)

// RolesAPI is the part of the admin API the page uses.
// *adminsdk.RolesClient satisfies it.
type RolesAPI interface {
	Find(ctx context.Context, params adminsdk.FindParams) (*adminsdk.RolePage, error)
	DelByID(ctx context.Context, id string) error
}

var _ RolesAPI = (*adminsdk.RolesClient)(nil)

// Deps are the page's collaborators.
type Deps struct {
	API     RolesAPI
	Alerts  alerts.Sink
	History navigation.History
	T       i18n.Translator
}

// Page is the realm roles page. Safe for concurrent use.
type Page struct {
	deps Deps

	mu       sync.Mutex
	selected *adminsdk.Role

	dialog *confirm.Machine
}

func New(deps Deps) *Page {
	p := &Page{deps: deps}
	p.dialog = confirm.New(p.deleteSelected)
	return p
}

// Loader passes the paging and search arguments to the admin API as given,
// absent ones included, and returns its answer unchanged.
func (p *Page) Loader(ctx context.Context, first, max *int, search *string) (*adminsdk.RolePage, error) {
	return p.deps.API.Find(ctx, adminsdk.FindParams{First: first, Max: max, Search: search})
}

// RoleDetailLink renders a role name linking to the role's detail route.
func (p *Page) RoleDetailLink(role adminsdk.Role) table.Display {
	return table.LinkTo(detailPath+role.ID, role.Name)
}

func (p *Page) Columns() []table.Column[adminsdk.Role] {
	return []table.Column[adminsdk.Role]{
		{
			Name:       ColumnName,
			DisplayKey: "roles:roleName",
			Value:      func(r adminsdk.Role) table.Cell { return table.Present(r.Name) },
			Renderer:   p.RoleDetailLink,
			Formatters: []table.Formatter{table.ExternalLink(detailRoute), table.Empty()},
		},
		{
			Name:       ColumnComposite,
			DisplayKey: "roles:composite",
			Value:      func(r adminsdk.Role) table.Cell { return table.Present(r.Composite) },
			Formatters: []table.Formatter{table.Bool(), table.Empty()},
		},
		{
			Name:       ColumnDescription,
			DisplayKey: "roles:description",
			Value: func(r adminsdk.Role) table.Cell {
				if r.Description == "" {
					return table.Absent()
				}
				return table.Present(r.Description)
			},
			Formatters: []table.Formatter{table.Empty()},
		},
	}
}

func (p *Page) Actions() []table.Action[adminsdk.Role] {
	return []table.Action[adminsdk.Role]{
		{Name: ActionDelete, TitleKey: "common:Delete", OnRowClick: p.OnDeleteRow},
	}
}

// OnDeleteRow selects role and opens the delete dialog.
func (p *Page) OnDeleteRow(role adminsdk.Role) {
	p.mu.Lock()
	p.selected = &role
	p.mu.Unlock()

	p.dialog.Open()
}

// Confirm deletes the selected role. The dialog closes whatever the outcome.
// On success the selection is cleared and a success alert raised; on
// failure a danger alert carries the error text and the selection stays.
func (p *Page) Confirm(ctx context.Context) error {
	if p.Selected() == nil {
		return ErrNoSelection
	}
	return p.dialog.Confirm(ctx)
}

// Cancel closes the dialog and keeps the selection.
func (p *Page) Cancel() error {
	return p.dialog.Cancel()
}

func (p *Page) deleteSelected(ctx context.Context) {
	role := p.Selected()
	if role == nil {
		return
	}

	if err := p.deps.API.DelByID(ctx, role.ID); err != nil {
		p.deps.Alerts.AddAlert(p.deps.T.T("roles:roleDeleteError")+" "+err.Error(), alerts.Danger)
		return
	}

	p.mu.Lock()
	if p.selected != nil && p.selected.ID == role.ID {
		p.selected = nil
	}
	p.mu.Unlock()

	p.deps.Alerts.AddAlert(p.deps.T.T("roles:roleDeletedSuccess"), alerts.Success)
}

// GoToCreate navigates to the role creation route.
func (p *Page) GoToCreate() {
	p.deps.History.Push(CreatePath)
}

// Selected returns a copy of the selected role, or nil.
func (p *Page) Selected() *adminsdk.Role {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.selected == nil {
		return nil
	}
	r := *p.selected
	return &r
}

// DialogState reports whether the delete dialog is open.
func (p *Page) DialogState() confirm.State {
	return p.dialog.State()
}

// Dialog describes the delete confirmation dialog for the current selection.
func (p *Page) Dialog() confirm.Dialog {
	name := ""
	if r := p.Selected(); r != nil {
		name = r.Name
	}
	return confirm.Dialog{
		TitleKey:      "roles:roleDeleteConfirm",
		Message:       p.deps.T.T("roles:roleDeleteConfirmDialog", i18n.P("selectedRoleName", name)),
		ContinueLabel: "common:delete",
		CancelLabel:   "common:cancel",
		Variant:       confirm.VariantDanger,
		Open:          p.dialog.State() == confirm.Confirming,
	}
}

// Header holds the page title and subtitle keys.
type Header struct {
	TitleKey string
	SubKey   string
}

func (p *Page) Header() Header {
	return Header{TitleKey: "roles:title", SubKey: "roles:roleExplain"}
}

func (p *Page) EmptyState() table.EmptyState {
	return table.EmptyState{
		MessageKey:           "roles:noRolesInThisRealm",
		InstructionsKey:      "roles:noRolesInThisRealmInstructions",
		PrimaryActionTextKey: "roles:createRole",
		OnPrimaryAction:      p.GoToCreate,
	}
}

// TableKey is the selected role's id, or DefaultTableKey. It changes with
// the selection so the table reloads after a delete.
func (p *Page) TableKey() string {
	if r := p.Selected(); r != nil {
		return r.ID
	}
	return DefaultTableKey
}

// Table assembles the paginated role table.
func (p *Page) Table() *table.Table[adminsdk.Role] {
	return &table.Table[adminsdk.Role]{
		Key: p.TableKey(),
		Loader: func(ctx context.Context, first, max *int, search *string) ([]adminsdk.Role, error) {
			page, err := p.Loader(ctx, first, max, search)
			if err != nil || page == nil {
				return nil, err
			}
			return page.Roles, nil
		},
		RowKey:  func(r adminsdk.Role) string { return r.ID },
		Columns: p.Columns(),
		Actions: p.Actions(),
		Toolbar: []table.ToolbarItem{
			{Name: ToolbarCreate, LabelKey: "roles:createRole", OnClick: p.GoToCreate},
		},
		EmptyState:           p.EmptyState(),
		AriaLabelKey:         "roles:roleList",
		SearchPlaceholderKey: "roles:searchFor",
		Paginated:            true,
	}
}

// State is the page state that outlives a single request.
type State struct {
	Selected   *adminsdk.Role `json:"selected,omitempty"`
	Confirming bool           `json:"confirming,omitempty"`
}

func (p *Page) State() State {
	return State{
		Selected:   p.Selected(),
		Confirming: p.dialog.State() == confirm.Confirming,
	}
}

// Restore replaces the page state without side effects.
func (p *Page) Restore(s State) {
	p.mu.Lock()
	if s.Selected != nil {
		r := *s.Selected
		p.selected = &r
	} else {
		p.selected = nil
	}
	p.mu.Unlock()

	if s.Confirming {
		p.dialog.Restore(confirm.Confirming)
	} else {
		p.dialog.Restore(confirm.Idle)
	}
}
