package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/bndr/gotabulate"

	"github.com/aussiebroadwan/realmadmin/internal/console/alerts"
	"github.com/aussiebroadwan/realmadmin/internal/console/i18n"
	"github.com/aussiebroadwan/realmadmin/internal/console/table"
	"github.com/aussiebroadwan/realmadmin/pkg/adminsdk"
)

// alertWriter prints alerts as they are raised and remembers failures.
type alertWriter struct {
	w      io.Writer
	failed bool
}

func (a *alertWriter) AddAlert(message string, variant alerts.Variant) {
	if variant == alerts.Danger {
		a.failed = true
	}
	fmt.Fprintf(a.w, "[%s] %s\n", variant, message)
}

// renderTable draws a loaded view as a text grid. The row key comes first
// so ids can be passed to delete.
func renderTable(w io.Writer, t i18n.Translator, view *table.View[adminsdk.Role]) {
	headers := []string{t.T("roles:roleID")}
	for _, h := range view.Headers {
		headers = append(headers, t.T(h.LabelKey))
	}

	rows := make([][]string, len(view.Rows))
	for i, row := range view.Rows {
		cells := []string{row.Key}
		for _, c := range row.Cells {
			cells = append(cells, cellText(c))
		}
		rows[i] = cells
	}

	tab := gotabulate.Create(rows)
	tab.SetHeaders(headers)
	tab.SetAlign("left")
	tab.SetWrapStrings(true)
	tab.SetMaxCellSize(60)
	fmt.Fprint(w, tab.Render("grid"))
}

func cellText(c table.RenderedCell) string {
	text := c.Content.String()
	if c.Content.Link != nil && c.Content.Link.Text != "" {
		text = c.Content.Link.Text
	}
	return strings.TrimSpace(text)
}
