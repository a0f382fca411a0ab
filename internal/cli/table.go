package cli

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/MrSnakeDoc/bm/internal/domain"
)

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	return t
}

func renderLinksTable(out io.Writer, links []domain.Link) {
	t := newTable(out)
	t.AppendHeader(table.Row{"Title", "URL", "Date", "Tags", "File"})
	for _, l := range links {
		t.AppendRow(table.Row{l.Title, l.URL, l.Date, strings.Join(l.Tags, ", "), l.File})
	}
	t.Render()
}

func renderResourcesTable(out io.Writer, resources []domain.Resource) {
	t := newTable(out)
	t.AppendHeader(table.Row{"Title", "URL", "Note"})
	for _, r := range resources {
		t.AppendRow(table.Row{r.Title, r.URL, r.Note})
	}
	t.Render()
}
