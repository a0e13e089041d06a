package table

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Preview renders at most n rows as a console table.
func Preview[R Row](w io.Writer, rows []R, n int) {
	if n <= 0 {
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)

	head := table.Row{}
	for _, col := range header[R]() {
		head = append(head, col)
	}
	t.AppendHeader(head)

	shown := rows
	if len(shown) > n {
		shown = shown[:n]
	}
	for _, r := range shown {
		row := table.Row{}
		for _, cell := range r.Record() {
			row = append(row, cell)
		}
		t.AppendRow(row)
	}
	if len(rows) > len(shown) {
		t.SetCaption("%d of %d rows", len(shown), len(rows))
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}
