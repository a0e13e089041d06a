package table

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
)

func writeMarkdown[R Row](w io.Writer, title string, rows []R) error {
	md := markdown.NewMarkdown(w)
	md.H1(title)
	md.PlainText("")

	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.Record())
	}
	md.Table(markdown.TableSet{
		Header: header[R](),
		Rows:   records,
	})
	md.PlainText("")
	md.PlainText(strconv.Itoa(len(rows)) + " rows")

	return md.Build()
}
