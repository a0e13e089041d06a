package table

import (
	"encoding/csv"
	"io"
)

func writeCSV[R Row](w io.Writer, rows []R) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header[R]()); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.Record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
