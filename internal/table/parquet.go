package table

import (
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"
)

func writeParquet[R Row](w io.Writer, rows []R) error {
	pw := parquet.NewGenericWriter[R](w)
	if _, err := pw.Write(rows); err != nil {
		pw.Close()
		return fmt.Errorf("write parquet rows: %w", err)
	}
	return pw.Close()
}

// ReadParquet loads every row of a parquet table written by Write.
func ReadParquet[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat parquet file: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	r := parquet.NewGenericReader[T](pf)
	defer r.Close()

	out := make([]T, 0, r.NumRows())
	buf := make([]T, 256)
	for {
		n, readErr := r.Read(buf)
		out = append(out, buf[:n]...)
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("read parquet rows: %w", readErr)
		}
	}
	return out, nil
}
