package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// Saver writes a batch of rows in one format.
type Saver[T Row] interface {
	Save(rows []T, w io.Writer) error
	Extension() string
}

// NewSaver creates the implementation for format (csv, parquet, json).
func NewSaver[T Row](format string) (Saver[T], error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return CSVSaver[T]{}, nil
	case "parquet":
		return ParquetSaver[T]{}, nil
	case "json":
		return JSONSaver[T]{}, nil
	default:
		return nil, fmt.Errorf("export: unsupported format %q (use: csv, parquet, json)", format)
	}
}

// CSVSaver writes a header line followed by one line per row. Absent values are empty cells.
type CSVSaver[T Row] struct{}

func (CSVSaver[T]) Extension() string { return "csv" }

func (CSVSaver[T]) Save(rows []T, w io.Writer) error {
	cw := csv.NewWriter(w)
	var zero T
	if err := cw.Write(zero.CSVHeader()); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.CSVRecord()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// JSONSaver writes rows as an indented JSON array.
type JSONSaver[T Row] struct{}

func (JSONSaver[T]) Extension() string { return "json" }

func (JSONSaver[T]) Save(rows []T, w io.Writer) error {
	if rows == nil {
		rows = []T{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// ParquetSaver writes rows as a Parquet file.
type ParquetSaver[T Row] struct{}

func (ParquetSaver[T]) Extension() string { return "parquet" }

func (ParquetSaver[T]) Save(rows []T, w io.Writer) error {
	return parquet.Write(w, rows)
}
