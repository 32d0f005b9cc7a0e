package table

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// ReadCSV loads a table from a CSV file whose first column is "time" and
// whose remaining header cells are column labels.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("table: reading %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("table: %s is empty", path)
	}

	header := records[0]
	if len(header) < 1 || header[0] != "time" {
		return nil, fmt.Errorf("table: %s: first column must be %q", path, "time")
	}

	t, err := New(header[1:])
	if err != nil {
		return nil, err
	}

	for line, rec := range records[1:] {
		vals := make([]float64, len(rec))
		for i, cell := range rec {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("table: %s line %d: %w", path, line+2, err)
			}
			vals[i] = v
		}
		if err := t.AppendRow(vals[0], vals[1:]); err != nil {
			return nil, fmt.Errorf("table: %s line %d: %w", path, line+2, err)
		}
	}
	return t, nil
}

// WriteCSV saves the table with a "time" column first.
func (t *Table) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := append([]string{"time"}, t.labels...)
	if err := w.Write(header); err != nil {
		return err
	}

	for i, row := range t.rows {
		rec := make([]string, 0, len(row)+1)
		rec = append(rec, strconv.FormatFloat(t.times[i], 'f', 6, 64))
		for _, v := range row {
			rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return w.Error()
}
