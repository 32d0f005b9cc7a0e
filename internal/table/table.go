// Package table provides the column-labeled, time-indexed tables the replay
// engine consumes and produces, plus CSV load/save.
package table

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateLabel indicates a repeated column label.
	ErrDuplicateLabel = errors.New("table: duplicate column label")

	// ErrUnknownLabel indicates a column label the table does not contain.
	ErrUnknownLabel = errors.New("table: unknown column label")

	// ErrRowShape indicates a row whose length disagrees with the column set.
	ErrRowShape = errors.New("table: row length does not match column count")
)

// Table is an ordered-row, named-column time series. Columns are fixed at
// construction; rows are append-only.
type Table struct {
	labels   []string
	colIndex map[string]int
	times    []float64
	rows     [][]float64
}

func New(labels []string) (*Table, error) {
	idx := make(map[string]int, len(labels))
	for i, lbl := range labels {
		if _, ok := idx[lbl]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLabel, lbl)
		}
		idx[lbl] = i
	}
	return &Table{
		labels:   append([]string(nil), labels...),
		colIndex: idx,
	}, nil
}

func (t *Table) NumRows() int { return len(t.rows) }

func (t *Table) NumCols() int { return len(t.labels) }

func (t *Table) Labels() []string { return t.labels }

func (t *Table) HasColumn(label string) bool {
	_, ok := t.colIndex[label]
	return ok
}

// Time returns the timestamp of row i.
func (t *Table) Time(i int) float64 { return t.times[i] }

func (t *Table) Times() []float64 { return t.times }

// Row returns row i's values in column order. The slice aliases the table's
// storage; callers must not modify it.
func (t *Table) Row(i int) []float64 { return t.rows[i] }

// At returns the value at row i of the labeled column.
func (t *Table) At(i int, label string) (float64, error) {
	col, ok := t.colIndex[label]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	return t.rows[i][col], nil
}

// Column returns the labeled column as a slice, one value per row.
func (t *Table) Column(label string) ([]float64, error) {
	col, ok := t.colIndex[label]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	out := make([]float64, len(t.rows))
	for i, row := range t.rows {
		out[i] = row[col]
	}
	return out, nil
}

// AppendRow appends a timestamped row. The row is copied.
func (t *Table) AppendRow(time float64, vals []float64) error {
	if len(vals) != len(t.labels) {
		return fmt.Errorf("%w: got %d values for %d columns",
			ErrRowShape, len(vals), len(t.labels))
	}
	t.times = append(t.times, time)
	t.rows = append(t.rows, append([]float64(nil), vals...))
	return nil
}
