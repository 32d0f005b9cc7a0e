package replay

import (
	"fmt"

	"github.com/san-kum/replaylab/internal/osim"
	"github.com/san-kum/replaylab/internal/table"
)

// Report is the column-oriented result of a replay: one column per subscribed
// output path in first-match order, one row per trajectory entry, with the
// trajectory's time stamps.
type Report struct {
	labels   []string
	colIndex map[string]int
	times    []float64
	cols     [][]osim.Value
}

func newReport(labels []string, rows int) *Report {
	idx := make(map[string]int, len(labels))
	cols := make([][]osim.Value, len(labels))
	for i, lbl := range labels {
		idx[lbl] = i
		cols[i] = make([]osim.Value, rows)
	}
	return &Report{
		labels:   labels,
		colIndex: idx,
		times:    make([]float64, rows),
		cols:     cols,
	}
}

// setRow stores one captured row. The column set is fixed at subscription
// time; vals is in subscription order.
func (r *Report) setRow(i int, t float64, vals []osim.Value) {
	r.times[i] = t
	for c := range r.cols {
		r.cols[c][i] = vals[c]
	}
}

func (r *Report) NumRows() int { return len(r.times) }

func (r *Report) NumCols() int { return len(r.cols) }

func (r *Report) Labels() []string { return r.labels }

func (r *Report) Times() []float64 { return r.times }

// At returns the captured value at a row of the labeled column.
func (r *Report) At(row int, label string) (osim.Value, error) {
	c, ok := r.colIndex[label]
	if !ok {
		return osim.Value{}, fmt.Errorf("%w: report column %q", ErrUnknownLabel, label)
	}
	return r.cols[c][row], nil
}

// Column returns the labeled column, one value per row.
func (r *Report) Column(label string) ([]osim.Value, error) {
	c, ok := r.colIndex[label]
	if !ok {
		return nil, fmt.Errorf("%w: report column %q", ErrUnknownLabel, label)
	}
	return r.cols[c], nil
}

// Doubles returns a scalar column as a float slice.
func (r *Report) Doubles(label string) ([]float64, error) {
	col, err := r.Column(label)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(col))
	for i, v := range col {
		if v.Type != osim.TypeDouble {
			return nil, fmt.Errorf("replay: report column %q holds %s values, not double",
				label, v.Type)
		}
		out[i] = v.Scalar
	}
	return out, nil
}

// Table flattens the report into a plain float table. Scalar columns keep
// their label; vec3 columns expand to label_x, label_y, label_z and mat3
// columns to label_00 … label_22.
func (r *Report) Table() (*table.Table, error) {
	if len(r.cols) == 0 {
		return table.New(nil)
	}

	var labels []string
	for c, lbl := range r.labels {
		switch r.colType(c) {
		case osim.TypeDouble:
			labels = append(labels, lbl)
		case osim.TypeVec3:
			labels = append(labels, lbl+"_x", lbl+"_y", lbl+"_z")
		case osim.TypeMat3:
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					labels = append(labels, fmt.Sprintf("%s_%d%d", lbl, i, j))
				}
			}
		}
	}

	t, err := table.New(labels)
	if err != nil {
		return nil, err
	}
	row := make([]float64, 0, len(labels))
	for i := range r.times {
		row = row[:0]
		for c := range r.cols {
			v := r.cols[c][i]
			switch v.Type {
			case osim.TypeDouble:
				row = append(row, v.Scalar)
			case osim.TypeVec3:
				row = append(row, v.Vector[0], v.Vector[1], v.Vector[2])
			case osim.TypeMat3:
				row = append(row, v.Matrix[:]...)
			}
		}
		if err := t.AppendRow(r.times[i], row); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (r *Report) colType(c int) osim.ValueType {
	if len(r.cols[c]) == 0 {
		return osim.TypeDouble
	}
	return r.cols[c][0].Type
}
