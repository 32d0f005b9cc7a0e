package replay

import (
	"github.com/san-kum/replaylab/internal/osim"
	"github.com/san-kum/replaylab/internal/table"
)

// Trajectory is an ordered, time-stamped sequence of raw state vectors,
// immutable once built.
type Trajectory struct {
	times []float64
	rows  [][]float64
}

func (t *Trajectory) Len() int { return len(t.rows) }

func (t *Trajectory) Time(i int) float64 { return t.times[i] }

// Row returns row i's raw state vector, placeholder slots included. The slice
// aliases the trajectory's storage; callers must copy before mutating.
func (t *Trajectory) Row(i int) []float64 { return t.rows[i] }

// TrajectoryFromTable reconstructs full raw state vectors from a states table
// whose column labels are state-variable paths. Labels that name no state
// variable are fatal; state variables absent from the table, and placeholder
// slots, stay at zero.
func TrajectoryFromTable(m *osim.Model, states *table.Table) (*Trajectory, error) {
	if err := CheckStateLabels(m, states.Labels()); err != nil {
		return nil, err
	}
	idx := StateIndexMap(m)
	slots := make([]int, states.NumCols())
	for i, lbl := range states.Labels() {
		slots[i] = idx[lbl]
	}

	traj := &Trajectory{
		times: append([]float64(nil), states.Times()...),
		rows:  make([][]float64, states.NumRows()),
	}
	for i := range traj.rows {
		y := make([]float64, m.RawStateLen())
		row := states.Row(i)
		for j, slot := range slots {
			y[slot] = row[j]
		}
		traj.rows[i] = y
	}
	return traj, nil
}
