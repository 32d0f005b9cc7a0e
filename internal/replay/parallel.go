package replay

import (
	"fmt"
	"sync"

	"github.com/san-kum/replaylab/internal/osim"
	"github.com/san-kum/replaylab/internal/table"
)

// replayParallel evaluates rows across workers. Rows are logically
// independent: every row fully overwrites the evaluation context from the
// trajectory, so each worker holds a private context and the model is only
// read. Captured rows land in the report by row index, not completion order.
func replayParallel(m *osim.Model, traj *Trajectory, controls *table.Table, slots []int, bindings []discreteBinding, cat *Catalog, rep *Report, workers int) error {
	if workers > traj.Len() {
		workers = traj.Len()
	}

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()

			ctx := m.NewContext()
			u := make([]float64, m.NumControls())
			out := make([]osim.Value, cat.Len())
			for i := w; i < traj.Len(); i += workers {
				if err := replayRow(ctx, traj, controls, slots, bindings, cat, i, u, out); err != nil {
					errs[w] = fmt.Errorf("replay: row %d: %w", i, err)
					return
				}
				rep.setRow(i, traj.Time(i), out)
			}
		}(w)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
