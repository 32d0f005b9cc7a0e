// Package replay reconstructs a recorded state trajectory against a
// component model and reports selected outputs.
//
// The engine has four parts:
//
//   - index mapping: name/slot correspondences for the state and control
//     vectors ([StateIndexMap], [ControlNames], [ControlIndexMap])
//   - output selection: pattern-matched, type-filtered subscription of
//     model outputs ([BuildCatalog])
//   - the driver: row-by-row reconstruction, control and discrete-variable
//     assignment, stage realization and capture ([Analyze])
//   - the report: a time-indexed table of captured values ([Report])
//
// # Example
//
//	m, _ := models.NewRegistry().Get("pendulum")
//	rep, err := replay.Analyze(m, states, controls,
//	        []string{".*speed"}, osim.TypeDouble, nil)
//
// # Thread Safety
//
// Analyze is synchronous. With Options.Workers > 1 rows are evaluated
// concurrently over private evaluation contexts; the model itself is only
// read. The resulting report is identical to a sequential replay.
package replay
