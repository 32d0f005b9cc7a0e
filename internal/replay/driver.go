package replay

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/san-kum/replaylab/internal/osim"
	"github.com/san-kum/replaylab/internal/table"
)

// Options configure a replay. The zero value replays sequentially with no
// discrete-variable overrides, warning to stderr.
type Options struct {
	// Discrete optionally supplies per-row discrete-variable overrides. Its
	// column labels have the form "<component path>/<variable name>".
	Discrete *table.Table

	// Workers > 1 evaluates rows concurrently over private evaluation
	// contexts. The report is identical to a sequential replay.
	Workers int

	// Warnf receives non-fatal diagnostics (skipped outputs). Defaults to
	// stderr.
	Warnf func(format string, args ...any)
}

func (o *Options) warnf() func(format string, args ...any) {
	if o.Warnf != nil {
		return o.Warnf
	}
	return func(format string, args ...any) {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// discreteBinding is one discrete-variable column resolved to its owning
// node. Resolution happens once, before the loop: topology is fixed for the
// duration of a replay.
type discreteBinding struct {
	label string
	node  *osim.Node
	name  string
	col   []float64
}

// Analyze replays a recorded trajectory and reports the requested outputs.
//
// The states table supplies one full state per row; the controls table sets
// the model's control vector (controls absent from the table are zero); the
// optional discrete-variable table overrides named discrete variables per
// row. Output patterns are whole-string regular expressions matched against
// output paths; matched outputs of a type other than want are skipped with a
// diagnostic.
//
// The trajectory is not modified to satisfy kinematic constraints, but
// prescribed motion registered on the model is enforced. Supplying a
// trajectory that violates the model's constraints yields incorrect outputs;
// that is the caller's responsibility.
func Analyze(m *osim.Model, states, controls *table.Table, patterns []string, want osim.ValueType, opts *Options) (*Report, error) {
	if opts == nil {
		opts = &Options{}
	}

	cat, err := BuildCatalog(m, patterns, want, opts.warnf())
	if err != nil {
		return nil, err
	}

	controlMap, err := ControlIndexMap(m)
	if err != nil {
		return nil, err
	}

	// All structural checks run before row 0; no partial report is emitted.
	if states.NumRows() != controls.NumRows() {
		return nil, &RowCountError{
			A: "states", ARows: states.NumRows(),
			B: "controls", BRows: controls.NumRows(),
		}
	}
	if opts.Discrete != nil && opts.Discrete.NumRows() != states.NumRows() {
		return nil, &RowCountError{
			A: "discrete variables", ARows: opts.Discrete.NumRows(),
			B: "states", BRows: states.NumRows(),
		}
	}

	traj, err := TrajectoryFromTable(m, states)
	if err != nil {
		return nil, err
	}

	controlSlots := make([]int, controls.NumCols())
	for i, lbl := range controls.Labels() {
		slot, ok := controlMap[lbl]
		if !ok {
			return nil, fmt.Errorf("%w: control column %q", ErrUnknownLabel, lbl)
		}
		controlSlots[i] = slot
	}

	bindings, err := resolveDiscrete(m, opts.Discrete)
	if err != nil {
		return nil, err
	}

	rep := newReport(cat.Labels(), traj.Len())
	if opts.Workers > 1 {
		err = replayParallel(m, traj, controls, controlSlots, bindings, cat, rep, opts.Workers)
	} else {
		err = replaySequential(m, traj, controls, controlSlots, bindings, cat, rep)
	}
	if err != nil {
		return nil, err
	}
	return rep, nil
}

// resolveDiscrete splits each discrete-variable column label into an owning
// node path and a variable name and resolves both against the model.
// Malformed or unresolvable labels are fatal: the engine cannot silently
// proceed with a wrong or missing value.
func resolveDiscrete(m *osim.Model, dt *table.Table) ([]discreteBinding, error) {
	if dt == nil {
		return nil, nil
	}
	bindings := make([]discreteBinding, 0, dt.NumCols())
	for _, label := range dt.Labels() {
		slash := strings.LastIndex(label, "/")
		if slash <= 0 {
			return nil, fmt.Errorf("replay: discrete column %q: %w", label, osim.ErrUnresolvedPath)
		}
		node, err := m.Resolve(label[:slash])
		if err != nil {
			return nil, fmt.Errorf("replay: discrete column %q: %w", label, err)
		}
		name := label[slash+1:]
		if !slices.Contains(node.DiscreteVars(), name) {
			return nil, fmt.Errorf("replay: discrete column %q: %w: %q on %s",
				label, osim.ErrUnknownVariable, name, node.Path())
		}
		col, err := dt.Column(label)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, discreteBinding{label: label, node: node, name: name, col: col})
	}
	return bindings, nil
}

// replayRow reconstructs one trajectory row in ctx and captures the
// subscribed outputs into out. u is the caller's control-vector buffer.
func replayRow(ctx *osim.Context, traj *Trajectory, controls *table.Table, slots []int, bindings []discreteBinding, cat *Catalog, i int, u []float64, out []osim.Value) error {
	// Fresh per row: nothing carries over from the previous row other than
	// what the trajectory itself encodes.
	ctx.Time = traj.Time(i)
	if err := ctx.SetState(traj.Row(i)); err != nil {
		return err
	}
	ctx.Prescribe()

	// Controls may depend on velocity-derived quantities.
	ctx.Realize(osim.StageVelocity)

	for j := range u {
		u[j] = 0
	}
	row := controls.Row(i)
	for j, slot := range slots {
		u[slot] = row[j]
	}
	if err := ctx.SetControls(u); err != nil {
		return err
	}

	for _, b := range bindings {
		if err := ctx.SetDiscrete(b.node, b.name, b.col[i]); err != nil {
			return err
		}
	}

	ctx.Realize(osim.StageReport)

	for k, sub := range cat.Subscriptions() {
		out[k] = sub.Output.Eval(ctx)
	}
	return nil
}

func replaySequential(m *osim.Model, traj *Trajectory, controls *table.Table, slots []int, bindings []discreteBinding, cat *Catalog, rep *Report) error {
	ctx := m.NewContext()
	u := make([]float64, m.NumControls())
	out := make([]osim.Value, cat.Len())
	for i := 0; i < traj.Len(); i++ {
		if err := replayRow(ctx, traj, controls, slots, bindings, cat, i, u, out); err != nil {
			return fmt.Errorf("replay: row %d: %w", i, err)
		}
		rep.setRow(i, traj.Time(i), out)
	}
	return nil
}
