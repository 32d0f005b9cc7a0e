package replay

import (
	"fmt"
	"regexp"

	"github.com/san-kum/replaylab/internal/osim"
	"github.com/san-kum/replaylab/internal/table"
)

// SyntheticIMUAccelerations computes accelerometer-like signals for the given
// frames: each frame's linear acceleration with the model's gravitational
// acceleration subtracted, re-expressed in the frame's own basis. Frames must
// expose a vec3 "linear_acceleration" output and a mat3 "rotation" output
// (frame-to-ground); both require realization through the acceleration stage,
// so the model must carry correct mass properties.
//
// The states and controls tables follow the same contract as [Analyze].
func SyntheticIMUAccelerations(m *osim.Model, states, controls *table.Table, framePaths []string, opts *Options) (*Report, error) {
	accPatterns := make([]string, len(framePaths))
	rotPatterns := make([]string, len(framePaths))
	accLabels := make([]string, len(framePaths))
	rotLabels := make([]string, len(framePaths))
	paths := make([]string, len(framePaths))
	for i, p := range framePaths {
		node, err := m.Resolve(p)
		if err != nil {
			return nil, fmt.Errorf("replay: IMU frame: %w", err)
		}
		if _, ok := node.Output("linear_acceleration"); !ok {
			return nil, fmt.Errorf("replay: frame %s has no linear_acceleration output", node.Path())
		}
		if _, ok := node.Output("rotation"); !ok {
			return nil, fmt.Errorf("replay: frame %s has no rotation output", node.Path())
		}
		paths[i] = node.Path()
		accLabels[i] = node.OutputPath("linear_acceleration")
		rotLabels[i] = node.OutputPath("rotation")
		accPatterns[i] = regexp.QuoteMeta(accLabels[i])
		rotPatterns[i] = regexp.QuoteMeta(rotLabels[i])
	}

	accs, err := Analyze(m, states, controls, accPatterns, osim.TypeVec3, opts)
	if err != nil {
		return nil, err
	}
	rots, err := Analyze(m, states, controls, rotPatterns, osim.TypeMat3, opts)
	if err != nil {
		return nil, err
	}

	g := m.Gravity()
	rep := newReport(paths, accs.NumRows())
	vals := make([]osim.Value, len(paths))
	for i := 0; i < accs.NumRows(); i++ {
		for j := range paths {
			a, err := accs.At(i, accLabels[j])
			if err != nil {
				return nil, err
			}
			r, err := rots.At(i, rotLabels[j])
			if err != nil {
				return nil, err
			}
			vals[j] = osim.Vector(r.Matrix.Transpose().MulVec(a.Vector.Sub(g)))
		}
		rep.setRow(i, accs.Times()[i], vals)
	}
	return rep, nil
}
