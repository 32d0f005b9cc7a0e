package replay_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/san-kum/replaylab/internal/osim"
	"github.com/san-kum/replaylab/internal/replay"
)

func TestAnalyzeRowCountMismatch(t *testing.T) {
	m := newActuatedModel()
	states := mkTable(t, []string{"/jointset/slider/value"}, zeroRows(10, 1))
	controls := mkTable(t, []string{"m1"}, zeroRows(8, 1))

	_, err := replay.Analyze(m, states, controls, []string{".*output_const"}, osim.TypeDouble, nil)
	if !errors.Is(err, replay.ErrRowCountMismatch) {
		t.Fatalf("error = %v, want ErrRowCountMismatch", err)
	}

	var rce *replay.RowCountError
	if !errors.As(err, &rce) {
		t.Fatalf("error %v is not a *RowCountError", err)
	}
	if rce.ARows != 10 || rce.BRows != 8 {
		t.Errorf("counts = %d vs %d, want 10 vs 8", rce.ARows, rce.BRows)
	}
	if !strings.Contains(err.Error(), "10") || !strings.Contains(err.Error(), "8") {
		t.Errorf("message %q does not name both counts", err.Error())
	}
}

func TestAnalyzeDiscreteRowCountMismatch(t *testing.T) {
	m := newActuatedModel()
	states := mkTable(t, []string{"/jointset/slider/value"}, zeroRows(3, 1))
	controls := mkTable(t, []string{"m1"}, zeroRows(3, 1))
	discrete := mkTable(t, []string{"/forceset/m1/gain"}, zeroRows(2, 1))

	_, err := replay.Analyze(m, states, controls, []string{".*output_const"}, osim.TypeDouble,
		&replay.Options{Discrete: discrete})
	if !errors.Is(err, replay.ErrRowCountMismatch) {
		t.Fatalf("error = %v, want ErrRowCountMismatch", err)
	}
	var rce *replay.RowCountError
	if !errors.As(err, &rce) {
		t.Fatal("not a *RowCountError")
	}
	if rce.A != "discrete variables" {
		t.Errorf("offending pair starts with %q, want discrete variables", rce.A)
	}
}

func TestAnalyzeConstantOutput(t *testing.T) {
	m := newActuatedModel()
	states := mkTable(t, []string{"/jointset/slider/value"}, zeroRows(3, 1))
	controls := mkTable(t, []string{"m1"}, zeroRows(3, 1))

	rep, err := replay.Analyze(m, states, controls, []string{".*output_const"}, osim.TypeDouble, nil)
	if err != nil {
		t.Fatal(err)
	}

	if rep.NumRows() != 3 {
		t.Fatalf("NumRows = %d, want 3", rep.NumRows())
	}
	if rep.NumCols() != 1 {
		t.Fatalf("NumCols = %d, want 1 (%v)", rep.NumCols(), rep.Labels())
	}
	vals, err := rep.Doubles("/forceset/m1/output_const")
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range vals {
		if v != 2.5 {
			t.Errorf("row %d = %v, want 2.5", i, v)
		}
	}
	// Time alignment follows the trajectory.
	if rep.Times()[2] != states.Time(2) {
		t.Errorf("report time = %v, want %v", rep.Times()[2], states.Time(2))
	}
}

func TestAnalyzeAbsentControlIsZero(t *testing.T) {
	m := newActuatedModel()
	// m2 is missing from the controls table: its slot stays zero every row.
	states := mkTable(t, []string{"/jointset/slider/value"}, zeroRows(4, 1))
	controls := mkTable(t, []string{"m1"}, [][]float64{{0.3}, {0.6}, {0.9}, {1.2}})

	rep, err := replay.Analyze(m, states, controls,
		[]string{".*m1/activation", ".*m2/control"}, osim.TypeDouble, nil)
	if err != nil {
		t.Fatal(err)
	}

	m2vals, err := rep.Doubles("/forceset/m2/control")
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range m2vals {
		if v != 0 {
			t.Errorf("m2 control at row %d = %v, want 0", i, v)
		}
	}

	m1vals, err := rep.Doubles("/forceset/m1/activation")
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0.3, 0.6, 0.9, 1.2}
	for i, v := range m1vals {
		if v != want[i] {
			t.Errorf("m1 activation at row %d = %v, want %v", i, v, want[i])
		}
	}
}

func TestAnalyzeUnknownControlColumn(t *testing.T) {
	m := newActuatedModel()
	states := mkTable(t, []string{"/jointset/slider/value"}, zeroRows(2, 1))
	controls := mkTable(t, []string{"nosuch"}, zeroRows(2, 1))

	_, err := replay.Analyze(m, states, controls, []string{".*output_const"}, osim.TypeDouble, nil)
	if !errors.Is(err, replay.ErrUnknownLabel) {
		t.Fatalf("error = %v, want ErrUnknownLabel", err)
	}
	if !strings.Contains(err.Error(), "nosuch") {
		t.Errorf("message %q does not name the column", err.Error())
	}
}

func TestAnalyzeUnresolvedDiscretePath(t *testing.T) {
	m := newActuatedModel()
	states := mkTable(t, []string{"/jointset/slider/value"}, zeroRows(2, 1))
	controls := mkTable(t, []string{"m1"}, zeroRows(2, 1))
	discrete := mkTable(t, []string{"node1/dv1"}, zeroRows(2, 1))

	_, err := replay.Analyze(m, states, controls, []string{".*output_const"}, osim.TypeDouble,
		&replay.Options{Discrete: discrete})
	if !errors.Is(err, osim.ErrUnresolvedPath) {
		t.Fatalf("error = %v, want ErrUnresolvedPath", err)
	}
	if !strings.Contains(err.Error(), "node1/dv1") {
		t.Errorf("message %q does not name the offending label", err.Error())
	}
}

func TestAnalyzeUnknownDiscreteVariable(t *testing.T) {
	m := newActuatedModel()
	states := mkTable(t, []string{"/jointset/slider/value"}, zeroRows(2, 1))
	controls := mkTable(t, []string{"m1"}, zeroRows(2, 1))
	discrete := mkTable(t, []string{"/forceset/m1/nope"}, zeroRows(2, 1))

	_, err := replay.Analyze(m, states, controls, []string{".*output_const"}, osim.TypeDouble,
		&replay.Options{Discrete: discrete})
	if !errors.Is(err, osim.ErrUnknownVariable) {
		t.Fatalf("error = %v, want ErrUnknownVariable", err)
	}
}

func TestAnalyzeDiscreteApplied(t *testing.T) {
	m := newActuatedModel()
	states := mkTable(t, []string{"/jointset/slider/value"}, zeroRows(3, 1))
	controls := mkTable(t, []string{"m1"}, [][]float64{{1}, {1}, {1}})
	discrete := mkTable(t, []string{"/forceset/m1/gain"}, [][]float64{{1}, {2}, {3}})

	rep, err := replay.Analyze(m, states, controls, []string{".*activation"}, osim.TypeDouble,
		&replay.Options{Discrete: discrete})
	if err != nil {
		t.Fatal(err)
	}

	vals, err := rep.Doubles("/forceset/m1/activation")
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 2, 3}
	for i, v := range vals {
		if v != want[i] {
			t.Errorf("row %d = %v, want %v", i, v, want[i])
		}
	}
}

func TestAnalyzeOrderMismatchUpFront(t *testing.T) {
	m := newActuatedModel()
	n, err := m.Resolve("/forceset/m2")
	if err != nil {
		t.Fatal(err)
	}
	n.SetControlSlot(0)

	states := mkTable(t, []string{"/jointset/slider/value"}, zeroRows(2, 1))
	controls := mkTable(t, []string{"m1"}, zeroRows(2, 1))

	_, err = replay.Analyze(m, states, controls, []string{".*output_const"}, osim.TypeDouble, nil)
	if !errors.Is(err, replay.ErrOrderMismatch) {
		t.Fatalf("error = %v, want ErrOrderMismatch", err)
	}
}

func TestAnalyzeUnknownStateLabel(t *testing.T) {
	m := newActuatedModel()
	states := mkTable(t, []string{"/jointset/slider/bogus"}, zeroRows(2, 1))
	controls := mkTable(t, []string{"m1"}, zeroRows(2, 1))

	_, err := replay.Analyze(m, states, controls, []string{".*output_const"}, osim.TypeDouble, nil)
	if !errors.Is(err, replay.ErrUnknownLabel) {
		t.Fatalf("error = %v, want ErrUnknownLabel", err)
	}
}
