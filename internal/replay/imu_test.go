package replay_test

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/replaylab/internal/models"
	"github.com/san-kum/replaylab/internal/osim"
	"github.com/san-kum/replaylab/internal/replay"
)

const gravAccel = 9.80665

func pendulumIMU(t *testing.T, thetas []float64) *replay.Report {
	t.Helper()
	m := models.NewPendulum()

	rows := make([][]float64, len(thetas))
	ctrl := make([][]float64, len(thetas))
	for i, th := range thetas {
		rows[i] = []float64{th, 0} // at rest
		ctrl[i] = []float64{0}
	}
	states := mkTable(t, []string{"/jointset/pin/value", "/jointset/pin/speed"}, rows)
	controls := mkTable(t, []string{"torque"}, ctrl)

	rep, err := replay.SyntheticIMUAccelerations(m, states, controls,
		[]string{"/bodyset/bob"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return rep
}

func TestSyntheticIMUHangingBob(t *testing.T) {
	// Bob at rest hanging straight down: zero true acceleration, so the
	// accelerometer reads pure reaction to gravity, +g along the frame's y.
	rep := pendulumIMU(t, []float64{0})

	v, err := rep.At(0, "/bodyset/bob")
	if err != nil {
		t.Fatal(err)
	}
	want := osim.Vec3{0, gravAccel, 0}
	for i := range want {
		if math.Abs(v.Vector[i]-want[i]) > 1e-9 {
			t.Fatalf("IMU at rest = %v, want %v", v.Vector, want)
		}
	}
}

func TestSyntheticIMUFreeFall(t *testing.T) {
	// Bob released horizontally with no speed: the instantaneous acceleration
	// equals gravity, so the accelerometer reads zero.
	rep := pendulumIMU(t, []float64{math.Pi / 2})

	v, err := rep.At(0, "/bodyset/bob")
	if err != nil {
		t.Fatal(err)
	}
	for i := range v.Vector {
		if math.Abs(v.Vector[i]) > 1e-9 {
			t.Fatalf("IMU in free fall = %v, want zero", v.Vector)
		}
	}
}

func TestSyntheticIMUUnknownFrame(t *testing.T) {
	m := models.NewPendulum()
	states := mkTable(t, []string{"/jointset/pin/value", "/jointset/pin/speed"}, zeroRows(1, 2))
	controls := mkTable(t, []string{"torque"}, zeroRows(1, 1))

	_, err := replay.SyntheticIMUAccelerations(m, states, controls,
		[]string{"/bodyset/nosuch"}, nil)
	if !errors.Is(err, osim.ErrUnresolvedPath) {
		t.Fatalf("error = %v, want ErrUnresolvedPath", err)
	}
}

func TestSyntheticIMUFrameWithoutOutputs(t *testing.T) {
	m := models.NewPendulum()
	states := mkTable(t, []string{"/jointset/pin/value", "/jointset/pin/speed"}, zeroRows(1, 2))
	controls := mkTable(t, []string{"torque"}, zeroRows(1, 1))

	// The pin joint has outputs but not the accelerometer pair.
	_, err := replay.SyntheticIMUAccelerations(m, states, controls,
		[]string{"/jointset/pin"}, nil)
	if err == nil {
		t.Fatal("expected error for frame without accelerometer outputs")
	}
}
