package replay_test

import (
	"testing"

	"github.com/san-kum/replaylab/internal/osim"
	"github.com/san-kum/replaylab/internal/table"
)

// newActuatedModel builds the small tree most tests share: a slider joint
// with two state variables, actuators m1 (in the controls tables) and m2
// (deliberately left out of them), and outputs spanning both value types.
func newActuatedModel() *osim.Model {
	m := osim.NewModel("rig")

	slider := m.Root().AddChild("jointset").AddChild("slider")
	slider.AddStateVar("value")
	slider.AddStateVar("speed")
	iVal := m.MustYIndex("/jointset/slider/value")

	fs := m.Root().AddChild("forceset")

	m1 := fs.AddChild("m1")
	m1Act := m1.SetActuator(1, true)
	m1.AddDiscreteVar("gain", 1.0)
	m1.AddOutput("output_const", osim.TypeDouble, osim.StagePosition, func(c *osim.Context) osim.Value {
		return osim.Double(2.5)
	})
	m1.AddOutput("activation", osim.TypeDouble, osim.StageDynamics, func(c *osim.Context) osim.Value {
		gain, _ := c.Discrete(m1, "gain")
		return osim.Double(c.Control(m1Act.Offset()) * gain)
	})

	m2 := fs.AddChild("m2")
	m2Act := m2.SetActuator(1, true)
	m2.AddOutput("control", osim.TypeDouble, osim.StageDynamics, func(c *osim.Context) osim.Value {
		return osim.Double(c.Control(m2Act.Offset()))
	})

	marker := m.Root().AddChild("markerset").AddChild("tip")
	marker.AddOutput("location", osim.TypeVec3, osim.StagePosition, func(c *osim.Context) osim.Value {
		return osim.Vector(osim.Vec3{c.Y()[iVal], 0, 0})
	})

	return m
}

// mkTable builds a table with times 0, 0.1, 0.2, …
func mkTable(t *testing.T, labels []string, rows [][]float64) *table.Table {
	t.Helper()
	tab, err := table.New(labels)
	if err != nil {
		t.Fatal(err)
	}
	for i, row := range rows {
		if err := tab.AppendRow(float64(i)*0.1, row); err != nil {
			t.Fatal(err)
		}
	}
	return tab
}

// zeroRows builds n rows of width w, all zero.
func zeroRows(n, w int) [][]float64 {
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, w)
	}
	return rows
}
