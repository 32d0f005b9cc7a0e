package models

import (
	"math"

	"github.com/san-kum/replaylab/internal/osim"
)

// NewGimbal builds a three-axis gimbal platform. Its ball joint stores a
// redundant rotational representation, leaving one placeholder slot in the
// raw state vector, and its drive actuator has three control channels, so the
// generated control names are drive_0, drive_1, drive_2. The brake actuator
// occupies a control slot but applies no force.
func NewGimbal() *osim.Model {
	m := osim.NewModel("gimbal")
	m.SetGravity(osim.Vec3{0, -9.80665, 0})

	jointset := m.Root().AddChild("jointset")
	ball := jointset.AddChild("ball")
	ball.AddStateVar("q0")
	ball.AddStateVar("q1")
	ball.AddStateVar("q2")
	// Unused fourth rotational slot.
	m.AddPlaceholderSlot()
	ball.AddStateVar("w0")
	ball.AddStateVar("w1")
	ball.AddStateVar("w2")

	iq := [3]int{
		m.MustYIndex("/jointset/ball/q0"),
		m.MustYIndex("/jointset/ball/q1"),
		m.MustYIndex("/jointset/ball/q2"),
	}
	iw := [3]int{
		m.MustYIndex("/jointset/ball/w0"),
		m.MustYIndex("/jointset/ball/w1"),
		m.MustYIndex("/jointset/ball/w2"),
	}

	forceset := m.Root().AddChild("forceset")
	drive := forceset.AddChild("drive")
	driveAct := drive.SetActuator(3, true)
	brake := forceset.AddChild("brake")
	brake.SetActuator(1, false)
	brake.AddDiscreteVar("engaged", 0)

	ball.AddOutput("orientation", osim.TypeVec3, osim.StagePosition, func(c *osim.Context) osim.Value {
		return osim.Vector(osim.Vec3{c.Y()[iq[0]], c.Y()[iq[1]], c.Y()[iq[2]]})
	})
	ball.AddOutput("angular_velocity", osim.TypeVec3, osim.StageVelocity, func(c *osim.Context) osim.Value {
		return osim.Vector(osim.Vec3{c.Y()[iw[0]], c.Y()[iw[1]], c.Y()[iw[2]]})
	})

	drive.AddOutput("power", osim.TypeDouble, osim.StageDynamics, func(c *osim.Context) osim.Value {
		power := 0.0
		for axis := 0; axis < 3; axis++ {
			power += c.Control(driveAct.Offset()+axis) * c.Y()[iw[axis]]
		}
		return osim.Double(power)
	})

	brake.AddOutput("drag", osim.TypeDouble, osim.StageDynamics, func(c *osim.Context) osim.Value {
		engaged, _ := c.Discrete(brake, "engaged")
		w := math.Sqrt(c.Y()[iw[0]]*c.Y()[iw[0]] + c.Y()[iw[1]]*c.Y()[iw[1]] + c.Y()[iw[2]]*c.Y()[iw[2]])
		return osim.Double(-engaged * w)
	})

	return m
}
