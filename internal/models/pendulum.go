package models

import (
	"math"

	"github.com/san-kum/replaylab/internal/osim"
)

const (
	pendulumMass    = 1.0
	pendulumLength  = 1.0
	pendulumGravity = 9.80665
)

// NewPendulum builds a planar point-mass pendulum driven by a torque
// actuator. State variables live on /jointset/pin; the torque actuator on
// /forceset/torque scales its control by the discrete variable "scale"; the
// bob frame on /bodyset/bob exposes position-, velocity- and
// acceleration-stage outputs, including the vec3 linear acceleration and
// mat3 rotation consumed by the IMU utility.
func NewPendulum() *osim.Model {
	m := osim.NewModel("pendulum")
	m.SetGravity(osim.Vec3{0, -pendulumGravity, 0})

	jointset := m.Root().AddChild("jointset")
	pin := jointset.AddChild("pin")
	pin.AddStateVar("value")
	pin.AddStateVar("speed")
	iVal := m.MustYIndex("/jointset/pin/value")
	iSpd := m.MustYIndex("/jointset/pin/speed")

	forceset := m.Root().AddChild("forceset")
	torque := forceset.AddChild("torque")
	torque.SetActuator(1, true)
	torque.AddDiscreteVar("scale", 1.0)

	bodyset := m.Root().AddChild("bodyset")
	bob := bodyset.AddChild("bob")

	m.OnRealize(osim.StageDynamics, func(c *osim.Context) {
		scale, _ := c.Discrete(torque, "scale")
		c.Scratch()["torque/actuation"] = c.Control(0) * scale
	})
	m.OnRealize(osim.StageAcceleration, func(c *osim.Context) {
		theta := c.Y()[iVal]
		omega := c.Y()[iSpd]
		tau := c.Scratch()["torque/actuation"]
		alpha := -(pendulumGravity/pendulumLength)*math.Sin(theta) +
			tau/(pendulumMass*pendulumLength*pendulumLength)
		c.Scratch()["pin/alpha"] = alpha
		c.Scratch()["bob/ax"] = pendulumLength * (alpha*math.Cos(theta) - omega*omega*math.Sin(theta))
		c.Scratch()["bob/ay"] = pendulumLength * (alpha*math.Sin(theta) + omega*omega*math.Cos(theta))
	})

	pin.AddOutput("value", osim.TypeDouble, osim.StagePosition, func(c *osim.Context) osim.Value {
		return osim.Double(c.Y()[iVal])
	})
	pin.AddOutput("speed", osim.TypeDouble, osim.StageVelocity, func(c *osim.Context) osim.Value {
		return osim.Double(c.Y()[iSpd])
	})
	pin.AddOutput("acceleration", osim.TypeDouble, osim.StageAcceleration, func(c *osim.Context) osim.Value {
		return osim.Double(c.Scratch()["pin/alpha"])
	})

	torque.AddOutput("actuation", osim.TypeDouble, osim.StageDynamics, func(c *osim.Context) osim.Value {
		return osim.Double(c.Scratch()["torque/actuation"])
	})

	bob.AddOutput("height", osim.TypeDouble, osim.StagePosition, func(c *osim.Context) osim.Value {
		return osim.Double(-pendulumLength * math.Cos(c.Y()[iVal]))
	})
	bob.AddOutput("kinetic_energy", osim.TypeDouble, osim.StageVelocity, func(c *osim.Context) osim.Value {
		omega := c.Y()[iSpd]
		return osim.Double(0.5 * pendulumMass * pendulumLength * pendulumLength * omega * omega)
	})
	bob.AddOutput("linear_acceleration", osim.TypeVec3, osim.StageAcceleration, func(c *osim.Context) osim.Value {
		return osim.Vector(osim.Vec3{c.Scratch()["bob/ax"], c.Scratch()["bob/ay"], 0})
	})
	bob.AddOutput("rotation", osim.TypeMat3, osim.StagePosition, func(c *osim.Context) osim.Value {
		theta := c.Y()[iVal]
		sin, cos := math.Sin(theta), math.Cos(theta)
		return osim.Matrix(osim.Mat3{
			cos, -sin, 0,
			sin, cos, 0,
			0, 0, 1,
		})
	})

	return m
}
