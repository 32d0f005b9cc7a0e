package osim

import "fmt"

// Context is the mutable evaluation context for one instant: the raw state
// vector, the control vector, discrete variable values and the current
// realization stage. A context belongs to exactly one goroutine at a time.
type Context struct {
	Time float64

	model    *Model
	y        []float64
	controls []float64
	discrete map[string]float64
	scratch  map[string]float64
	stage    Stage
}

// NewContext creates a fresh context: zero state, zero controls, discrete
// variables at their defaults, stage Instantiated.
func (m *Model) NewContext() *Context {
	c := &Context{
		model:    m,
		y:        make([]float64, len(m.layout)),
		controls: make([]float64, m.numControls),
		discrete: make(map[string]float64),
		scratch:  make(map[string]float64),
	}
	for _, n := range m.nodes {
		for _, dv := range n.discrete {
			c.discrete[n.path+"/"+dv.name] = dv.def
		}
	}
	return c
}

// Clone deep-copies the context for use by another goroutine.
func (c *Context) Clone() *Context {
	d := &Context{
		Time:     c.Time,
		model:    c.model,
		y:        append([]float64(nil), c.y...),
		controls: append([]float64(nil), c.controls...),
		discrete: make(map[string]float64, len(c.discrete)),
		scratch:  make(map[string]float64, len(c.scratch)),
		stage:    c.stage,
	}
	for k, v := range c.discrete {
		d.discrete[k] = v
	}
	for k, v := range c.scratch {
		d.scratch[k] = v
	}
	return d
}

func (c *Context) Stage() Stage { return c.stage }

// Y exposes the raw state vector, placeholder slots included. Output
// evaluators read it through indices captured at model construction.
func (c *Context) Y() []float64 { return c.y }

// SetState overwrites the full raw state vector and resets the context to
// StageInstantiated, discarding all stage-derived caches. This is the per-row
// reset: nothing survives from the previous row except what y itself encodes.
func (c *Context) SetState(y []float64) error {
	if len(y) != len(c.y) {
		return fmt.Errorf("%w: state has %d slots, model has %d",
			ErrDimensionMismatch, len(y), len(c.y))
	}
	copy(c.y, y)
	c.stage = StageInstantiated
	clear(c.scratch)
	return nil
}

func (c *Context) Controls() []float64 { return c.controls }

func (c *Context) Control(i int) float64 { return c.controls[i] }

func (c *Context) SetControls(u []float64) error {
	if len(u) != len(c.controls) {
		return fmt.Errorf("%w: control vector has %d slots, model has %d",
			ErrDimensionMismatch, len(u), len(c.controls))
	}
	copy(c.controls, u)
	return nil
}

// Discrete reads a node's named discrete variable.
func (c *Context) Discrete(n *Node, name string) (float64, error) {
	v, ok := c.discrete[n.path+"/"+name]
	if !ok {
		return 0, fmt.Errorf("%w: %q on %s", ErrUnknownVariable, name, n.path)
	}
	return v, nil
}

// SetDiscrete writes a node's named discrete variable.
func (c *Context) SetDiscrete(n *Node, name string, v float64) error {
	key := n.path + "/" + name
	if _, ok := c.discrete[key]; !ok {
		return fmt.Errorf("%w: %q on %s", ErrUnknownVariable, name, n.path)
	}
	c.discrete[key] = v
	return nil
}

// Scratch is the per-context cache filled by realization hooks and read by
// output evaluators. It is cleared on every SetState.
func (c *Context) Scratch() map[string]float64 { return c.scratch }

// Prescribe applies the model's prescribed-motion enforcement to the loaded
// state.
func (c *Context) Prescribe() {
	for _, fn := range c.model.prescribers {
		fn(c)
	}
}

// Realize advances the context to the given stage, running each crossed
// stage's hooks in registration order. Realizing at or below the current
// stage is a no-op.
func (c *Context) Realize(s Stage) {
	for c.stage < s {
		c.stage++
		for _, fn := range c.model.realizers[c.stage] {
			fn(c)
		}
	}
}
