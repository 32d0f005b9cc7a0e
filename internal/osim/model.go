package osim

import (
	"fmt"
	"strings"
)

// Output is a named, typed, computable value exposed by a node. Stage is the
// minimum realization stage the value depends on; Eval must only be called on
// a context realized at least that far.
type Output struct {
	Name  string
	Type  ValueType
	Stage Stage
	Eval  func(*Context) Value
}

// Actuator marks a node as an actuator. Channels consecutive slots of the raw
// control vector belong to it, starting at its offset. Actuators with
// AppliesForce == false occupy control slots but contribute no force and are
// excluded from control-name generation.
type Actuator struct {
	Channels     int
	AppliesForce bool
	offset       int
}

// Offset is the raw control-vector index of the actuator's first channel.
func (a *Actuator) Offset() int { return a.offset }

type discreteVar struct {
	name string
	def  float64
}

// Node is one component in the tree. Nodes are created through
// [Model.Root] and [Node.AddChild] and are immutable once the model is in use.
type Node struct {
	model     *Model
	index     int
	path      string
	name      string
	stateVars []string
	discrete  []discreteVar
	outputs   []Output
	actuator  *Actuator
}

func (n *Node) Name() string { return n.name }

// Path is the node's absolute path, e.g. "/forceset/soleus". The root's path
// is "/".
func (n *Node) Path() string { return n.path }

func (n *Node) Outputs() []Output { return n.outputs }

// Output looks up a declared output by name.
func (n *Node) Output(name string) (Output, bool) {
	for _, out := range n.outputs {
		if out.Name == name {
			return out, true
		}
	}
	return Output{}, false
}

// OutputPath is the absolute path of a named output on this node.
func (n *Node) OutputPath(name string) string {
	if n.path == "/" {
		return "/" + name
	}
	return n.path + "/" + name
}

func (n *Node) StateVars() []string { return n.stateVars }

func (n *Node) DiscreteVars() []string {
	names := make([]string, len(n.discrete))
	for i, dv := range n.discrete {
		names[i] = dv.name
	}
	return names
}

// Actuator returns the node's actuator descriptor, or nil for non-actuator
// nodes.
func (n *Node) Actuator() *Actuator { return n.actuator }

// AddChild creates a child node. Children keep creation order; the tree's
// natural iteration order is depth-first creation order.
func (n *Node) AddChild(name string) *Node {
	path := "/" + name
	if n.path != "/" {
		path = n.path + "/" + name
	}
	child := &Node{
		model: n.model,
		index: len(n.model.nodes),
		path:  path,
		name:  name,
	}
	n.model.nodes = append(n.model.nodes, child)
	n.model.pathIndex[path] = child.index
	return child
}

// AddStateVar declares a continuous state variable on the node and assigns it
// the next raw state-vector slot.
func (n *Node) AddStateVar(name string) {
	n.stateVars = append(n.stateVars, name)
	n.model.layout = append(n.model.layout, StateSlot{
		Path: n.path + "/" + name,
	})
}

// AddDiscreteVar declares a discrete variable with a default value. Discrete
// values live on the evaluation context, not in the state vector.
func (n *Node) AddDiscreteVar(name string, def float64) {
	n.discrete = append(n.discrete, discreteVar{name: name, def: def})
}

func (n *Node) AddOutput(name string, t ValueType, stage Stage, eval func(*Context) Value) {
	n.outputs = append(n.outputs, Output{Name: name, Type: t, Stage: stage, Eval: eval})
}

// SetActuator marks the node as an actuator with the given channel count,
// allocating the next Channels slots of the raw control vector.
func (n *Node) SetActuator(channels int, appliesForce bool) *Actuator {
	n.actuator = &Actuator{
		Channels:     channels,
		AppliesForce: appliesForce,
		offset:       n.model.numControls,
	}
	n.model.numControls += channels
	return n.actuator
}

// SetControlSlot overrides the actuator's raw control offset. It models
// systems whose control storage order diverges from actuator iteration order;
// such models fail the engine's control-order check.
func (n *Node) SetControlSlot(offset int) {
	n.actuator.offset = offset
}

// StateSlot describes one position of the raw state vector. Placeholder slots
// (e.g. redundant rotational representations) carry no state variable and are
// excluded from name/slot maps.
type StateSlot struct {
	Path        string
	Placeholder bool
}

// Model is an arena of nodes with a path index built at construction. Once a
// replay starts the model is read-only; all mutation goes through contexts.
type Model struct {
	name        string
	nodes       []*Node
	pathIndex   map[string]int
	layout      []StateSlot
	numControls int
	gravity     Vec3
	prescribers []func(*Context)
	realizers   [StageReport + 1][]func(*Context)
}

func NewModel(name string) *Model {
	m := &Model{
		name:      name,
		pathIndex: make(map[string]int),
	}
	root := &Node{model: m, index: 0, path: "/", name: name}
	m.nodes = append(m.nodes, root)
	m.pathIndex["/"] = 0
	return m
}

func (m *Model) Name() string { return m.name }

func (m *Model) Root() *Node { return m.nodes[0] }

// Nodes returns every node in the tree's natural iteration order, root first.
func (m *Model) Nodes() []*Node { return m.nodes }

// Resolve maps an absolute path to its node. A missing leading slash is
// tolerated.
func (m *Model) Resolve(path string) (*Node, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	i, ok := m.pathIndex[path]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnresolvedPath, path)
	}
	return m.nodes[i], nil
}

// Actuators returns the actuator nodes in native iteration order.
func (m *Model) Actuators() []*Node {
	var acts []*Node
	for _, n := range m.nodes {
		if n.actuator != nil {
			acts = append(acts, n)
		}
	}
	return acts
}

// Layout describes the raw state vector, placeholders included, in system
// order.
func (m *Model) Layout() []StateSlot { return m.layout }

// AddPlaceholderSlot appends an unused slot to the raw state vector.
func (m *Model) AddPlaceholderSlot() {
	m.layout = append(m.layout, StateSlot{Placeholder: true})
}

// RawStateLen is the full state-vector length, placeholder slots included.
func (m *Model) RawStateLen() int { return len(m.layout) }

func (m *Model) PlaceholderCount() int {
	count := 0
	for _, s := range m.layout {
		if s.Placeholder {
			count++
		}
	}
	return count
}

// YIndex returns the raw slot of a state variable path, or -1 if the path
// names no state variable.
func (m *Model) YIndex(statePath string) int {
	for i, s := range m.layout {
		if !s.Placeholder && s.Path == statePath {
			return i
		}
	}
	return -1
}

// MustYIndex is YIndex for model builders; it panics on an unknown path.
func (m *Model) MustYIndex(statePath string) int {
	i := m.YIndex(statePath)
	if i < 0 {
		panic(fmt.Sprintf("osim: no state variable %q in model %q", statePath, m.name))
	}
	return i
}

func (m *Model) NumControls() int { return m.numControls }

func (m *Model) SetGravity(g Vec3) { m.gravity = g }

func (m *Model) Gravity() Vec3 { return m.gravity }

// AddPrescriber registers prescribed-motion enforcement applied to a context
// after its state is loaded, before any realization.
func (m *Model) AddPrescriber(fn func(*Context)) {
	m.prescribers = append(m.prescribers, fn)
}

// OnRealize registers a hook run when a context crosses into the given stage.
// Hooks typically fill the context scratch cache with stage-derived
// quantities read by output evaluators.
func (m *Model) OnRealize(s Stage, fn func(*Context)) {
	m.realizers[s] = append(m.realizers[s], fn)
}
