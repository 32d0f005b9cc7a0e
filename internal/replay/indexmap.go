package replay

import (
	"fmt"

	"github.com/san-kum/replaylab/internal/osim"
)

// StateNames returns the model's state-variable paths in system order,
// placeholder slots excluded.
func StateNames(m *osim.Model) []string {
	names := make([]string, 0, m.RawStateLen()-m.PlaceholderCount())
	for _, slot := range m.Layout() {
		if slot.Placeholder {
			continue
		}
		names = append(names, slot.Path)
	}
	return names
}

// StateIndexMap maps each state-variable path to its slot in the raw state
// vector. The map is a bijection; its size is the raw state length minus the
// placeholder count.
func StateIndexMap(m *osim.Model) map[string]int {
	idx := make(map[string]int, m.RawStateLen()-m.PlaceholderCount())
	for i, slot := range m.Layout() {
		if slot.Placeholder {
			continue
		}
		idx[slot.Path] = i
	}
	return idx
}

// ControlNames generates control names for the model's force-applying
// actuators in native iteration order. Single-channel actuators contribute
// their name as-is; multi-channel actuators contribute "name_0", "name_1", …
// The returned indices slice is parallel to names and holds each control's
// slot in the model's raw control vector.
func ControlNames(m *osim.Model) (names []string, indices []int) {
	for _, n := range m.Actuators() {
		a := n.Actuator()
		if !a.AppliesForce {
			continue
		}
		if a.Channels == 1 {
			names = append(names, n.Name())
			indices = append(indices, a.Offset())
			continue
		}
		for c := 0; c < a.Channels; c++ {
			names = append(names, fmt.Sprintf("%s_%d", n.Name(), c))
			indices = append(indices, a.Offset()+c)
		}
	}
	return names, indices
}

// CheckControlOrder verifies that the model's control storage order matches
// its actuator iteration order. Every downstream control assignment relies on
// this; a divergence is reported once, before any replay begins.
func CheckControlOrder(m *osim.Model) error {
	next := 0
	for _, n := range m.Actuators() {
		a := n.Actuator()
		if a.Offset() != next {
			return &OrderError{Actuator: n.Path(), Want: next, Got: a.Offset()}
		}
		next += a.Channels
	}
	return nil
}

// ControlIndexMap maps each generated control name to its raw control-vector
// index. It fails with an order error if the model's control ordering
// diverges from its actuator ordering.
func ControlIndexMap(m *osim.Model) (map[string]int, error) {
	if err := CheckControlOrder(m); err != nil {
		return nil, err
	}
	names, indices := ControlNames(m)
	idx := make(map[string]int, len(names))
	for i, name := range names {
		idx[name] = indices[i]
	}
	return idx, nil
}
