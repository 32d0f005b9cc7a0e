package replay

import (
	"fmt"

	"github.com/san-kum/replaylab/internal/osim"
)

// CheckStateLabels errors if any label names no state variable in the model,
// or if a label repeats.
func CheckStateLabels(m *osim.Model, labels []string) error {
	idx := StateIndexMap(m)
	seen := make(map[string]bool, len(labels))
	for _, lbl := range labels {
		if seen[lbl] {
			return fmt.Errorf("replay: duplicate state label %q", lbl)
		}
		seen[lbl] = true
		if _, ok := idx[lbl]; !ok {
			return fmt.Errorf("%w: state label %q", ErrUnknownLabel, lbl)
		}
	}
	return nil
}
