// Package models provides the built-in component models available to the
// replaylab CLI.
package models

import (
	"fmt"
	"sort"

	"github.com/san-kum/replaylab/internal/osim"
)

type Registry struct {
	models map[string]func() *osim.Model
}

func NewRegistry() *Registry {
	r := &Registry{
		models: make(map[string]func() *osim.Model),
	}

	r.models["pendulum"] = NewPendulum
	r.models["gimbal"] = NewGimbal

	return r
}

// Get builds a fresh instance of a named model. The tree layout is rebuilt on
// every call; index maps and catalogs derived from one instance must not be
// reused with another.
func (r *Registry) Get(name string) (*osim.Model, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return fn(), nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
