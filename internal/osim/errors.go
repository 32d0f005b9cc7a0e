package osim

import "errors"

// Domain errors for component-tree operations.
var (
	// ErrUnresolvedPath indicates a path that names no component in the tree.
	ErrUnresolvedPath = errors.New("osim: no component at path")

	// ErrUnknownVariable indicates a discrete variable name a node does not own.
	ErrUnknownVariable = errors.New("osim: unknown discrete variable")

	// ErrDimensionMismatch indicates a vector whose length disagrees with the
	// model's layout.
	ErrDimensionMismatch = errors.New("osim: dimension mismatch")
)
