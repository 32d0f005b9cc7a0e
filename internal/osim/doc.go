// Package osim provides the hierarchical component model consumed by the
// replay engine.
//
// The package defines the component tree and its evaluation machinery:
//
//   - [Model]: arena of named nodes with a path index built at construction
//   - [Node]: tree node exposing outputs, state variables, discrete
//     variables and, for actuators, channel count and a force-apply flag
//   - [Output]: named, typed, computable value with a minimum
//     realization stage
//   - [Context]: mutable evaluation context holding the raw state vector,
//     control vector, discrete variable values and the current stage
//   - [Stage]: monotonic realization pipeline
//     (Instantiated → Position → Velocity → Dynamics → Acceleration → Report)
//
// # Thread Safety
//
// A Model is immutable once built and safe for concurrent reads. Context
// instances are NOT thread-safe; parallel evaluation requires one private
// Context per goroutine (see [Context.Clone]).
package osim
