package replay

import (
	"errors"
	"fmt"

	"github.com/san-kum/replaylab/internal/osim"
)

// Domain errors for replay operations.
var (
	// ErrRowCountMismatch indicates input tables that disagree in row count.
	ErrRowCountMismatch = errors.New("replay: row count mismatch")

	// ErrOrderMismatch indicates a model whose control storage order diverges
	// from its actuator iteration order.
	ErrOrderMismatch = errors.New("replay: control order mismatch")

	// ErrTypeMismatch indicates an output whose declared type disagrees with
	// the requested type. It is surfaced as a diagnostic, never as a failure.
	ErrTypeMismatch = errors.New("replay: output type mismatch")

	// ErrUnknownLabel indicates a table column that names no model variable.
	ErrUnknownLabel = errors.New("replay: label matches no model variable")
)

// RowCountError reports the offending pair of tables and their row counts.
type RowCountError struct {
	A     string
	ARows int
	B     string
	BRows int
}

func (e *RowCountError) Error() string {
	return fmt.Sprintf(
		"replay: expected %s and %s to contain the same number of rows, but %s contains %d rows and %s contains %d rows",
		e.A, e.B, e.A, e.ARows, e.B, e.BRows)
}

func (e *RowCountError) Unwrap() error { return ErrRowCountMismatch }

// OrderError reports the first actuator whose control slot diverges from the
// native iteration order.
type OrderError struct {
	Actuator string
	Want     int
	Got      int
}

func (e *OrderError) Error() string {
	return fmt.Sprintf(
		"replay: actuator %s occupies control slot %d, expected %d; control order does not match actuator order",
		e.Actuator, e.Got, e.Want)
}

func (e *OrderError) Unwrap() error { return ErrOrderMismatch }

// TypeError reports a matched output skipped because of its declared type.
type TypeError struct {
	Path     string
	Declared osim.ValueType
	Want     osim.ValueType
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("replay: ignoring output %s of type %s (requested %s)",
		e.Path, e.Declared, e.Want)
}

func (e *TypeError) Unwrap() error { return ErrTypeMismatch }
