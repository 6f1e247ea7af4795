package shape

import "errors"

var (
	ErrNilDocument = errors.New("nil schema document")

	// ErrCycle and ErrUnresolved describe why Deref stopped. Neither is a
	// failure of the conversion run.
	ErrCycle      = errors.New("reference cycle")
	ErrUnresolved = errors.New("unresolved reference")
)
