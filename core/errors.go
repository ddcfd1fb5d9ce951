// core/errors.go
package core

import "errors"

var (
	// ErrConfiguration marks invalid inputs caught before any simulation
	// work starts (bad orbital elements, station coordinates, time steps).
	ErrConfiguration = errors.New("invalid configuration")

	// ErrDegenerateGeometry marks measure-zero geometric coincidences such
	// as a near-zero slant range. Callers inside the engine clamp and
	// continue; the sentinel exists for components that prefer to surface it.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
)
