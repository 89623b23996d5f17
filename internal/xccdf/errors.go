package xccdf

import "errors"

var (
	// ErrWrongComponentType indicates the component handed to the
	// benchmark parser does not embed an XCCDF benchmark.
	ErrWrongComponentType = errors.New("component is not an XCCDF benchmark")

	// ErrCyclicInheritance indicates a profile extends chain loops back
	// on itself.
	ErrCyclicInheritance = errors.New("cyclic profile inheritance")

	// ErrDanglingProfile indicates an extends attribute names a profile
	// the benchmark does not declare.
	ErrDanglingProfile = errors.New("profile extends an unknown profile")

	// ErrProfileNotFound indicates a queried profile id is absent from
	// the benchmark.
	ErrProfileNotFound = errors.New("profile not found")
)
