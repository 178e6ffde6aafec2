package sim

import "errors"

var (
	// ErrMissingPosition is returned when an edge endpoint has no Position component
	ErrMissingPosition = errors.New("endpoint has no position")

	// ErrSelfLoop is returned when an edge would connect a node to itself
	ErrSelfLoop = errors.New("edge endpoints are the same entity")

	// ErrInvalidEdge is returned for a non-finite rest length or a negative or non-finite stiffness
	ErrInvalidEdge = errors.New("invalid edge parameters")

	// ErrInvalidExtent is returned for negative or non-finite arena dimensions
	ErrInvalidExtent = errors.New("invalid arena extent")

	// ErrTickInProgress is returned when a tick is requested while another is running
	ErrTickInProgress = errors.New("tick already in progress")
)
