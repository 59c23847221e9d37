package engine

import "errors"

var (
	// ErrInvalidWorkers indicates a negative worker count.
	ErrInvalidWorkers = errors.New("engine: worker count must not be negative")

	// ErrInvalidViewport indicates a viewport with a negative or non-finite side.
	ErrInvalidViewport = errors.New("engine: viewport must have positive width and height")

	// ErrClosed is returned by operations on an engine after Close.
	ErrClosed = errors.New("engine: closed")

	// ErrSlotsSaturated indicates a spawn gave up because every free frame slot
	// already carries a pending effect.
	ErrSlotsSaturated = errors.New("engine: no free frame slot for effect")
)
