package render

import "errors"

// Job failures leave the previously published frame in place; none of
// these are fatal to the process.
var (
	// ErrFrameTooLarge indicates the requested resolution exceeds the
	// pixel-buffer allocation limit.
	ErrFrameTooLarge = errors.New("render: requested frame exceeds pixel limit")

	// ErrEmptyFrame indicates a zero-area render request.
	ErrEmptyFrame = errors.New("render: requested frame has no pixels")
)
