package omap

import "errors"

var (
	// ErrInvalidOffset is returned when an offset lies outside [0, Len()].
	ErrInvalidOffset = errors.New("invalid offset")

	// ErrAnchorNotFound is returned when none of the anchor keys, or the anchor
	// value, is present in the map.
	ErrAnchorNotFound = errors.New("anchor not found")

	// ErrKeyNotFound is returned when a key to rename is not present.
	ErrKeyNotFound = errors.New("key not found")

	// ErrIndexOverflow is returned when a value needs the next integer key but
	// the largest integer key in use is already math.MaxInt64.
	ErrIndexOverflow = errors.New("no next integer key")
)
