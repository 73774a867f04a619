package domain

import "go.trai.ch/zerr"

var (
	// ErrNoRoot is returned when an operation requires a current root
	// identity and none is set. Query methods fail open instead of
	// surfacing it to the feed.
	ErrNoRoot = zerr.New("no root identity set")

	// ErrInvalidParams is returned when engine parameters fail validation.
	ErrInvalidParams = zerr.New("invalid engine parameters")

	// ErrInvalidIdentity is returned when a supplied identity is not a
	// plausible public key.
	ErrInvalidIdentity = zerr.New("invalid identity")
)
