// Package domain contains the core domain models for the web-of-trust engine.
package domain

// Identity is an opaque, stable identifier for an actor in the follow graph,
// typically a hex-encoded public key. Nothing beyond equality and hashing is
// assumed about its structure.
type Identity string

// String returns the raw identity string.
func (i Identity) String() string { return string(i) }

// Short returns an abbreviated form suitable for log lines and progress
// labels (first 8 characters of the key).
func (i Identity) Short() string {
	if len(i) <= 8 {
		return string(i)
	}
	return string(i[:8])
}
