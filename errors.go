package twistycube

import "errors"

// Sentinel errors for the twistycube package.
var (
	// Gating errors. A rejected command leaves the cube untouched.
	ErrRotating = errors.New("twistycube: a twist is in flight")
	ErrUnlocked = errors.New("twistycube: cube is not lock-oriented")

	// Parsing errors
	ErrInvalidNotation = errors.New("twistycube: invalid move notation")
	ErrUnknownKey      = errors.New("twistycube: not a face key")

	// Construction errors
	ErrInvalidMove     = errors.New("twistycube: invalid move")
	ErrInvalidGeometry = errors.New("twistycube: invalid geometry")
)
