// Package idgen mints run identifiers for archived report computations.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// Run IDs look like "rn-x7Kp2mQv9Z": a fixed prefix plus a short
// alphanumeric nanoid. The prefix keeps them greppable in logs next to
// other identifiers.
const (
	runPrefix = "rn-"
	alphabet  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	randLen   = 10
)

// Generate returns a new run ID.
func Generate() (string, error) {
	suffix, err := nanoid.Generate(alphabet, randLen)
	if err != nil {
		return "", fmt.Errorf("generate run id: %w", err)
	}
	return runPrefix + suffix, nil
}
