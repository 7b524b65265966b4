// Package random owns the lifecycle of the random sources used for rolls.
//
// Seeds come from crypto/rand unless a caller supplies one, and every
// source is an explicit value so callers decide how it is shared.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	apperrors "github.com/louisbranch/glog-chargen/internal/platform/errors"
)

// SeedSource records where the seed used for a roll came from.
type SeedSource string

const (
	// SeedSourceClient indicates the caller supplied the seed.
	SeedSourceClient SeedSource = "CLIENT"
	// SeedSourceServer indicates the seed was generated by the process.
	SeedSourceServer SeedSource = "SERVER"
)

const maxSeedInt64 = uint64(math.MaxInt64)

// ErrSeedOutOfRange indicates a requested seed does not fit in an int64.
var ErrSeedOutOfRange = apperrors.WithMetadata(
	apperrors.CodeSeedOutOfRange,
	"seed must fit in a signed 64-bit integer",
	map[string]string{"Max": strconv.FormatUint(maxSeedInt64, 10)},
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// ResolveSeed picks the seed for one roll.
//
// A requested seed wins and is reported as SeedSourceClient. Without one,
// newSeed is called (NewSeed when nil) and the result is SeedSourceServer.
func ResolveSeed(requested *uint64, newSeed func() (int64, error)) (int64, SeedSource, error) {
	if requested != nil {
		if *requested > maxSeedInt64 {
			return 0, "", ErrSeedOutOfRange
		}
		return int64(*requested), SeedSourceClient, nil
	}
	if newSeed == nil {
		newSeed = NewSeed
	}
	seed, err := newSeed()
	if err != nil {
		return 0, "", fmt.Errorf("generate seed: %w", err)
	}
	return seed, SeedSourceServer, nil
}

// ParseSeed parses a decimal seed. Blank input yields nil, meaning no seed was requested.
func ParseSeed(value string) (*uint64, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeSeedOutOfRange, fmt.Sprintf("parse seed %q", value), err)
	}
	return &parsed, nil
}
