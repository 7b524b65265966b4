// Package errors defines the coded domain errors shared by every chargen
// surface and their mapping onto gRPC and HTTP statuses.
package errors

import (
	"net/http"
	"slices"

	"google.golang.org/grpc/codes"
)

// Code identifies a domain failure. It doubles as the message key in the
// "errors" catalog namespace.
type Code string

const (
	CodeUnknown Code = "UNKNOWN"

	CodeConfigEmptyRaces      Code = "CONFIG_EMPTY_RACES"
	CodeConfigEmptyClasses    Code = "CONFIG_EMPTY_CLASSES"
	CodeConfigEmptyArchetypes Code = "CONFIG_EMPTY_ARCHETYPES"
	CodeConfigBlankEntry      Code = "CONFIG_BLANK_ENTRY"

	CodeCharacterLevelOutOfRange Code = "CHARACTER_LEVEL_OUT_OF_RANGE"
	CodeCharacterCountTooLow     Code = "CHARACTER_COUNT_TOO_LOW"
	CodeCharacterCountTooHigh    Code = "CHARACTER_COUNT_TOO_HIGH"

	CodeDiceMissing     Code = "DICE_MISSING"
	CodeDiceInvalidSpec Code = "DICE_INVALID_SPEC"

	CodeSeedOutOfRange Code = "SEED_OUT_OF_RANGE"

	CodeRequestMalformed Code = "REQUEST_MALFORMED"
)

// kind groups codes that surface with the same transport status.
type kind struct {
	grpc codes.Code
	http int
}

var (
	// invalidInput covers bad values supplied by a caller.
	invalidInput = kind{grpc: codes.InvalidArgument, http: http.StatusBadRequest}
	// unusableRuleset covers a loaded ruleset that cannot produce characters.
	unusableRuleset = kind{grpc: codes.FailedPrecondition, http: http.StatusUnprocessableEntity}
	internal        = kind{grpc: codes.Internal, http: http.StatusInternalServerError}
)

var kinds = map[Code]kind{
	CodeUnknown: internal,

	CodeConfigEmptyRaces:      unusableRuleset,
	CodeConfigEmptyClasses:    unusableRuleset,
	CodeConfigEmptyArchetypes: unusableRuleset,
	CodeConfigBlankEntry:      unusableRuleset,

	CodeCharacterLevelOutOfRange: invalidInput,
	CodeCharacterCountTooLow:     invalidInput,
	CodeCharacterCountTooHigh:    invalidInput,
	CodeDiceMissing:              invalidInput,
	CodeDiceInvalidSpec:          invalidInput,
	CodeSeedOutOfRange:           invalidInput,
	CodeRequestMalformed:         invalidInput,
}

func (c Code) kind() kind {
	if k, ok := kinds[c]; ok {
		return k
	}
	return internal
}

// GRPCCode returns the gRPC status code c surfaces as.
func (c Code) GRPCCode() codes.Code {
	return c.kind().grpc
}

// HTTPStatus returns the HTTP status c surfaces as.
func (c Code) HTTPStatus() int {
	return c.kind().http
}

// Codes lists every defined code in sorted order.
func Codes() []Code {
	out := make([]Code, 0, len(kinds))
	for c := range kinds {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}
