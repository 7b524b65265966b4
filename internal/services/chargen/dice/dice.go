// Package dice implements the dice-rolling logic for character generation.
package dice

import (
	apperrors "github.com/louisbranch/glog-chargen/internal/platform/errors"
)

// Source is the randomness provider for dice rolls.
//
// *math/rand.Rand satisfies Source. A Source shared between goroutines must
// serialize its own draws.
type Source interface {
	// Intn returns a non-negative random int in [0, n). It panics if n <= 0.
	Intn(n int) int
}

// AbilityScoreMin and AbilityScoreMax bound a 3d6 ability score.
const (
	AbilityScoreMin = 3
	AbilityScoreMax = 18
)

// abilityScoreDice is the active ability-score rule: three d6, all kept.
var abilityScoreDice = DiceSpec{Sides: 6, Count: 3}

// ErrMissingDice indicates a roll request had no dice specified.
var ErrMissingDice = apperrors.New(apperrors.CodeDiceMissing, "at least one die must be provided")

// ErrInvalidDiceSpec indicates a die specification has invalid fields.
var ErrInvalidDiceSpec = apperrors.New(apperrors.CodeDiceInvalidSpec, "dice must have positive sides and count")

// DiceSpec describes a die to roll and how many times to roll it.
type DiceSpec struct {
	Sides int
	Count int
}

// DieRoll captures the results for a single dice spec.
type DieRoll struct {
	Sides   int
	Results []int
	Total   int
}

// RollResult captures the results from rolling multiple dice.
type RollResult struct {
	Rolls []DieRoll
	Total int
}

// RollDice rolls every spec in order, drawing from src.
//
// # Ordering
//
// Dice specs are processed in slice order and every die draws from src
// exactly once, so a seeded src yields a reproducible RollResult. The
// resulting DieRoll entries appear in the same order as specs.
//
// # Totals
//
// Each DieRoll.Total is the sum of its Results; RollResult.Total is the sum
// of every die rolled across the request.
//
// Constraints and errors
//
//   - At least one DiceSpec must be provided, otherwise ErrMissingDice is returned.
//   - Each DiceSpec must have Sides > 0 and Count > 0, otherwise
//     ErrInvalidDiceSpec is returned.
func RollDice(src Source, specs []DiceSpec) (RollResult, error) {
	if len(specs) == 0 {
		return RollResult{}, ErrMissingDice
	}
	for _, spec := range specs {
		if spec.Sides <= 0 || spec.Count <= 0 {
			return RollResult{}, ErrInvalidDiceSpec
		}
	}

	rolls := make([]DieRoll, 0, len(specs))
	total := 0
	for _, spec := range specs {
		results := make([]int, spec.Count)
		rollTotal := 0
		for i := 0; i < spec.Count; i++ {
			value := rollDie(src, spec.Sides)
			results[i] = value
			rollTotal += value
		}

		rolls = append(rolls, DieRoll{
			Sides:   spec.Sides,
			Results: results,
			Total:   rollTotal,
		})
		total += rollTotal
	}

	return RollResult{
		Rolls: rolls,
		Total: total,
	}, nil
}

// RollAbilityScore rolls one ability score as the plain sum of 3d6.
// The result is always within [AbilityScoreMin, AbilityScoreMax].
func RollAbilityScore(src Source) int {
	result, err := RollDice(src, []DiceSpec{abilityScoreDice})
	if err != nil {
		// This should be unreachable: the DiceSpec is hardcoded and always valid.
		panic(err)
	}
	return result.Total
}

// rollDie rolls a die with the provided number of sides.
func rollDie(src Source, sides int) int {
	return src.Intn(sides) + 1
}
