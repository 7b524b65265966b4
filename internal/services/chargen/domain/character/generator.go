package character

import (
	"strconv"

	apperrors "github.com/louisbranch/glog-chargen/internal/platform/errors"
	"github.com/louisbranch/glog-chargen/internal/services/chargen/dice"
	"github.com/louisbranch/glog-chargen/internal/services/chargen/domain/ruleset"
)

// Level and batch bounds.
const (
	MinLevel = 1
	MaxLevel = 10
	MinCount = 1
	MaxCount = 100
)

var (
	// ErrLevelOutOfRange indicates a level outside [MinLevel, MaxLevel].
	ErrLevelOutOfRange = apperrors.New(apperrors.CodeCharacterLevelOutOfRange, "level is out of range")
	// ErrCountTooLow indicates a batch smaller than MinCount.
	ErrCountTooLow = apperrors.New(apperrors.CodeCharacterCountTooLow, "count is too low")
	// ErrCountTooHigh indicates a batch larger than MaxCount.
	ErrCountTooHigh = apperrors.New(apperrors.CodeCharacterCountTooHigh, "count is too high")
)

// Generator draws characters from a validated ruleset.
//
// A Generator owns its source and is not safe for concurrent use unless the
// source is. Hosts build one Generator per request from a resolved seed.
type Generator struct {
	rules ruleset.Config
	src   dice.Source
}

// NewGenerator returns a generator for rules, drawing from src.
// rules must come from ruleset.Validate; the generator never modifies it.
func NewGenerator(rules ruleset.Config, src dice.Source) *Generator {
	return &Generator{rules: rules, src: src}
}

// Ruleset returns a copy of the generator's ruleset.
func (g *Generator) Ruleset() ruleset.Config {
	return g.rules.Clone()
}

// GenerateOne draws a single character at level.
//
// Draw order is race, class, archetype (wizards only), then the six ability
// scores from strength to charisma, so a seeded source reproduces the same
// character.
func (g *Generator) GenerateOne(level int) (Character, error) {
	if err := CheckLevel(level); err != nil {
		return Character{}, err
	}

	race := pick(g.src, g.rules.Races)
	class := Class{Name: pick(g.src, g.rules.Classes)}
	if class.IsWizard() {
		class.Archetype = pick(g.src, g.rules.WizardArchetypes)
	}

	return Character{
		Level:         level,
		Class:         class,
		Race:          race,
		AbilityScores: rollAbilityScores(g.src),
	}, nil
}

// GenerateMany draws count independent characters at level, in order.
// Any precondition failure returns no characters.
func (g *Generator) GenerateMany(level, count int) ([]Character, error) {
	if err := CheckCount(count); err != nil {
		return nil, err
	}
	if err := CheckLevel(level); err != nil {
		return nil, err
	}

	characters := make([]Character, 0, count)
	for i := 0; i < count; i++ {
		c, err := g.GenerateOne(level)
		if err != nil {
			return nil, err
		}
		characters = append(characters, c)
	}
	return characters, nil
}

// CheckCount reports whether count is a valid batch size.
func CheckCount(count int) error {
	if count < MinCount {
		return apperrors.WithMetadata(apperrors.CodeCharacterCountTooLow,
			"count "+strconv.Itoa(count)+" is below "+strconv.Itoa(MinCount),
			map[string]string{"Count": strconv.Itoa(count), "Min": strconv.Itoa(MinCount)})
	}
	if count > MaxCount {
		return apperrors.WithMetadata(apperrors.CodeCharacterCountTooHigh,
			"count "+strconv.Itoa(count)+" is above "+strconv.Itoa(MaxCount),
			map[string]string{"Count": strconv.Itoa(count), "Max": strconv.Itoa(MaxCount)})
	}
	return nil
}

// CheckLevel reports whether level is within [MinLevel, MaxLevel].
func CheckLevel(level int) error {
	if level < MinLevel || level > MaxLevel {
		return apperrors.WithMetadata(apperrors.CodeCharacterLevelOutOfRange,
			"level "+strconv.Itoa(level)+" is outside "+strconv.Itoa(MinLevel)+"-"+strconv.Itoa(MaxLevel),
			map[string]string{"Level": strconv.Itoa(level), "Min": strconv.Itoa(MinLevel), "Max": strconv.Itoa(MaxLevel)})
	}
	return nil
}

func pick(src dice.Source, options []string) string {
	return options[src.Intn(len(options))]
}

func rollAbilityScores(src dice.Source) AbilityScores {
	return AbilityScores{
		Strength:     dice.RollAbilityScore(src),
		Dexterity:    dice.RollAbilityScore(src),
		Constitution: dice.RollAbilityScore(src),
		Intelligence: dice.RollAbilityScore(src),
		Wisdom:       dice.RollAbilityScore(src),
		Charisma:     dice.RollAbilityScore(src),
	}
}
