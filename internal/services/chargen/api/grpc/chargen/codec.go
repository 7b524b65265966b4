package chargen

import (
	"fmt"
	"math"
	"strconv"

	apperrors "github.com/louisbranch/glog-chargen/internal/platform/errors"
	"github.com/louisbranch/glog-chargen/internal/platform/random"
	"github.com/louisbranch/glog-chargen/internal/services/chargen/domain/character"
	"github.com/louisbranch/glog-chargen/internal/services/chargen/domain/ruleset"
	"github.com/louisbranch/glog-chargen/internal/services/chargen/generation"
	"google.golang.org/protobuf/types/known/structpb"
)

// Message field names.
const (
	fieldLevel            = "level"
	fieldCount            = "count"
	fieldSeed             = "seed"
	fieldCharacters       = "characters"
	fieldSeedUsed         = "seed_used"
	fieldSeedSource       = "seed_source"
	fieldClass            = "class"
	fieldRace             = "race"
	fieldAbilityScores    = "ability_scores"
	fieldRaces            = "races"
	fieldClasses          = "classes"
	fieldWizardArchetypes = "wizard_archetypes"
)

// Seeds travel as decimal strings; a Struct number is a float64 and cannot
// carry every 64-bit seed.

func encodeGenerateRequest(req generation.Request) (*structpb.Struct, error) {
	fields := map[string]any{
		fieldLevel: req.Level,
		fieldCount: req.Count,
	}
	if req.Seed != nil {
		fields[fieldSeed] = strconv.FormatUint(*req.Seed, 10)
	}
	return structpb.NewStruct(fields)
}

func decodeGenerateRequest(in *structpb.Struct) (generation.Request, error) {
	level, err := intField(in, fieldLevel)
	if err != nil {
		return generation.Request{}, err
	}
	count, err := intField(in, fieldCount)
	if err != nil {
		return generation.Request{}, err
	}
	req := generation.Request{Level: level, Count: count}
	if value, ok := in.GetFields()[fieldSeed]; ok {
		if _, isString := value.GetKind().(*structpb.Value_StringValue); !isString {
			return generation.Request{}, malformed("field %q must be a decimal string", fieldSeed)
		}
		seed, err := random.ParseSeed(value.GetStringValue())
		if err != nil {
			return generation.Request{}, err
		}
		req.Seed = seed
	}
	return req, nil
}

func encodeGenerateResponse(result generation.Result) (*structpb.Struct, error) {
	characters := make([]any, 0, len(result.Characters))
	for _, c := range result.Characters {
		scores := make(map[string]any, len(character.Abilities))
		for _, ability := range character.Abilities {
			scores[string(ability)] = c.AbilityScores.Score(ability)
		}
		characters = append(characters, map[string]any{
			fieldLevel:         c.Level,
			fieldClass:         c.Class.String(),
			fieldRace:          c.Race,
			fieldAbilityScores: scores,
		})
	}
	return structpb.NewStruct(map[string]any{
		fieldCharacters: characters,
		fieldSeedUsed:   strconv.FormatInt(result.SeedUsed, 10),
		fieldSeedSource: string(result.SeedSource),
	})
}

func decodeGenerateResponse(out *structpb.Struct) (generation.Result, error) {
	var result generation.Result
	for i, value := range out.GetFields()[fieldCharacters].GetListValue().GetValues() {
		c, err := decodeCharacter(value.GetStructValue())
		if err != nil {
			return generation.Result{}, fmt.Errorf("decode character %d: %w", i, err)
		}
		result.Characters = append(result.Characters, c)
	}
	seed, err := strconv.ParseInt(out.GetFields()[fieldSeedUsed].GetStringValue(), 10, 64)
	if err != nil {
		return generation.Result{}, fmt.Errorf("decode seed_used: %w", err)
	}
	result.SeedUsed = seed
	result.SeedSource = random.SeedSource(out.GetFields()[fieldSeedSource].GetStringValue())
	return result, nil
}

func decodeCharacter(s *structpb.Struct) (character.Character, error) {
	if s == nil {
		return character.Character{}, fmt.Errorf("character must be an object")
	}
	level, err := intField(s, fieldLevel)
	if err != nil {
		return character.Character{}, err
	}
	class, err := character.ParseClass(s.GetFields()[fieldClass].GetStringValue())
	if err != nil {
		return character.Character{}, err
	}
	scores := s.GetFields()[fieldAbilityScores].GetStructValue()
	score := func(ability character.Ability) (int, error) {
		return intField(scores, string(ability))
	}
	var abilities character.AbilityScores
	for _, target := range []struct {
		ability character.Ability
		dst     *int
	}{
		{character.AbilityStrength, &abilities.Strength},
		{character.AbilityDexterity, &abilities.Dexterity},
		{character.AbilityConstitution, &abilities.Constitution},
		{character.AbilityIntelligence, &abilities.Intelligence},
		{character.AbilityWisdom, &abilities.Wisdom},
		{character.AbilityCharisma, &abilities.Charisma},
	} {
		value, err := score(target.ability)
		if err != nil {
			return character.Character{}, err
		}
		*target.dst = value
	}
	return character.Character{
		Level:         level,
		Class:         class,
		Race:          s.GetFields()[fieldRace].GetStringValue(),
		AbilityScores: abilities,
	}, nil
}

func encodeRuleset(rules ruleset.Config) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		fieldRaces:            stringList(rules.Races),
		fieldClasses:          stringList(rules.Classes),
		fieldWizardArchetypes: stringList(rules.WizardArchetypes),
	})
}

func decodeRuleset(out *structpb.Struct) ruleset.Config {
	return ruleset.Config{
		Races:            listStrings(out.GetFields()[fieldRaces]),
		Classes:          listStrings(out.GetFields()[fieldClasses]),
		WizardArchetypes: listStrings(out.GetFields()[fieldWizardArchetypes]),
	}
}

func stringList(values []string) []any {
	out := make([]any, len(values))
	for i, value := range values {
		out[i] = value
	}
	return out
}

func listStrings(value *structpb.Value) []string {
	values := value.GetListValue().GetValues()
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.GetStringValue())
	}
	return out
}

// intField reads a required integral number field.
func intField(s *structpb.Struct, name string) (int, error) {
	value, ok := s.GetFields()[name]
	if !ok {
		return 0, malformed("field %q is required", name)
	}
	number, isNumber := value.GetKind().(*structpb.Value_NumberValue)
	if !isNumber {
		return 0, malformed("field %q must be a number", name)
	}
	n := number.NumberValue
	if n != math.Trunc(n) || n < math.MinInt32 || n > math.MaxInt32 {
		return 0, malformed("field %q must be an integer", name)
	}
	return int(n), nil
}

func malformed(format string, args ...any) error {
	return apperrors.New(apperrors.CodeRequestMalformed, fmt.Sprintf(format, args...))
}
