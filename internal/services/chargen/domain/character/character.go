// Package character generates random characters from a ruleset.
package character

import (
	"fmt"
	"strings"

	"github.com/louisbranch/glog-chargen/internal/services/chargen/domain/ruleset"
)

// Character is one generated character. It is a value snapshot and is never
// mutated after generation.
type Character struct {
	Level         int           `json:"level" yaml:"level"`
	Class         Class         `json:"class" yaml:"class"`
	Race          string        `json:"race" yaml:"race"`
	AbilityScores AbilityScores `json:"ability_scores" yaml:"ability_scores"`
}

// AbilityScores holds the six 3d6 ability scores.
type AbilityScores struct {
	Strength     int `json:"strength" yaml:"strength"`
	Dexterity    int `json:"dexterity" yaml:"dexterity"`
	Constitution int `json:"constitution" yaml:"constitution"`
	Intelligence int `json:"intelligence" yaml:"intelligence"`
	Wisdom       int `json:"wisdom" yaml:"wisdom"`
	Charisma     int `json:"charisma" yaml:"charisma"`
}

// Ability names one of the six ability scores.
type Ability string

const (
	AbilityStrength     Ability = "strength"
	AbilityDexterity    Ability = "dexterity"
	AbilityConstitution Ability = "constitution"
	AbilityIntelligence Ability = "intelligence"
	AbilityWisdom       Ability = "wisdom"
	AbilityCharisma     Ability = "charisma"
)

// Abilities lists the abilities in roll order.
var Abilities = []Ability{
	AbilityStrength,
	AbilityDexterity,
	AbilityConstitution,
	AbilityIntelligence,
	AbilityWisdom,
	AbilityCharisma,
}

// Score returns the value for ability, or 0 for an unknown ability.
func (s AbilityScores) Score(ability Ability) int {
	switch ability {
	case AbilityStrength:
		return s.Strength
	case AbilityDexterity:
		return s.Dexterity
	case AbilityConstitution:
		return s.Constitution
	case AbilityIntelligence:
		return s.Intelligence
	case AbilityWisdom:
		return s.Wisdom
	case AbilityCharisma:
		return s.Charisma
	default:
		return 0
	}
}

// Class is a drawn class name, with the archetype set only for wizards.
//
// It renders as "Name" or "Wizard (<archetype>)" in text, JSON, and YAML.
type Class struct {
	Name      string
	Archetype string
}

// IsWizard reports whether the class is the wizard class.
func (c Class) IsWizard() bool {
	return c.Name == ruleset.WizardClass
}

// String renders the class for display.
func (c Class) String() string {
	if c.Archetype == "" {
		return c.Name
	}
	return fmt.Sprintf("%s (%s)", c.Name, c.Archetype)
}

// MarshalText implements encoding.TextMarshaler.
func (c Class) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Class) UnmarshalText(text []byte) error {
	parsed, err := ParseClass(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseClass parses the rendered form of a class.
func ParseClass(value string) (Class, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Class{}, fmt.Errorf("class is required")
	}
	prefix := ruleset.WizardClass + " ("
	if strings.HasPrefix(value, prefix) && strings.HasSuffix(value, ")") {
		archetype := strings.TrimSuffix(strings.TrimPrefix(value, prefix), ")")
		if strings.TrimSpace(archetype) == "" {
			return Class{}, fmt.Errorf("class %q has an empty archetype", value)
		}
		return Class{Name: ruleset.WizardClass, Archetype: archetype}, nil
	}
	return Class{Name: value}, nil
}
