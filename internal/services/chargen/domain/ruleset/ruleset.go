// Package ruleset defines the races, classes, and wizard archetypes that
// character generation samples from.
package ruleset

import (
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/glog-chargen/internal/platform/errors"
)

// WizardClass is the class name that gains an archetype when drawn.
const WizardClass = "Wizard"

var (
	// ErrEmptyRaces indicates the ruleset lists no races.
	ErrEmptyRaces = apperrors.New(apperrors.CodeConfigEmptyRaces, "ruleset must contain at least one race")
	// ErrEmptyClasses indicates the ruleset lists no classes.
	ErrEmptyClasses = apperrors.New(apperrors.CodeConfigEmptyClasses, "ruleset must contain at least one class")
	// ErrEmptyArchetypes indicates the ruleset lists no wizard archetypes.
	ErrEmptyArchetypes = apperrors.New(apperrors.CodeConfigEmptyArchetypes, "ruleset must contain at least one wizard archetype")
	// ErrBlankEntry indicates a ruleset entry is empty or whitespace.
	ErrBlankEntry = apperrors.New(apperrors.CodeConfigBlankEntry, "ruleset entries cannot be blank")
)

// Config is the sampling universe for character generation.
//
// A Config returned by Validate is never modified afterwards; generators
// share it read-only.
type Config struct {
	Races            []string `yaml:"races" json:"races"`
	Classes          []string `yaml:"classes" json:"classes"`
	WizardArchetypes []string `yaml:"wizard_archetypes" json:"wizard_archetypes"`
}

// Validate checks that every list is non-empty and holds no blank entries.
//
// Lists are checked in order races, classes, archetypes and the first
// failure wins. On success the returned Config owns copies of the lists, so
// later changes to the caller's slices cannot reach it.
func Validate(cfg Config) (Config, error) {
	if len(cfg.Races) == 0 {
		return Config{}, ErrEmptyRaces
	}
	if len(cfg.Classes) == 0 {
		return Config{}, ErrEmptyClasses
	}
	if len(cfg.WizardArchetypes) == 0 {
		return Config{}, ErrEmptyArchetypes
	}
	for _, list := range []struct {
		name    string
		entries []string
	}{
		{name: "races", entries: cfg.Races},
		{name: "classes", entries: cfg.Classes},
		{name: "wizard_archetypes", entries: cfg.WizardArchetypes},
	} {
		if err := checkEntries(list.name, list.entries); err != nil {
			return Config{}, err
		}
	}
	return cfg.Clone(), nil
}

// Clone returns a deep copy of cfg.
func (cfg Config) Clone() Config {
	return Config{
		Races:            append([]string(nil), cfg.Races...),
		Classes:          append([]string(nil), cfg.Classes...),
		WizardArchetypes: append([]string(nil), cfg.WizardArchetypes...),
	}
}

func checkEntries(list string, entries []string) error {
	for i, entry := range entries {
		if strings.TrimSpace(entry) == "" {
			return apperrors.WithMetadata(
				apperrors.CodeConfigBlankEntry,
				list+"["+strconv.Itoa(i)+"] is blank",
				map[string]string{"List": list, "Index": strconv.Itoa(i)},
			)
		}
	}
	return nil
}
