// Package render turns generated characters into console text, YAML export
// documents, and HTML components.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/louisbranch/glog-chargen/internal/services/chargen/domain/character"
	"golang.org/x/text/message"
)

// Localizer formats catalog-backed UI strings.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// WriteText writes one console block per character, numbered from 1.
func WriteText(w io.Writer, loc Localizer, characters []character.Character) error {
	var b strings.Builder
	for i, c := range characters {
		fmt.Fprintf(&b, "\n%s:\n", loc.Sprintf("web.character.heading", i+1))
		fmt.Fprintf(&b, "%s: %d\n", loc.Sprintf("web.character.level"), c.Level)
		fmt.Fprintf(&b, "%s: %s\n", loc.Sprintf("web.character.race"), c.Race)
		fmt.Fprintf(&b, "%s: %s\n", loc.Sprintf("web.character.class"), c.Class)
		fmt.Fprintf(&b, "%s:\n", loc.Sprintf("ability.heading"))
		for _, ability := range character.Abilities {
			fmt.Fprintf(&b, "  %s: %d\n", abilityLabel(loc, ability), c.AbilityScores.Score(ability))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func abilityLabel(loc Localizer, ability character.Ability) string {
	return loc.Sprintf("ability." + string(ability))
}
