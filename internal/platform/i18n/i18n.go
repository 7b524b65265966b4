// Package i18n defines the supported locales and resolves language tags.
package i18n

import (
	"strings"

	"github.com/louisbranch/glog-chargen/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var supportedTags = []language.Tag{
	language.MustParse(catalog.BaseLocale),
	language.MustParse("pt-BR"),
}

var matcher = language.NewMatcher(supportedTags)

// SupportedTags returns the supported language tags, default first.
func SupportedTags() []language.Tag {
	return append([]language.Tag(nil), supportedTags...)
}

// DefaultTag returns the default language tag.
func DefaultTag() language.Tag {
	return supportedTags[0]
}

// ParseTag parses value and reports whether it names a supported locale.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultTag(), false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return DefaultTag(), false
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return DefaultTag(), false
	}
	return supportedTags[index], true
}

// MatchTags returns the best supported tag for the preferred tags.
func MatchTags(preferred []language.Tag) language.Tag {
	if len(preferred) == 0 {
		return DefaultTag()
	}
	_, index, confidence := matcher.Match(preferred...)
	if confidence == language.No {
		return DefaultTag()
	}
	return supportedTags[index]
}

// ResolveAcceptLanguage picks a supported tag from an Accept-Language header value.
func ResolveAcceptLanguage(header string) language.Tag {
	header = strings.TrimSpace(header)
	if header == "" {
		return DefaultTag()
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return DefaultTag()
	}
	return MatchTags(tags)
}

// LocaleString returns the catalog locale identifier for tag.
func LocaleString(tag language.Tag) string {
	return MatchTags([]language.Tag{tag}).String()
}

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(MatchTags([]language.Tag{tag}))
}
