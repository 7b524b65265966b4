// Package i18n renders error codes as localized user messages.
package i18n

import (
	"strings"
	"sync"
	"text/template"

	platformi18n "github.com/louisbranch/glog-chargen/internal/platform/i18n"
	i18ncatalog "github.com/louisbranch/glog-chargen/internal/platform/i18n/catalog"
)

// Code mirrors errors.Code; importing it would create a cycle.
type Code = string

const errorsNamespace = "errors"

// Catalog renders the error templates of one locale. Templates are parsed
// on first use and cached.
type Catalog struct {
	locale   string
	messages map[Code]string

	mu        sync.Mutex
	templates map[Code]*template.Template
}

// catalogs caches one Catalog per resolved locale.
var catalogs sync.Map

// GetCatalog returns the catalog for locale. Unsupported or blank locales
// resolve to the base locale, so they share its Catalog.
func GetCatalog(locale string) *Catalog {
	requested := strings.TrimSpace(locale)
	if tag, ok := platformi18n.ParseTag(requested); ok {
		requested = tag.String()
	}
	resolved, messages := i18ncatalog.Default().Resolve(requested, errorsNamespace)
	if cached, ok := catalogs.Load(resolved); ok {
		return cached.(*Catalog)
	}
	cat, _ := catalogs.LoadOrStore(resolved, NewCatalog(resolved, messages))
	return cat.(*Catalog)
}

// NewCatalog builds a catalog from code to template text.
func NewCatalog(locale string, messages map[Code]string) *Catalog {
	clone := make(map[Code]string, len(messages))
	for code, text := range messages {
		clone[code] = text
	}
	return &Catalog{locale: locale, messages: clone, templates: map[Code]*template.Template{}}
}

// Locale returns the locale the catalog renders.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the template for code with metadata as its data. It
// returns code when no template exists and the raw text when the
// template is malformed.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	text, ok := c.messages[code]
	if !ok {
		return code
	}
	tmpl, err := c.template(code, text)
	if err != nil {
		return text
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, metadata); err != nil {
		return text
	}
	return b.String()
}

func (c *Catalog) template(code Code, text string) (*template.Template, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tmpl, ok := c.templates[code]; ok {
		return tmpl, nil
	}
	tmpl, err := template.New(code).Parse(text)
	if err != nil {
		return nil, err
	}
	c.templates[code] = tmpl
	return tmpl, nil
}
