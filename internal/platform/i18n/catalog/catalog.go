// Package catalog loads the YAML message files under locales/<locale>/<namespace>.yaml
// and registers them with golang.org/x/text/message.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// BaseLocale defines every key; other locales must translate the same set.
const BaseLocale = "en-US"

const filePattern = "locales/*/*.yaml"

// file is the on-disk shape of one namespace of one locale.
type file struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// namespaces maps namespace to key to message.
type namespaces map[string]map[string]string

func (n namespaces) keys() []string {
	var out []string
	for _, messages := range n {
		out = append(out, slices.Collect(maps.Keys(messages))...)
	}
	slices.Sort(out)
	return out
}

func (n namespaces) owner(key string) (string, bool) {
	for ns, messages := range n {
		if _, ok := messages[key]; ok {
			return ns, true
		}
	}
	return "", false
}

// Bundle holds the messages of every loaded locale.
type Bundle struct {
	locales map[string]namespaces
}

//go:embed locales/*/*.yaml
var embedded embed.FS

var defaultBundle = mustRegister(LoadEmbedded())

// Default returns the embedded bundle, registered with x/text at init.
func Default() *Bundle {
	return defaultBundle
}

// LoadEmbedded loads the catalogs compiled into the binary.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embedded)
}

// LoadFromFS loads every catalog file in fsys. It fails when a file header
// disagrees with its path, a key is defined twice within a locale, or a
// locale does not translate exactly the keys of BaseLocale.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, filePattern)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", filePattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files match %s", filePattern)
	}
	slices.Sort(paths)

	b := &Bundle{locales: map[string]namespaces{}}
	for _, p := range paths {
		f, err := readFile(fsys, p)
		if err != nil {
			return nil, err
		}
		if err := b.add(p, f); err != nil {
			return nil, err
		}
	}
	if err := b.checkParity(); err != nil {
		return nil, err
	}
	return b, nil
}

func readFile(fsys fs.FS, p string) (file, error) {
	r, err := fsys.Open(p)
	if err != nil {
		return file{}, fmt.Errorf("open catalog %s: %w", p, err)
	}
	defer r.Close()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f file
	if err := dec.Decode(&f); err != nil {
		return file{}, fmt.Errorf("decode catalog %s: %w", p, err)
	}
	return f, nil
}

func (b *Bundle) add(p string, f file) error {
	wantLocale := path.Base(path.Dir(p))
	wantNamespace := strings.TrimSuffix(path.Base(p), path.Ext(p))

	switch {
	case strings.TrimSpace(f.Locale) != wantLocale:
		return fmt.Errorf("catalog %s: locale %q does not match directory %q", p, f.Locale, wantLocale)
	case strings.TrimSpace(f.Namespace) != wantNamespace:
		return fmt.Errorf("catalog %s: namespace %q does not match file name %q", p, f.Namespace, wantNamespace)
	case len(f.Messages) == 0:
		return fmt.Errorf("catalog %s: no messages", p)
	}

	ns, ok := b.locales[wantLocale]
	if !ok {
		ns = namespaces{}
		b.locales[wantLocale] = ns
	}
	messages := make(map[string]string, len(f.Messages))
	for key, value := range f.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("catalog %s: blank message key", p)
		}
		if other, dup := ns.owner(key); dup {
			return fmt.Errorf("catalog %s: key %q already defined in %s/%s", p, key, wantLocale, other)
		}
		messages[key] = value
	}
	ns[wantNamespace] = messages
	return nil
}

func (b *Bundle) checkParity() error {
	base, ok := b.locales[BaseLocale]
	if !ok {
		return fmt.Errorf("base locale %s has no catalogs", BaseLocale)
	}
	want := base.keys()
	for _, locale := range b.Locales() {
		if locale == BaseLocale {
			continue
		}
		got := b.locales[locale].keys()
		for _, key := range want {
			if _, found := slices.BinarySearch(got, key); !found {
				return fmt.Errorf("locale %s is missing key %q", locale, key)
			}
		}
		for _, key := range got {
			if _, found := slices.BinarySearch(want, key); !found {
				return fmt.Errorf("locale %s defines key %q unknown to %s", locale, key, BaseLocale)
			}
		}
	}
	return nil
}

// Register installs every message into the x/text default catalog so
// message.Printer can resolve keys.
func (b *Bundle) Register() error {
	for _, locale := range b.Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale %q: %w", locale, err)
		}
		for _, messages := range b.locales[locale] {
			for key, value := range messages {
				if err := message.SetString(tag, key, value); err != nil {
					return fmt.Errorf("register %s %s: %w", locale, key, err)
				}
			}
		}
	}
	return nil
}

// Locales returns the loaded locale identifiers in sorted order.
func (b *Bundle) Locales() []string {
	return slices.Sorted(maps.Keys(b.locales))
}

// HasLocale reports whether locale was loaded.
func (b *Bundle) HasLocale(locale string) bool {
	_, ok := b.locales[locale]
	return ok
}

// Messages returns a copy of one namespace of locale.
func (b *Bundle) Messages(locale, namespace string) map[string]string {
	return maps.Clone(b.locales[locale][namespace])
}

// Resolve returns the messages of namespace for locale, or those of
// BaseLocale when locale was not loaded, along with the locale used.
func (b *Bundle) Resolve(locale, namespace string) (string, map[string]string) {
	if b.HasLocale(locale) {
		return locale, b.Messages(locale, namespace)
	}
	return BaseLocale, b.Messages(BaseLocale, namespace)
}

func mustRegister(b *Bundle, err error) *Bundle {
	if err != nil {
		panic(err)
	}
	if err := b.Register(); err != nil {
		panic(err)
	}
	return b
}
