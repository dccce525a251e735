// Package i18n resolves namespaced translation keys against embedded YAML
// catalogs.
//
// Keys have the form "namespace:key". A key without a namespace is looked
// up in the translator's default namespace. Messages may reference
// parameters as {{name}}. Unknown keys translate to themselves.
package i18n

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localesFS embed.FS

const (
	// DefaultNamespace is used for keys without a namespace prefix.
	DefaultNamespace = "roles"

	// DefaultLanguage is the fallback for missing messages and unmatched
	// Accept-Language headers.
	DefaultLanguage = "en"
)

// Param is a named value substituted into a message.
type Param struct {
	Name  string
	Value string
}

// P builds a Param.
func P(name, value string) Param { return Param{Name: name, Value: value} }

// Translator resolves keys to display text.
type Translator interface {
	T(key string, params ...Param) string
}

// catalog is namespace -> key -> message.
type catalog map[string]map[string]string

// Bundle holds the catalogs of every supported language.
type Bundle struct {
	catalogs map[string]catalog
	tags     []language.Tag
	matcher  language.Matcher
}

// NewBundle loads the embedded catalogs.
func NewBundle() (*Bundle, error) {
	entries, err := localesFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}

	raw := make(map[string][]byte, len(entries))
	for _, e := range entries {
		data, err := localesFS.ReadFile(path.Join("locales", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		raw[strings.TrimSuffix(e.Name(), path.Ext(e.Name()))] = data
	}
	return newBundle(raw)
}

func newBundle(raw map[string][]byte) (*Bundle, error) {
	b := &Bundle{catalogs: make(map[string]catalog, len(raw))}

	langs := make([]string, 0, len(raw))
	for lang := range raw {
		langs = append(langs, lang)
	}
	// The default language goes first so the matcher falls back to it.
	sort.Slice(langs, func(i, j int) bool {
		if langs[i] == DefaultLanguage || langs[j] == DefaultLanguage {
			return langs[i] == DefaultLanguage
		}
		return langs[i] < langs[j]
	})

	for _, lang := range langs {
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("locale %q: %w", lang, err)
		}

		var c catalog
		if err := yaml.Unmarshal(raw[lang], &c); err != nil {
			return nil, fmt.Errorf("parse locale %q: %w", lang, err)
		}

		b.catalogs[lang] = c
		b.tags = append(b.tags, tag)
	}

	if _, ok := b.catalogs[DefaultLanguage]; !ok {
		return nil, fmt.Errorf("missing %q locale", DefaultLanguage)
	}

	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

// Languages lists the supported language codes, default first.
func (b *Bundle) Languages() []string {
	out := make([]string, len(b.tags))
	for i, t := range b.tags {
		out[i] = t.String()
	}
	return out
}

// Match picks the best supported language for the given preferences,
// each either a language code or an Accept-Language header value.
// Earlier preferences win.
func (b *Bundle) Match(prefs ...string) string {
	for _, pref := range prefs {
		if pref == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(pref)
		if err != nil || len(tags) == 0 {
			continue
		}
		_, idx, conf := b.matcher.Match(tags...)
		if conf != language.No {
			return b.tags[idx].String()
		}
	}
	return DefaultLanguage
}

// Translator returns a translator for lang using the default namespace.
// Unsupported languages fall back to the default language.
func (b *Bundle) Translator(lang string) *Localizer {
	return b.TranslatorNS(lang, DefaultNamespace)
}

// TranslatorNS is Translator with an explicit default namespace.
func (b *Bundle) TranslatorNS(lang, namespace string) *Localizer {
	if _, ok := b.catalogs[lang]; !ok {
		lang = b.Match(lang)
	}
	return &Localizer{
		lang:      lang,
		namespace: namespace,
		primary:   b.catalogs[lang],
		fallback:  b.catalogs[DefaultLanguage],
	}
}

// Localizer is a Translator bound to one language.
type Localizer struct {
	lang      string
	namespace string
	primary   catalog
	fallback  catalog
}

var _ Translator = (*Localizer)(nil)

func (l *Localizer) Lang() string { return l.lang }

// T translates key. Messages missing from the language are taken from the
// default language; keys missing from both are returned unchanged.
func (l *Localizer) T(key string, params ...Param) string {
	ns, k, ok := strings.Cut(key, ":")
	if !ok {
		ns, k = l.namespace, key
	}

	msg, found := l.primary.lookup(ns, k)
	if !found {
		msg, found = l.fallback.lookup(ns, k)
	}
	if !found {
		return key
	}
	return interpolate(msg, params)
}

func (c catalog) lookup(ns, key string) (string, bool) {
	msgs, ok := c[ns]
	if !ok {
		return "", false
	}
	msg, ok := msgs[key]
	return msg, ok
}

func interpolate(msg string, params []Param) string {
	if len(params) == 0 || !strings.Contains(msg, "{{") {
		return msg
	}
	pairs := make([]string, 0, len(params)*4)
	for _, p := range params {
		pairs = append(pairs,
			"{{"+p.Name+"}}", p.Value,
			"{{ "+p.Name+" }}", p.Value,
		)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

// Static is a Translator backed by a flat key -> message map. Missing keys
// translate to themselves. Useful in tests.
type Static map[string]string

func (s Static) T(key string, params ...Param) string {
	msg, ok := s[key]
	if !ok {
		return key
	}
	return interpolate(msg, params)
}
