package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultRoot is the root locale used when none is configured.
const DefaultRoot = "en-US"

// Info is the classification of a single locale spec.
type Info struct {
	Locale string
	// IsRoot is set for the project's root locale.
	IsRoot bool
	// IsLanguageBase is set when the locale is the default region of its language.
	IsLanguageBase bool
	// BaseLocale is the default locale of the locale's language.
	BaseLocale string
	// SuppressionBase is the locale whose translation makes an output for
	// Locale redundant. Empty for the root locale.
	SuppressionBase string
	// PathFragment is the directory fragment used in output paths.
	PathFragment string
}

// Classifier classifies locales against a root locale and optional
// per-language base overrides. It is immutable and safe for concurrent use.
type Classifier struct {
	root  string
	bases map[string]string
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithRoot sets the root locale. Empty values are ignored.
func WithRoot(root string) Option {
	return func(c *Classifier) {
		if root != "" {
			c.root = root
		}
	}
}

// WithBaseLocales overrides the base locale of languages, keyed by language
// subtag (for example {"en": "en-GB"}).
func WithBaseLocales(bases map[string]string) Option {
	return func(c *Classifier) {
		for lang, base := range bases {
			c.bases[strings.ToLower(lang)] = base
		}
	}
}

// New creates a Classifier.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		root:  DefaultRoot,
		bases: make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultClassifier = New()

// Classify classifies locale against the default root locale.
func Classify(locale string) Info {
	return defaultClassifier.Classify(locale)
}

// Root returns the root locale.
func (c *Classifier) Root() string {
	return c.root
}

// Classify returns the classification of locale.
func (c *Classifier) Classify(locale string) Info {
	info := Info{
		Locale:     locale,
		IsRoot:     locale == c.root,
		BaseLocale: c.BaseLocale(locale),
	}
	info.IsLanguageBase = c.IsLanguageBase(locale)

	switch {
	case info.IsRoot:
		info.PathFragment = ""
	case info.IsLanguageBase:
		info.PathFragment = Language(locale)
	default:
		info.PathFragment = strings.Join(subtags(locale), "/")
	}

	if !info.IsRoot {
		if info.IsLanguageBase || info.BaseLocale == locale {
			info.SuppressionBase = c.root
		} else {
			info.SuppressionBase = info.BaseLocale
		}
	}
	return info
}

// IsLanguageBase reports whether locale is the default locale of its language.
func (c *Classifier) IsLanguageBase(locale string) bool {
	if base, ok := c.bases[strings.ToLower(Language(locale))]; ok {
		return sameLocale(locale, base)
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return false
	}
	lang, _ := tag.Base()

	maxLocale, err := maximize(tag)
	if err != nil {
		return false
	}
	maxLang, err := maximize(language.Make(lang.String()))
	if err != nil {
		return false
	}
	return sameRaw(maxLocale, maxLang)
}

// BaseLocale returns the default locale of locale's language (fr-CA → fr-FR).
// The script subtag is kept only when locale itself carries one
// (zh-Hant-TW → zh-Hans-CN). Unparseable locales are returned unchanged.
func (c *Classifier) BaseLocale(locale string) string {
	if base, ok := c.bases[strings.ToLower(Language(locale))]; ok {
		return base
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return locale
	}
	lang, _ := tag.Base()
	maxLang, err := maximize(language.Make(lang.String()))
	if err != nil {
		return locale
	}
	b, s, r := maxLang.Raw()

	parts := []string{b.String()}
	if hasScript(locale) {
		parts = append(parts, s.String())
	}
	parts = append(parts, r.String())
	return strings.Join(parts, "-")
}

// Language returns the language subtag of locale.
func Language(locale string) string {
	return subtags(locale)[0]
}

func subtags(locale string) []string {
	return strings.Split(locale, "-")
}

func hasScript(locale string) bool {
	parts := subtags(locale)
	return len(parts) > 1 && len(parts[1]) == 4
}

// maximize adds the likely script and region subtags to t.
func maximize(t language.Tag) (language.Tag, error) {
	b, _ := t.Base()
	s, _ := t.Script()
	r, _ := t.Region()
	return language.Compose(b, s, r)
}

func sameRaw(a, b language.Tag) bool {
	ab, as, ar := a.Raw()
	bb, bs, br := b.Raw()
	return ab == bb && as == bs && ar == br
}

func sameLocale(a, b string) bool {
	if strings.EqualFold(a, b) {
		return true
	}
	ta, errA := language.Parse(a)
	tb, errB := language.Parse(b)
	if errA != nil || errB != nil {
		return false
	}
	ma, errA := maximize(ta)
	mb, errB := maximize(tb)
	if errA != nil || errB != nil {
		return false
	}
	return sameRaw(ma, mb)
}
