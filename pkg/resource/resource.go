package resource

import "strings"

// Translation states understood by the translation-memory tooling.
const (
	StateNew                    = "new"
	StateTranslated             = "translated"
	StateNeedsReviewTranslation = "needs-review-translation"
	StateSignedOff              = "signed-off"
	StateFinal                  = "final"
)

// TypeString is the only resource type produced for JSON properties.
const TypeString = "string"

// Key identifies a translation. Its Hash is the lookup key of a Set.
type Key struct {
	Project  string
	Locale   string
	ResKey   string
	DataType string
	Flavor   string
}

// Hash returns the deterministic hash key for k.
func (k Key) Hash() string {
	return strings.Join([]string{"rs", k.Project, k.Locale, k.ResKey, k.DataType, k.Flavor}, "_")
}

// WithDataType returns a copy of k scoped to another data type.
func (k Key) WithDataType(dataType string) Key {
	k.DataType = dataType
	return k
}

// WithLocale returns a copy of k scoped to another locale.
func (k Key) WithLocale(locale string) Key {
	k.Locale = locale
	return k
}

// WithProject returns a copy of k scoped to another project.
func (k Key) WithProject(project string) Key {
	k.Project = project
	return k
}

// clean normalises the reskey so that lookups tolerate formatting noise.
func (k Key) clean() Key {
	k.ResKey = normalizeSpace(k.ResKey)
	return k
}

// Resource is a single translation record.
type Resource struct {
	ResType      string `json:"res_type,omitempty"`
	Project      string `json:"project"`
	Key          string `json:"key"`
	SourceLocale string `json:"source_locale,omitempty"`
	Source       string `json:"source"`
	TargetLocale string `json:"target_locale,omitempty"`
	Target       string `json:"target,omitempty"`
	State        string `json:"state,omitempty"`
	DataType     string `json:"datatype,omitempty"`
	Flavor       string `json:"flavor,omitempty"`
	PathName     string `json:"path,omitempty"`
	Comment      string `json:"comment,omitempty"`
	AutoKey      bool   `json:"auto_key,omitempty"`
	Index        int    `json:"index"`
}

// KeyFor returns the lookup key of r for the given locale.
func (r Resource) KeyFor(locale string) Key {
	return Key{
		Project:  r.Project,
		Locale:   locale,
		ResKey:   r.Key,
		DataType: r.DataType,
		Flavor:   r.Flavor,
	}
}

// HashKey returns the hash key under which r is stored in a Set.
// Translated records are keyed by their target locale.
func (r Resource) HashKey() string {
	return r.KeyFor(r.locale()).Hash()
}

// IsTranslated reports whether r carries a target for a target locale.
func (r Resource) IsTranslated() bool {
	return r.TargetLocale != "" && r.Target != "" && r.State != StateNew
}

func (r Resource) locale() string {
	if r.TargetLocale != "" {
		return r.TargetLocale
	}
	return r.SourceLocale
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
