package appinfo

import (
	"github.com/dmitrymomot/jsonloc/pkg/resource"
)

// Query is one property lookup for one target locale.
type Query struct {
	Property string
	// Key is keyed to the target locale, the document's project and DataType.
	Key resource.Key
}

// Locale returns the target locale of q.
func (q Query) Locale() string {
	return q.Key.Locale
}

// Result is the outcome of a strategy.
type Result struct {
	Value string
	Found bool
	// Unconditional results are emitted without the suppression check.
	Unconditional bool
}

// Strategy is one tier of the resolution pipeline.
type Strategy interface {
	Name() string
	Resolve(pool *resource.Set, q Query) Result
}

// Lookup finds the translation for key, first under the key's datatype and
// then under AlternateDataType. Records without a target are ignored.
func Lookup(pool *resource.Set, key resource.Key) (resource.Resource, bool) {
	if pool == nil {
		return resource.Resource{}, false
	}
	if r, ok := pool.GetClean(key); ok && r.Target != "" {
		return r, true
	}
	if key.DataType == AlternateDataType {
		return resource.Resource{}, false
	}
	if r, ok := pool.GetClean(key.WithDataType(AlternateDataType)); ok && r.Target != "" {
		return r, true
	}
	return resource.Resource{}, false
}

// DirectStrategy looks the translation up for the target locale.
type DirectStrategy struct{}

func (DirectStrategy) Name() string { return "direct" }

func (DirectStrategy) Resolve(pool *resource.Set, q Query) Result {
	if r, ok := Lookup(pool, q.Key); ok {
		return Result{Value: r.Target, Found: true}
	}
	return Result{}
}

// CommonPoolStrategy looks the translation up in the common pool's project
// and datatype. It finds nothing while Project and DataType are empty.
type CommonPoolStrategy struct {
	Project  string
	DataType string
}

func (CommonPoolStrategy) Name() string { return "common" }

func (s CommonPoolStrategy) Resolve(pool *resource.Set, q Query) Result {
	if s.Project == "" && s.DataType == "" {
		return Result{}
	}
	key := q.Key.WithProject(s.Project).WithDataType(s.DataType)
	if r, ok := Lookup(pool, key); ok {
		return Result{Value: r.Target, Found: true}
	}
	return Result{}
}

// InheritStrategy looks the translation up for the locale the target locale
// inherits from. Its results bypass suppression.
type InheritStrategy struct {
	Inherit map[string]string
}

func (InheritStrategy) Name() string { return "inherit" }

func (s InheritStrategy) Resolve(pool *resource.Set, q Query) Result {
	parent, ok := s.Inherit[q.Locale()]
	if !ok || parent == "" {
		return Result{}
	}
	if r, ok := Lookup(pool, q.Key.WithLocale(parent)); ok {
		return Result{Value: r.Target, Found: true, Unconditional: true}
	}
	return Result{}
}
