// Package resource models translation records and the translation sets that
// hold them.
//
// A Resource is an immutable value describing one source string for one
// project, data type and (optionally) target locale. Every resource is
// addressed by a deterministic hash key built from
// {project, locale, reskey, datatype, flavor}; two resources that differ only
// in data type are distinct entries, which is what allows callers to look up
// an "alternate" data type for the same text.
//
// # Usage
//
//	set := resource.NewSet("en-US")
//	set.Add(resource.Resource{
//		Project:      "app",
//		Key:          "Live TV",
//		Source:       "Live TV",
//		SourceLocale: "en-US",
//		Target:       "(fr) Live TV",
//		TargetLocale: "fr-FR",
//		DataType:     "x-json",
//		State:        resource.StateTranslated,
//	})
//
//	r, ok := set.GetClean(resource.Key{
//		Project:  "app",
//		Locale:   "fr-FR",
//		ResKey:   "Live  TV ",
//		DataType: "x-json",
//	})
//
// GetClean tolerates whitespace differences in the reskey; Get requires the
// exact hash.
//
// # Concurrency
//
// Set is safe for concurrent use. Resources are values, so a resource returned
// from a set can never be mutated through it.
package resource
