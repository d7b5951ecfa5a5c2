// Package locale classifies BCP-47 locale specs the way the output layout of
// localized JSON files expects.
//
// Every language has one "base" locale, the region a bare language tag expands
// to under CLDR likely-subtags (de → de-DE, zh → zh-Hans-CN, pt → pt-BR).
// Localized files for a base locale live under the language directory alone
// (de/), every other locale gets its full subtag path (de/CH, zh/Hant/TW), and
// the project's root locale lives at the top of the resource directory.
//
// The same classification decides which locale a translation is compared
// against before it is written: a region variant is compared with its base
// locale, a base locale with the root locale.
//
//	c := locale.New(locale.WithRoot("en-US"))
//	info := c.Classify("de-CH")
//	// info.PathFragment == "de/CH", info.SuppressionBase == "de-DE"
//
// Likely subtags come from golang.org/x/text/language. Projects that ship a
// different default region for a language override it with WithBaseLocales.
package locale
