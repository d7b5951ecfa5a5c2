// Package appinfo extracts localizable strings from appinfo.json files and
// writes per-locale copies containing translated values.
//
// FileType holds what all documents of a project share: configuration, the
// schema registry, locale classification, output path mappings, the output
// storage and the two aggregate sets (Extracted and New). File is one source
// document; it owns only its parsed data and per-document caches.
//
// # Resolution
//
// For every localizable property, in schema order, Resolve tries an ordered
// list of strategies:
//
//  1. DirectStrategy: the translation for the target locale.
//  2. CommonPoolStrategy: the same lookup scoped to the project and datatype
//     of the common translation pool.
//  3. InheritStrategy: the translation of the locale the target inherits from.
//
// Each lookup tries the document's datatype (x-json) first and then the
// alternate datatype (javascript). A value found by the first two strategies
// is dropped when it equals the translation of the locale's suppression base
// (fr-FR for fr-CA, the root locale for fr-FR); inherited values are always
// emitted. When no strategy finds a value, the string is registered in the
// FileType's New set and left out of the output.
//
// Outputs with no properties are not written.
package appinfo
