// Package xliff reads and writes XLIFF 1.2 translation files.
//
// Each <file> element carries the project (product-name), the source and
// target locales and a default datatype; each <trans-unit> becomes one
// resource.Resource. Marshal groups resources back into <file> elements per
// source path, project and target locale.
//
// LoadDir reads every .xliff or .xlf file of a directory into a single
// translation set. Files that cannot be read or decoded are logged and
// skipped.
package xliff
