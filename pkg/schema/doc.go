// Package schema loads JSON Schema files and reports which top-level
// properties are marked `"localizable": true`.
//
// Only the subset of JSON Schema needed for extraction is read: the
// `properties` object and, per property, its `type` and `localizable` flags.
// Properties are returned in the order they are declared in the schema file,
// which fixes the order of extracted strings and of localized output.
//
// A missing schema file is not an error for callers that only need the
// localizable set: Registry.Load logs a warning and returns an empty
// Properties value.
//
//	reg := schema.NewRegistry(schema.WithLogger(log))
//	props := reg.Load(ctx, "") // embedded appinfo schema
//	for _, p := range props.List() {
//		fmt.Println(p.Name, p.Type)
//	}
package schema
