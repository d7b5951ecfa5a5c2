package appinfo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sync"

	"github.com/dmitrymomot/jsonloc/pkg/logger"
	"github.com/dmitrymomot/jsonloc/pkg/pathtmpl"
	"github.com/dmitrymomot/jsonloc/pkg/resource"
	"github.com/dmitrymomot/jsonloc/pkg/schema"
)

// File is a single appinfo.json document.
// A File must not be used from more than one goroutine at a time.
type File struct {
	typ      *FileType
	path     string
	template string

	parsed map[string]any
	props  *schema.Properties
	set    *resource.Set
	newres *resource.Set

	commonOnce    sync.Once
	commonProject string
	commonType    string
	commonLoaded  bool
}

func newFile(t *FileType, p string) *File {
	if p != "" {
		p = path.Clean(p)
	}
	return &File{
		typ:      t,
		path:     p,
		template: t.mapper.Template(p),
		set:      resource.NewSet(t.cfg.SourceLocale),
		newres:   resource.NewSet(t.cfg.SourceLocale),
	}
}

// Path returns the source path of the document.
func (f *File) Path() string {
	return f.path
}

// TranslationSet returns the resources extracted from this document.
func (f *File) TranslationSet() *resource.Set {
	return f.set
}

// NewStrings returns the strings of this document that had no translation
// when it was resolved. They are also part of the FileType's New set.
func (f *File) NewStrings() *resource.Set {
	return f.newres
}

// MakeKey returns the resource key for a source string.
func (f *File) MakeKey(source string) string {
	return UnescapeString(source)
}

// Extract reads the document from the source file system and extracts its
// localizable strings. A missing or unreadable file is logged and yields no
// strings; malformed JSON is returned as an error.
func (f *File) Extract(ctx context.Context) error {
	if f.path == "" {
		return nil
	}
	ctx = logger.WithDocument(ctx, f.path)
	f.typ.logger.DebugContext(ctx, "extracting strings")

	data, err := f.typ.readSource(f.path)
	if err != nil {
		f.typ.logger.WarnContext(ctx, "could not read file", logger.Path(f.path), logger.Error(err))
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return f.Parse(data)
}

// Parse decodes data as a JSON object and extracts its localizable strings.
func (f *File) Parse(data []byte) error {
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return errors.Join(ErrInvalidDocument, fmt.Errorf("%s: %w", f.path, err))
	}
	if obj == nil {
		return fmt.Errorf("%w: %s: top level value is not an object", ErrInvalidDocument, f.path)
	}
	f.ParseObject(obj)
	return nil
}

// ParseObject extracts the localizable strings of an already decoded
// document. Records are indexed from 0 in schema order.
func (f *File) ParseObject(obj map[string]any) {
	f.parsed = obj

	index := 0
	for _, prop := range f.properties().List() {
		value, ok := obj[prop.Name]
		text, isString := value.(string)
		if !ok || !prop.Matches(value) || !isString {
			f.typ.logger.Debug("property skipped",
				logger.Path(f.path),
				logger.Property(prop.Name),
			)
			continue
		}

		f.set.Add(resource.Resource{
			ResType:      resource.TypeString,
			Project:      f.typ.cfg.ProjectID,
			Key:          UnescapeString(text),
			SourceLocale: f.typ.cfg.SourceLocale,
			Source:       CleanString(text),
			AutoKey:      true,
			PathName:     f.path,
			State:        resource.StateNew,
			DataType:     DataType,
			Index:        index,
		})
		index++
	}
}

// Parsed reports whether the document has been parsed.
func (f *File) Parsed() bool {
	return f.parsed != nil
}

func (f *File) properties() schema.Properties {
	if f.props == nil {
		props := f.typ.Properties()
		f.props = &props
	}
	return *f.props
}

// LocalizedPath returns the output path for loc, relative to the output
// root.
func (f *File) LocalizedPath(loc string) string {
	info := f.typ.classifier.Classify(loc)
	return pathtmpl.Expand(f.template, pathtmpl.Params{
		SourcePath:  f.path,
		LocalePath:  info.PathFragment,
		ResourceDir: f.typ.cfg.ResourceDir,
	})
}

// FullLocalizedPath returns LocalizedPath joined to the output root.
func (f *File) FullLocalizedPath(loc string) string {
	return path.Join(f.typ.cfg.Target, f.LocalizedPath(loc))
}
