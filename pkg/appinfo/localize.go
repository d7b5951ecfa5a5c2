package appinfo

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrymomot/jsonloc/pkg/logger"
	"github.com/dmitrymomot/jsonloc/pkg/resource"
)

// Strategies returns the resolution pipeline for this document, in order.
// The common pool scope is empty until the pool has been loaded.
func (f *File) Strategies() []Strategy {
	return []Strategy{
		DirectStrategy{},
		CommonPoolStrategy{Project: f.commonProject, DataType: f.commonType},
		InheritStrategy{Inherit: f.typ.cfg.LocaleInherit},
	}
}

// LoadCommon merges the configured common translation pool into pool.
// It runs at most once per document.
func (f *File) LoadCommon(ctx context.Context, pool *resource.Set) {
	f.loadCommon(ctx, pool)
}

// Resolve computes the localized document for loc. Strings without any
// translation are added to the FileType's New set.
func (f *File) Resolve(ctx context.Context, pool *resource.Set, loc string) (*Output, error) {
	if f.parsed == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotParsed, f.path)
	}
	ctx = logger.WithLocale(logger.WithDocument(ctx, f.path), loc)
	f.loadCommon(ctx, pool)

	strategies := f.Strategies()
	out := NewOutput()

	for _, prop := range f.properties().List() {
		value, ok := f.parsed[prop.Name]
		text, isString := value.(string)
		if !ok || !isString || !prop.Matches(value) {
			continue
		}

		escaped := EscapeInvalidChars(text)
		q := Query{
			Property: prop.Name,
			Key: resource.Key{
				Project:  f.typ.cfg.ProjectID,
				Locale:   loc,
				ResKey:   f.MakeKey(escaped),
				DataType: DataType,
			},
		}

		res, tier := f.resolve(pool, strategies, q)
		if !res.Found {
			f.typ.logger.DebugContext(ctx, "new string found", logger.Property(prop.Name))
			r := f.newResource(escaped, q.Key.ResKey, loc)
			f.newres.Add(r)
			f.typ.newres.Add(r)
			continue
		}

		if !res.Unconditional {
			if base, ok := f.baseTranslation(pool, q); ok && base == res.Value {
				f.typ.logger.DebugContext(ctx, "translation same as base locale",
					logger.Property(prop.Name),
					logger.Tier(tier),
				)
				continue
			}
		}
		out.Set(prop.Name, res.Value)
	}

	return out, nil
}

func (f *File) resolve(pool *resource.Set, strategies []Strategy, q Query) (Result, string) {
	for _, s := range strategies {
		if res := s.Resolve(pool, q); res.Found {
			return res, s.Name()
		}
	}
	return Result{}, ""
}

// baseTranslation returns the translation registered for the locale whose
// file already provides q's value.
func (f *File) baseTranslation(pool *resource.Set, q Query) (string, bool) {
	base := f.typ.classifier.Classify(q.Locale()).SuppressionBase
	if base == "" {
		return "", false
	}
	r, ok := Lookup(pool, q.Key.WithLocale(base))
	if !ok {
		return "", false
	}
	return r.Target, true
}

func (f *File) newResource(text, key, loc string) resource.Resource {
	return resource.Resource{
		ResType:      resource.TypeString,
		Project:      f.typ.cfg.ProjectID,
		Key:          key,
		SourceLocale: f.typ.cfg.SourceLocale,
		Source:       text,
		TargetLocale: loc,
		Target:       text,
		State:        resource.StateNew,
		DataType:     DataType,
		PathName:     f.path,
	}
}

// LocalizeText returns the JSON text of the localized document for loc.
func (f *File) LocalizeText(ctx context.Context, pool *resource.Set, loc string) (string, error) {
	out, err := f.Resolve(ctx, pool, loc)
	if err != nil {
		return "", err
	}
	return out.String(), nil
}

// Localize writes the localized document for every locale except the
// source locale. Empty documents are not written. Write failures are
// collected and returned together after all locales were processed.
func (f *File) Localize(ctx context.Context, pool *resource.Set, locales []string) error {
	if f.parsed == nil {
		return fmt.Errorf("%w: %s", ErrNotParsed, f.path)
	}

	var errs []error
	for _, loc := range locales {
		if err := ctx.Err(); err != nil {
			return errors.Join(append(errs, err)...)
		}
		if f.typ.IsSourceLocale(loc) {
			continue
		}

		out, err := f.Resolve(ctx, pool, loc)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if out.Len() == 0 {
			continue
		}

		if err := f.write(ctx, loc, out); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *File) write(ctx context.Context, loc string, out *Output) error {
	if f.typ.storage == nil {
		return ErrNoStorage
	}
	data, err := out.MarshalJSON()
	if err != nil {
		return errors.Join(ErrWriteOutput, err)
	}

	p := f.LocalizedPath(loc)
	if err := f.typ.storage.Write(ctx, p, data); err != nil {
		return errors.Join(ErrWriteOutput, fmt.Errorf("%s: %w", p, err))
	}

	f.typ.logger.InfoContext(logger.WithLocale(ctx, loc), "localized file written",
		logger.Path(p),
		logger.Count(out.Len()),
	)
	return nil
}
