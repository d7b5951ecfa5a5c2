package project

import (
	"context"
	"errors"
	"log/slog"
	"path"
	"sort"

	"github.com/dmitrymomot/jsonloc/pkg/appinfo"
	"github.com/dmitrymomot/jsonloc/pkg/async"
	"github.com/dmitrymomot/jsonloc/pkg/logger"
	"github.com/dmitrymomot/jsonloc/pkg/manifest"
	"github.com/dmitrymomot/jsonloc/pkg/resource"
	"github.com/dmitrymomot/jsonloc/pkg/xliff"
)

// LoadPool assembles the translation pool from the XLIFF files in
// cfg.XliffsDir and, when snapshots are enabled, the configured snapshot.
// A missing XLIFF directory yields an empty pool.
func (p *Project) LoadPool(ctx context.Context) (*resource.Set, error) {
	pool := resource.NewSet(p.cfg.SourceLocale)

	if p.cfg.XliffsDir != "" {
		fsys, dir := p.dirFS(p.cfg.XliffsDir)
		set, err := xliff.LoadDir(ctx, fsys, dir, p.cfg.SourceLocale, xliff.WithLogger(p.logger))
		switch {
		case errors.Is(err, xliff.ErrDirNotFound):
			p.logger.WarnContext(ctx, "translation directory not found", logger.Path(p.cfg.XliffsDir))
		case err != nil:
			return nil, errors.Join(ErrLoadPool, err)
		}
		pool.AddSet(set)
	}

	if p.store != nil {
		set, err := p.store.Load(ctx, p.cfg.Redis.Snapshot, p.cfg.SourceLocale)
		if err != nil {
			return nil, errors.Join(ErrLoadPool, ErrSnapshot, err)
		}
		pool.AddSet(set)
	}

	p.logger.InfoContext(ctx, "translation pool loaded", logger.Count(pool.Size()))
	return pool, nil
}

// Localize writes the localized documents of every extracted file for
// every configured locale, then writes the strings still lacking a
// translation to cfg.NewXliff and the manifests. Files are extracted first
// if Extract has not run. Document failures are reported, not returned.
func (p *Project) Localize(ctx context.Context, pool *resource.Set) (*Report, error) {
	if !p.isExtracted() {
		if _, err := p.Extract(ctx); err != nil {
			return nil, err
		}
	}
	files := p.Files()

	outcomes := async.Map(ctx, p.cfg.Workers, files, func(ctx context.Context, f *appinfo.File) (struct{}, error) {
		return struct{}{}, f.Localize(ctx, pool, p.cfg.Locales)
	})

	report := &Report{}
	newSet := resource.NewSet(p.cfg.SourceLocale)
	for i, o := range outcomes {
		// Merged in file order so the new-strings file does not depend on
		// worker scheduling.
		newSet.AddSet(files[i].NewStrings())
		if o.Err != nil {
			p.logger.ErrorContext(ctx, "localization failed", logger.Path(files[i].Path()), logger.Error(o.Err))
			report.fail(files[i].Path(), o.Err)
			continue
		}
		report.Documents++
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}

	report.Strings = newSet.Size()
	if newSet.Size() > 0 {
		if err := p.writeXliff(ctx, p.cfg.NewXliff, newSet.All()); err != nil {
			return report, err
		}
		if p.store != nil {
			if err := p.store.Save(ctx, "new", newSet); err != nil {
				return report, errors.Join(ErrSnapshot, err)
			}
		}
	}

	p.logger.InfoContext(ctx, "localization finished",
		slog.Int("documents", report.Documents),
		slog.Int("failed", len(report.Failed)),
		slog.Int("new_strings", report.Strings),
		slog.Int("locales", len(p.cfg.Locales)),
	)

	return report, p.Close(ctx)
}

// ManifestRoots returns the resource roots of the extracted files: the
// directories root locale outputs would be written to.
func (p *Project) ManifestRoots() []string {
	seen := make(map[string]bool)
	var roots []string
	for _, f := range p.Files() {
		root := path.Dir(f.LocalizedPath(p.cfg.RootLocale))
		if !seen[root] {
			seen[root] = true
			roots = append(roots, root)
		}
	}
	if len(roots) == 0 {
		roots = append(roots, path.Clean(p.cfg.ResourceDir))
	}
	sort.Strings(roots)
	return roots
}

// Close writes the manifest of every resource root.
func (p *Project) Close(ctx context.Context) error {
	var errs []error
	for _, root := range p.ManifestRoots() {
		if _, err := manifest.Write(ctx, p.storage, root, manifest.WithLogger(p.logger)); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrManifest}, errs...)...)
	}
	return nil
}

func (p *Project) writeXliff(ctx context.Context, name string, resources []resource.Resource) error {
	data, err := xliff.Marshal(resources)
	if err != nil {
		return errors.Join(ErrWriteXliff, err)
	}
	if err := p.storage.Write(ctx, name, data); err != nil {
		return errors.Join(ErrWriteXliff, err)
	}
	p.logger.InfoContext(ctx, "xliff file written", logger.Path(name), logger.Count(len(resources)))
	return nil
}
