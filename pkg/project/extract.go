package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/jsonloc/pkg/appinfo"
	"github.com/dmitrymomot/jsonloc/pkg/async"
	"github.com/dmitrymomot/jsonloc/pkg/logger"
)

// Report summarizes a batch step.
type Report struct {
	Documents int
	Strings   int
	Failed    map[string]error
}

// Err joins the document failures, or returns nil.
func (r *Report) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	errs := []error{ErrDocumentsFailed}
	for p, err := range r.Failed {
		errs = append(errs, fmt.Errorf("%s: %w", p, err))
	}
	return errors.Join(errs...)
}

func (r *Report) fail(p string, err error) {
	if r.Failed == nil {
		r.Failed = make(map[string]error)
	}
	r.Failed[p] = err
}

// Extract discovers and extracts every source file using cfg.Workers
// goroutines. Strings are merged into the file type's extracted set in path
// order. A failing document is reported and does not stop the others.
func (p *Project) Extract(ctx context.Context) (*Report, error) {
	paths, err := p.Discover(ctx)
	if err != nil {
		return nil, err
	}

	outcomes := async.Map(ctx, p.cfg.Workers, paths, func(ctx context.Context, name string) (*appinfo.File, error) {
		f := p.typ.NewFile(name)
		if err := f.Extract(ctx); err != nil {
			return nil, err
		}
		return f, nil
	})

	report := &Report{}
	files := make([]*appinfo.File, 0, len(paths))
	for i, o := range outcomes {
		if o.Err != nil {
			p.logger.ErrorContext(ctx, "extraction failed", logger.Path(paths[i]), logger.Error(o.Err))
			report.fail(paths[i], o.Err)
			continue
		}
		report.Documents++
		report.Strings += o.Value.TranslationSet().Size()
		p.typ.AddSet(o.Value.TranslationSet())
		if o.Value.Parsed() {
			files = append(files, o.Value)
		}
	}

	p.mu.Lock()
	p.files = files
	p.extracted = true
	p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return report, err
	}

	p.logger.InfoContext(ctx, "strings extracted",
		logger.Count(report.Strings),
		slog.Int("documents", report.Documents),
		slog.Int("failed", len(report.Failed)),
	)
	return report, nil
}

// WriteExtracted writes the extracted strings to cfg.ExtractXliff in the
// output storage and saves them as the "extracted" snapshot when snapshots
// are enabled.
func (p *Project) WriteExtracted(ctx context.Context) error {
	set := p.typ.Extracted()
	if set.Size() == 0 {
		return nil
	}

	if err := p.writeXliff(ctx, p.cfg.ExtractXliff, set.All()); err != nil {
		return err
	}
	if p.store != nil {
		if err := p.store.Save(ctx, "extracted", set); err != nil {
			return errors.Join(ErrSnapshot, err)
		}
	}
	return nil
}
