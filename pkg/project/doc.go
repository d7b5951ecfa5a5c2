// Package project runs a localization batch over a source tree.
//
// A Project discovers every handled appinfo.json below its root, extracts
// the localizable strings in parallel, resolves each document against a
// translation pool for every configured locale and writes the results to
// the output storage. Strings with no translation are collected into an
// XLIFF file for translators, and a manifest is written for each resource
// root once all documents are done.
//
//	p, err := project.New(ctx, cfg, project.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	if _, err := p.Extract(ctx); err != nil {
//		return err
//	}
//	pool, err := p.LoadPool(ctx)
//	if err != nil {
//		return err
//	}
//	report, err := p.Localize(ctx, pool)
//
// Failures of single documents never abort the batch; they are logged and
// collected in the returned Report.
package project
