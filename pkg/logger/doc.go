// Package logger builds the *slog.Logger used by the jsonloc tools.
//
// New creates a logger configured by Option functions: output format (text or
// json), minimum level, static attributes and ContextExtractor callbacks that
// copy values stored in a context.Context onto every record.
//
// # Architecture
//
// New picks slog.NewTextHandler or slog.NewJSONHandler for the configured
// Format and wraps it with NewContextHandler, which runs the registered
// extractors before delegating to the underlying handler.
//
// The batch driver tags contexts with the document and target locale being
// processed (WithDocument, WithLocale); DocumentExtractor and LocaleExtractor
// turn those into "document" and "target_locale" attributes. Helper
// constructors in attr.go (Path, Locale, Property, Project, Tier, Count, ...)
// keep attribute names consistent across packages.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "jsonloc"),
//	    logger.WithLevelName(cfg.LogLevel),
//	    logger.WithAttr(logger.RunID(uuid.NewString())),
//	    logger.WithContextExtractors(logger.DocumentExtractor(), logger.LocaleExtractor()),
//	)
//
//	ctx = logger.WithDocument(ctx, "apps/photo/appinfo.json")
//	log.WarnContext(ctx, "could not read file", logger.Error(err))
//
// # Configuration
//
//   - WithDevelopment / WithCI / WithProduction / WithEnvironment: defaults per environment.
//   - WithFormat / WithTextFormatter / WithJSONFormatter: override output format.
//   - WithLevel / WithLevelName: set the minimum level.
//   - WithAttr: attach static attributes.
//   - WithContextExtractors / WithContextValue: inject attributes from context.
//
// Logs go to stderr by default so that command output on stdout stays clean.
//
// # Error Handling
//
// Error and Errors produce attributes only for non-nil errors:
//
//	log.Info("localized", logger.Error(err))
package logger
