package logger

import (
	"context"
	"log/slog"
)

type (
	documentKey struct{}
	localeKey   struct{}
)

// WithDocument stores the path of the document being processed in ctx.
func WithDocument(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, documentKey{}, path)
}

// WithLocale stores the target locale being processed in ctx.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey{}, locale)
}

// DocumentFromContext returns the document path stored by WithDocument.
func DocumentFromContext(ctx context.Context) (string, bool) {
	p, ok := ctx.Value(documentKey{}).(string)
	return p, ok && p != ""
}

// LocaleFromContext returns the locale stored by WithLocale.
func LocaleFromContext(ctx context.Context) (string, bool) {
	l, ok := ctx.Value(localeKey{}).(string)
	return l, ok && l != ""
}

// DocumentExtractor adds the document path from context as "document".
func DocumentExtractor() ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if p, ok := DocumentFromContext(ctx); ok {
			return slog.String("document", p), true
		}
		return slog.Attr{}, false
	}
}

// LocaleExtractor adds the target locale from context as "target_locale".
func LocaleExtractor() ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if l, ok := LocaleFromContext(ctx); ok {
			return slog.String("target_locale", l), true
		}
		return slog.Attr{}, false
	}
}
