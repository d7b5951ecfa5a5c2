package xliff

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"github.com/dmitrymomot/jsonloc/pkg/resource"
)

// Document is one decoded file of a directory.
type Document struct {
	Path      string
	Resources []resource.Resource
}

// Option configures directory loading.
type Option func(*loader)

type loader struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for skipped files.
func WithLogger(logger *slog.Logger) Option {
	return func(l *loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// IsXliff reports whether name has an XLIFF file extension.
func IsXliff(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".xliff", ".xlf":
		return true
	}
	return false
}

// ReadDir decodes every XLIFF file directly inside dir, in lexical order.
// Files that fail to read or decode are logged and skipped.
func ReadDir(ctx context.Context, fsys fs.FS, dir string, opts ...Option) ([]Document, error) {
	l := &loader{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(l)
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Join(ErrDirNotFound, err)
		}
		return nil, errors.Join(ErrFailedToRead, err)
	}

	var docs []Document
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return docs, err
		}
		if entry.IsDir() || !IsXliff(entry.Name()) {
			continue
		}

		p := path.Join(dir, entry.Name())
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			l.logger.Warn("could not read xliff file", slog.String("path", p), slog.String("error", err.Error()))
			continue
		}
		res, err := Parse(data)
		if err != nil {
			l.logger.Warn("could not parse xliff file", slog.String("path", p), slog.String("error", err.Error()))
			continue
		}
		docs = append(docs, Document{Path: p, Resources: res})
	}

	return docs, nil
}

// LoadDir reads every XLIFF file in dir into a new set.
func LoadDir(ctx context.Context, fsys fs.FS, dir, sourceLocale string, opts ...Option) (*resource.Set, error) {
	set := resource.NewSet(sourceLocale)
	docs, err := ReadDir(ctx, fsys, dir, opts...)
	for _, doc := range docs {
		set.Add(doc.Resources...)
	}
	return set, err
}
