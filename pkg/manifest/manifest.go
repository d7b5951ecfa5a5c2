package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/jsonloc/pkg/file"
	"github.com/dmitrymomot/jsonloc/pkg/logger"
)

// FileName is the name of the manifest written at the resource root.
const FileName = "ilibmanifest.json"

// Manifest is the content of a manifest file.
type Manifest struct {
	Files     []string `json:"files"`
	Timestamp string   `json:"l10n_timestamp,omitempty"`
	Generated bool     `json:"generated,omitempty"`
}

type options struct {
	now    func() time.Time
	logger *slog.Logger
}

// Option configures Write.
type Option func(*options)

// WithClock overrides the clock used for the l10n timestamp.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger sets the logger. A discard logger is used by default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Write generates the manifest for the resource tree at root in storage.
// It reports whether a manifest was written. A missing root, an existing
// generated manifest or a tree without .json files are not errors.
func Write(ctx context.Context, storage file.Storage, root string, opts ...Option) (bool, error) {
	o := options{
		now:    time.Now,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if !storage.Exists(ctx, root) {
		o.logger.DebugContext(ctx, "resource root not found", logger.Path(root))
		return false, nil
	}

	m, err := Collect(ctx, storage, root)
	if err != nil {
		return false, err
	}

	manifestPath := joinRoot(root, FileName)
	generated, err := isGenerated(ctx, storage, manifestPath)
	if err != nil {
		return false, err
	}
	if generated || len(m.Files) == 0 {
		o.logger.DebugContext(ctx, "manifest skipped",
			logger.Path(manifestPath),
			logger.Count(len(m.Files)),
			slog.Bool("generated", generated),
		)
		return false, nil
	}

	for _, f := range m.Files {
		o.logger.DebugContext(ctx, "adding file to manifest", logger.Path(joinRoot(root, f)))
	}

	m.Timestamp = strconv.FormatInt(o.now().UnixMilli(), 10)
	m.Generated = true

	data, err := m.MarshalIndent()
	if err != nil {
		return false, errors.Join(ErrWriteManifest, err)
	}
	if err := storage.Write(ctx, manifestPath, data); err != nil {
		return false, errors.Join(ErrWriteManifest, err)
	}

	o.logger.InfoContext(ctx, "manifest written",
		logger.Path(manifestPath),
		logger.Count(len(m.Files)),
	)
	return true, nil
}

// Collect lists the .json files below root, except the manifest itself.
func Collect(ctx context.Context, storage file.Storage, root string) (Manifest, error) {
	m := Manifest{Files: []string{}}
	err := file.Walk(ctx, storage, root, func(rel string, entry file.Entry) error {
		if path.Ext(entry.Name) == ".json" && entry.Name != FileName {
			m.Files = append(m.Files, rel)
		}
		return nil
	})
	if err != nil {
		return Manifest{}, errors.Join(ErrWalkRoot, err)
	}
	return m, nil
}

// MarshalIndent encodes the manifest with four-space indentation.
func (m Manifest) MarshalIndent() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// isGenerated reports whether the manifest at p exists and carries the
// generated marker, whatever its value.
func isGenerated(ctx context.Context, storage file.Storage, p string) (bool, error) {
	if !storage.Exists(ctx, p) {
		return false, nil
	}
	data, err := storage.Read(ctx, p)
	if err != nil {
		return false, fmt.Errorf("%w: %s: %w", ErrInvalidManifest, p, err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return false, fmt.Errorf("%w: %s: %w", ErrInvalidManifest, p, err)
	}
	_, ok := fields["generated"]
	return ok, nil
}

func joinRoot(root, name string) string {
	root = strings.Trim(root, "/")
	if root == "" || root == "." {
		return name
	}
	return path.Join(root, name)
}
