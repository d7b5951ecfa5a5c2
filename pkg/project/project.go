package project

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/dmitrymomot/jsonloc/pkg/appinfo"
	"github.com/dmitrymomot/jsonloc/pkg/file"
	"github.com/dmitrymomot/jsonloc/pkg/logger"
	"github.com/dmitrymomot/jsonloc/pkg/schema"
	"github.com/dmitrymomot/jsonloc/pkg/tmstore"
)

// Project drives extraction and localization of every handled file below
// the project root.
type Project struct {
	cfg     Config
	source  fs.FS
	storage file.Storage
	store   *tmstore.Store
	logger  *slog.Logger
	typ     *appinfo.FileType

	mu        sync.Mutex
	files     []*appinfo.File
	extracted bool
}

// Option configures a Project.
type Option func(*Project)

// WithLogger sets the logger. A discard logger is used by default.
func WithLogger(l *slog.Logger) Option {
	return func(p *Project) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithSourceFS replaces the source tree, os.DirFS(cfg.Root) by default.
func WithSourceFS(fsys fs.FS) Option {
	return func(p *Project) {
		if fsys != nil {
			p.source = fsys
		}
	}
}

// WithStorage replaces the output backend built from cfg.Storage.
func WithStorage(s file.Storage) Option {
	return func(p *Project) {
		if s != nil {
			p.storage = s
		}
	}
}

// WithSnapshots enables translation-memory snapshots.
func WithSnapshots(store *tmstore.Store) Option {
	return func(p *Project) {
		p.store = store
	}
}

// New creates a project for cfg. The output storage is built from
// cfg.Storage unless WithStorage is given.
func New(ctx context.Context, cfg Config, opts ...Option) (*Project, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Project{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.source == nil {
		p.source = os.DirFS(cfg.Root)
	}

	if p.storage == nil {
		s, err := newStorage(ctx, cfg)
		if err != nil {
			return nil, err
		}
		p.storage = s
	}

	ftOpts := []appinfo.Option{
		appinfo.WithLogger(p.logger.With(logger.Component("appinfo"))),
		appinfo.WithSourceFS(p.source),
		appinfo.WithStorage(p.storage),
		appinfo.WithSchemaRegistry(schema.NewRegistry(schema.WithLogger(p.logger))),
	}
	if cfg.CommonXliff != "" {
		fsys, dir := p.dirFS(cfg.CommonXliff)
		ftOpts = append(ftOpts, appinfo.WithCommonPool(fsys, dir))
	}
	p.typ = appinfo.NewFileType(cfg.FileTypeConfig(), ftOpts...)

	return p, nil
}

func newStorage(ctx context.Context, cfg Config) (file.Storage, error) {
	switch cfg.Storage.Driver {
	case DriverS3:
		s, err := file.NewS3Storage(ctx, cfg.Storage.S3)
		if err != nil {
			return nil, errors.Join(ErrStorage, err)
		}
		return s, nil
	default:
		if err := os.MkdirAll(cfg.Target, 0o755); err != nil {
			return nil, errors.Join(ErrStorage, err)
		}
		s, err := file.NewLocalStorage(cfg.Target)
		if err != nil {
			return nil, errors.Join(ErrStorage, err)
		}
		return s, nil
	}
}

// Config returns the project configuration with defaults applied.
func (p *Project) Config() Config {
	return p.cfg
}

// FileType returns the shared appinfo file type.
func (p *Project) FileType() *appinfo.FileType {
	return p.typ
}

// Storage returns the output backend.
func (p *Project) Storage() file.Storage {
	return p.storage
}

// Files returns the parsed documents of the last extraction, in path order.
func (p *Project) Files() []*appinfo.File {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*appinfo.File(nil), p.files...)
}

func (p *Project) isExtracted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.extracted
}

// dirFS maps a configured directory to a file system and a path inside it.
// Relative directories are looked up in the source tree.
func (p *Project) dirFS(dir string) (fs.FS, string) {
	if filepath.IsAbs(dir) {
		return os.DirFS(dir), "."
	}
	return p.source, path.Clean(filepath.ToSlash(dir))
}
