package schema

import (
	_ "embed"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"sync"
)

//go:embed appinfo.schema.json
var defaultSchema []byte

// DefaultSchema returns a copy of the embedded appinfo.json schema.
func DefaultSchema() []byte {
	out := make([]byte, len(defaultSchema))
	copy(out, defaultSchema)
	return out
}

// Registry loads schemas and caches the result per path.
// The empty path selects the embedded default schema.
type Registry struct {
	mu     sync.Mutex
	cache  map[string]Properties
	fsys   fs.FS
	logger *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for load warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithFS resolves schema paths against fsys instead of the OS file system.
func WithFS(fsys fs.FS) Option {
	return func(r *Registry) {
		r.fsys = fsys
	}
}

// NewRegistry creates a schema registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		cache:  make(map[string]Properties),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load returns the localizable properties of the schema at path.
// Failures are logged and yield an empty set; the result is cached either way.
func (r *Registry) Load(path string) Properties {
	r.mu.Lock()
	defer r.mu.Unlock()

	if props, ok := r.cache[path]; ok {
		return props
	}

	props, err := r.load(path)
	if err != nil {
		r.logger.Warn("could not load schema file",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
	}
	for _, name := range props.Untyped() {
		r.logger.Debug("unsupported property type, property is skipped",
			slog.String("path", path),
			slog.String("property", name),
		)
	}
	r.cache[path] = props
	return props
}

// LoadFile is like Load but returns the error and bypasses the cache.
func (r *Registry) LoadFile(path string) (Properties, error) {
	return r.load(path)
}

func (r *Registry) load(path string) (Properties, error) {
	if path == "" {
		return Parse(defaultSchema)
	}

	data, err := r.readFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Properties{}, errors.Join(ErrSchemaNotFound, err)
		}
		return Properties{}, errors.Join(ErrFailedToReadSchema, err)
	}
	return Parse(data)
}

func (r *Registry) readFile(path string) ([]byte, error) {
	if r.fsys != nil {
		return fs.ReadFile(r.fsys, path)
	}
	return os.ReadFile(path)
}
