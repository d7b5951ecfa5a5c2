package appinfo

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"regexp"
	"sync"

	"github.com/dmitrymomot/jsonloc/pkg/file"
	"github.com/dmitrymomot/jsonloc/pkg/locale"
	"github.com/dmitrymomot/jsonloc/pkg/logger"
	"github.com/dmitrymomot/jsonloc/pkg/pathtmpl"
	"github.com/dmitrymomot/jsonloc/pkg/resource"
	"github.com/dmitrymomot/jsonloc/pkg/schema"
	"github.com/dmitrymomot/jsonloc/pkg/xliff"
)

const (
	// DataType tags every resource extracted from an appinfo.json file.
	DataType = "x-json"
	// AlternateDataType is tried when no record exists under DataType.
	AlternateDataType = "javascript"
	// DefaultFileName is the source file name handled by default.
	DefaultFileName = "appinfo.json"
)

// alreadyLocalized matches paths inside a locale directory such as
// "de/", "zh/Hant/TW/" or "fr/CA/".
var alreadyLocalized = regexp.MustCompile(`(^|/)([a-z][a-z])((/[A-Z][a-z][a-z][a-z])?)(/([A-Z][A-Z])?)?/`)

// Config is the project configuration consumed by a FileType.
type Config struct {
	ProjectID     string
	SourceLocale  string
	RootLocale    string
	Target        string // output root, informational when a storage is supplied
	SchemaPath    string // empty selects the embedded schema
	ResourceDir   string
	FileName      string
	LocaleInherit map[string]string
	BaseLocales   map[string]string
	CommonDir     string
	Mappings      []pathtmpl.Mapping
}

// FileType is shared by every appinfo.json document of a project.
// It is safe for concurrent use.
type FileType struct {
	cfg        Config
	schemas    *schema.Registry
	classifier *locale.Classifier
	mapper     *pathtmpl.Mapper
	source     fs.FS
	commonFS   fs.FS
	commonDir  string
	storage    file.Storage
	logger     *slog.Logger

	extracted *resource.Set
	newres    *resource.Set

	commonOnce sync.Once
	commonDocs []xliff.Document
}

// Option configures a FileType.
type Option func(*FileType)

// WithLogger sets the logger. A discard logger is used by default.
func WithLogger(l *slog.Logger) Option {
	return func(t *FileType) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithSchemaRegistry shares a schema registry between file types.
func WithSchemaRegistry(r *schema.Registry) Option {
	return func(t *FileType) {
		if r != nil {
			t.schemas = r
		}
	}
}

// WithClassifier overrides the locale classifier built from Config.
func WithClassifier(c *locale.Classifier) Option {
	return func(t *FileType) {
		if c != nil {
			t.classifier = c
		}
	}
}

// WithMapper overrides the path mapper built from Config.Mappings.
func WithMapper(m *pathtmpl.Mapper) Option {
	return func(t *FileType) {
		if m != nil {
			t.mapper = m
		}
	}
}

// WithSourceFS sets the file system source documents are read from.
// Paths given to NewFile are relative to it.
func WithSourceFS(fsys fs.FS) Option {
	return func(t *FileType) {
		if fsys != nil {
			t.source = fsys
		}
	}
}

// WithCommonPool reads the common translation pool from dir inside fsys.
func WithCommonPool(fsys fs.FS, dir string) Option {
	return func(t *FileType) {
		t.commonFS = fsys
		t.commonDir = dir
	}
}

// WithStorage sets the backend localized files are written to.
func WithStorage(s file.Storage) Option {
	return func(t *FileType) {
		if s != nil {
			t.storage = s
		}
	}
}

// NewFileType creates a FileType for cfg.
func NewFileType(cfg Config, opts ...Option) *FileType {
	if cfg.SourceLocale == "" {
		cfg.SourceLocale = locale.DefaultRoot
	}
	if cfg.RootLocale == "" {
		cfg.RootLocale = locale.DefaultRoot
	}
	if cfg.FileName == "" {
		cfg.FileName = DefaultFileName
	}

	t := &FileType{
		cfg:       cfg,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		extracted: resource.NewSet(cfg.SourceLocale),
		newres:    resource.NewSet(cfg.SourceLocale),
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.schemas == nil {
		t.schemas = schema.NewRegistry(schema.WithLogger(t.logger))
	}
	if t.classifier == nil {
		t.classifier = locale.New(
			locale.WithRoot(cfg.RootLocale),
			locale.WithBaseLocales(cfg.BaseLocales),
		)
	}
	if t.mapper == nil {
		t.mapper = pathtmpl.NewMapper(cfg.Mappings, "")
	}
	if t.source == nil {
		t.source = os.DirFS(".")
	}
	if t.commonFS == nil && cfg.CommonDir != "" {
		t.commonFS = os.DirFS(cfg.CommonDir)
		t.commonDir = "."
	}

	return t
}

// Config returns the configuration the file type was created with,
// with defaults applied.
func (t *FileType) Config() Config {
	return t.cfg
}

// DataType returns the datatype of extracted resources.
func (t *FileType) DataType() string {
	return DataType
}

// Classifier returns the locale classifier.
func (t *FileType) Classifier() *locale.Classifier {
	return t.classifier
}

// Storage returns the output backend, or nil.
func (t *FileType) Storage() file.Storage {
	return t.storage
}

// Handles reports whether p is a source document of this type: its base
// name is the handled file name and it does not live inside a locale
// directory.
func (t *FileType) Handles(p string) bool {
	if p == "" || path.Base(p) != t.cfg.FileName {
		return false
	}
	if alreadyLocalized.MatchString(p) {
		t.logger.Debug("already localized file", logger.Path(p))
		return false
	}
	return true
}

// NewFile creates the document for the source path p.
func (t *FileType) NewFile(p string) *File {
	return newFile(t, p)
}

// Extracted returns every resource extracted from documents of this type.
func (t *FileType) Extracted() *resource.Set {
	return t.extracted
}

// AddSet merges set into the extracted resources.
func (t *FileType) AddSet(set *resource.Set) {
	t.extracted.AddSet(set)
}

// New returns the strings found during localization that have no
// translation yet.
func (t *FileType) New() *resource.Set {
	return t.newres
}

// Mapping returns the configured mapping for p.
func (t *FileType) Mapping(p string) (pathtmpl.Mapping, bool) {
	return t.mapper.Match(p)
}

// DefaultMapping returns the mapping used when no pattern matches.
func (t *FileType) DefaultMapping() pathtmpl.Mapping {
	return t.mapper.Default()
}

// IsSourceLocale reports whether loc is the project's source locale.
func (t *FileType) IsSourceLocale(loc string) bool {
	return loc == t.cfg.SourceLocale
}

// Properties returns the localizable properties of the configured schema.
func (t *FileType) Properties() schema.Properties {
	return t.schemas.Load(t.cfg.SchemaPath)
}

// commonPool decodes the common translation pool once per file type.
// A missing directory yields no documents.
func (t *FileType) commonPool(ctx context.Context) []xliff.Document {
	if t.commonFS == nil {
		return nil
	}
	t.commonOnce.Do(func() {
		docs, err := xliff.ReadDir(ctx, t.commonFS, t.commonDir, xliff.WithLogger(t.logger))
		if err != nil {
			t.logger.DebugContext(ctx, "common translation pool not loaded",
				logger.Path(t.cfg.CommonDir),
				logger.Error(err),
			)
		}
		t.commonDocs = docs
	})
	return t.commonDocs
}

func (t *FileType) readSource(p string) ([]byte, error) {
	return fs.ReadFile(t.source, p)
}
