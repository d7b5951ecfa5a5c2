package project

import (
	"fmt"

	"github.com/dmitrymomot/jsonloc/pkg/appinfo"
	"github.com/dmitrymomot/jsonloc/pkg/file"
	"github.com/dmitrymomot/jsonloc/pkg/pathtmpl"
	"github.com/dmitrymomot/jsonloc/pkg/tmstore"
)

// Storage drivers.
const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

// Config describes a localization project. It is read from a YAML project
// file, and every scalar can be overridden from the environment.
type Config struct {
	ID            string             `yaml:"id" env:"JSONLOC_PROJECT_ID"`
	SourceLocale  string             `yaml:"source_locale" env:"JSONLOC_SOURCE_LOCALE" envDefault:"en-US"`
	RootLocale    string             `yaml:"root_locale" env:"JSONLOC_ROOT_LOCALE" envDefault:"en-US"`
	Locales       []string           `yaml:"locales" env:"JSONLOC_LOCALES" envSeparator:","`
	Root          string             `yaml:"root" env:"JSONLOC_ROOT" envDefault:"."`
	Target        string             `yaml:"target" env:"JSONLOC_TARGET"` // defaults to Root
	Schema        string             `yaml:"schema" env:"JSONLOC_SCHEMA"` // empty selects the built-in schema
	ResourceDir   string             `yaml:"resource_dir" env:"JSONLOC_RESOURCE_DIR" envDefault:"resources"`
	HandledFile   string             `yaml:"handled_file" env:"JSONLOC_HANDLED_FILE" envDefault:"appinfo.json"`
	LocaleInherit map[string]string  `yaml:"locale_inherit" env:"JSONLOC_LOCALE_INHERIT"`
	BaseLocales   map[string]string  `yaml:"base_locales" env:"JSONLOC_BASE_LOCALES"`
	CommonXliff   string             `yaml:"common_xliff" env:"JSONLOC_COMMON_XLIFF"`
	XliffsDir     string             `yaml:"xliffs_dir" env:"JSONLOC_XLIFFS_DIR"`
	NewXliff      string             `yaml:"new_xliff" env:"JSONLOC_NEW_XLIFF" envDefault:"new-strings.xliff"`
	ExtractXliff  string             `yaml:"extract_xliff" env:"JSONLOC_EXTRACT_XLIFF" envDefault:"extracted.xliff"`
	Mappings      []pathtmpl.Mapping `yaml:"mappings"`
	Workers       int                `yaml:"workers" env:"JSONLOC_WORKERS" envDefault:"4"`
	Storage       StorageConfig      `yaml:"storage"`
	Redis         tmstore.Config     `yaml:"redis" envPrefix:"JSONLOC_"`
	Log           LogConfig          `yaml:"log"`
}

// StorageConfig selects the backend localized files are written to.
type StorageConfig struct {
	Driver string        `yaml:"driver" env:"JSONLOC_STORAGE" envDefault:"local"`
	S3     file.S3Config `yaml:"s3" envPrefix:"JSONLOC_"`
}

// LogConfig configures the command line logger.
type LogConfig struct {
	Level string `yaml:"level" env:"JSONLOC_LOG_LEVEL" envDefault:"info"`
	Env   string `yaml:"env" env:"JSONLOC_ENV" envDefault:"development"`
}

// WithDefaults returns c with empty fields set to their defaults.
func (c Config) WithDefaults() Config {
	if c.SourceLocale == "" {
		c.SourceLocale = "en-US"
	}
	if c.RootLocale == "" {
		c.RootLocale = "en-US"
	}
	if c.Root == "" {
		c.Root = "."
	}
	if c.Target == "" {
		c.Target = c.Root
	}
	if c.ResourceDir == "" {
		c.ResourceDir = "resources"
	}
	if c.HandledFile == "" {
		c.HandledFile = appinfo.DefaultFileName
	}
	if c.NewXliff == "" {
		c.NewXliff = "new-strings.xliff"
	}
	if c.ExtractXliff == "" {
		c.ExtractXliff = "extracted.xliff"
	}
	if c.Redis.Snapshot == "" {
		c.Redis.Snapshot = "pool"
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverLocal
	}
	return c
}

// Validate reports configuration errors that make a run impossible.
func (c Config) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidConfig)
	}
	switch c.Storage.Driver {
	case "", DriverLocal, DriverS3:
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, c.Storage.Driver)
	}
	return nil
}

// FileTypeConfig returns the appinfo configuration of the project.
func (c Config) FileTypeConfig() appinfo.Config {
	return appinfo.Config{
		ProjectID:     c.ID,
		SourceLocale:  c.SourceLocale,
		RootLocale:    c.RootLocale,
		Target:        c.Target,
		SchemaPath:    c.Schema,
		ResourceDir:   c.ResourceDir,
		FileName:      c.HandledFile,
		LocaleInherit: c.LocaleInherit,
		BaseLocales:   c.BaseLocales,
		Mappings:      c.Mappings,
	}
}
