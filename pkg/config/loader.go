package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// noDefaults is a tag name no field uses; parsing with it as the default
// value tag applies only variables that are actually set.
const noDefaults = "envOverlayDefault"

var defaultEnvLoaded sync.Once

// LoadEnv loads the given .env files into the process environment.
// Variables that are already set are not overridden. Without arguments the
// .env file of the working directory is loaded if it exists.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		defaultEnvLoaded.Do(func() {
			// Ignore errors - the .env file might not exist and that's ok
			_ = godotenv.Load()
		})
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// MustLoadEnv works like LoadEnv but panics on failure.
func MustLoadEnv(files ...string) {
	if err := LoadEnv(files...); err != nil {
		panic(fmt.Sprintf("Failed to load env files: %v", err))
	}
}

// Load populates v from environment variables, after loading the given
// .env files (or the default .env when none are given).
//
// Example:
//
//	type StorageConfig struct {
//		Driver string `env:"STORAGE_DRIVER" envDefault:"local"`
//		Bucket string `env:"S3_BUCKET"`
//	}
//
//	var cfg StorageConfig
//	if err := config.Load(&cfg, ".env.local"); err != nil {
//		// Handle error
//	}
func Load[T any](v *T, envFiles ...string) error {
	if v == nil {
		return ErrNilPointer
	}
	if err := LoadEnv(envFiles...); err != nil {
		return err
	}
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T, envFiles ...string) {
	if err := Load(v, envFiles...); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}

// LoadFile populates v from a YAML or TOML file and the environment. Values
// are applied in order: envDefault tags, the file, then variables set in the
// environment. An empty path skips the file. Both formats are matched
// against the `yaml` field tags.
func LoadFile[T any](path string, v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	if err := LoadEnv(); err != nil {
		return err
	}

	if err := env.ParseWithOptions(v, env.Options{Environment: map[string]string{}}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Join(ErrReadingConfigFile, err)
		}
		if err := decodeFile(path, data, v); err != nil {
			return errors.Join(ErrDecodingConfigFile, fmt.Errorf("%s: %w", path, err))
		}
	}

	if err := env.ParseWithOptions(v, env.Options{DefaultValueTagName: noDefaults}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// decodeFile decodes YAML, or TOML for .toml files. TOML documents are
// decoded into a generic tree first and re-encoded as YAML so that a single
// set of field tags serves both formats.
func decodeFile(path string, data []byte, v any) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		var tree map[string]any
		if err := toml.Unmarshal(data, &tree); err != nil {
			return err
		}
		var err error
		if data, err = yaml.Marshal(tree); err != nil {
			return err
		}
	}
	return yaml.Unmarshal(data, v)
}
