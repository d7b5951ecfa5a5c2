// Package config loads configuration structs from .env files, environment
// variables and YAML or TOML project files.
//
// It wraps github.com/joho/godotenv, github.com/caarlos0/env/v11,
// gopkg.in/yaml.v3 and github.com/BurntSushi/toml:
//
//   - LoadEnv loads one or more .env files into the process environment,
//     falling back to the default .env in the working directory.
//   - Load parses the environment into any struct using `env` tags.
//   - LoadFile decodes a YAML (or .toml) file into a struct using `yaml` tags and then
//     overlays the environment variables that are set, so the environment
//     always wins over the file and the file wins over `envDefault`.
//
// # Usage
//
//	type Config struct {
//	    ID      string   `yaml:"id" env:"JSONLOC_PROJECT_ID"`
//	    Locales []string `yaml:"locales" env:"JSONLOC_LOCALES" envSeparator:","`
//	    Target  string   `yaml:"target" env:"JSONLOC_TARGET" envDefault:"."`
//	}
//
//	var cfg Config
//	if err := config.LoadFile("project.yaml", &cfg); err != nil {
//	    log.Fatalf("loading config: %v", err)
//	}
//
// # Error Handling
//
// The package defines sentinel errors that can be compared with errors.Is:
//
//   - ErrParsingConfig: environment variables could not be parsed.
//   - ErrLoadingEnvFile: an explicitly requested .env file failed to load.
//   - ErrReadingConfigFile: the project file could not be read.
//   - ErrDecodingConfigFile: the project file could not be decoded.
//   - ErrNilPointer: a nil pointer was passed to a loader.
package config
