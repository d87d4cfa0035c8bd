// Package config loads the tasklist configuration file.
//
// The file is YAML with strict field checking. Values not set in the file
// keep their defaults, and the merged result is validated against an
// embedded CUE schema.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// EnvConfig names the environment variable holding the config file path.
const EnvConfig = "TASKLIST_CONFIG"

const appDir = "tasklist"

// Config holds the settings for one tasklist installation.
type Config struct {
	// Database is the SQLite file holding the task slot.
	Database string `yaml:"database" json:"database"`

	// KeyFile holds the master key sealing the slot.
	KeyFile string `yaml:"key_file" json:"key_file"`

	// StorageKey is the slot key the task blob is written under.
	StorageKey string `yaml:"storage_key" json:"storage_key"`

	LogLevel string `yaml:"log_level" json:"log_level"` // debug|info|warn|error
	Format   string `yaml:"format" json:"format"`       // text|json
}

// Default returns the built-in configuration.
func Default() Config {
	dir := DataDir()
	return Config{
		Database:   filepath.Join(dir, "tasks.db"),
		KeyFile:    filepath.Join(dir, "master.key"),
		StorageKey: "tasks",
		LogLevel:   "info",
		Format:     "text",
	}
}

// DataDir returns $XDG_DATA_HOME/tasklist, falling back to
// ~/.local/share/tasklist, or ./.tasklist if no home directory is known.
func DataDir() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return filepath.Join(d, appDir)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", appDir)
	}
	return "." + appDir
}

// DefaultPath returns the config file used when none is named.
func DefaultPath() string {
	if d, err := os.UserConfigDir(); err == nil {
		return filepath.Join(d, appDir, "config.yaml")
	}
	return filepath.Join("."+appDir, "config.yaml")
}

// Load reads the config file at path over the defaults.
//
// If path is empty, $TASKLIST_CONFIG is used, then DefaultPath. A missing
// file is only an error when it was named explicitly (argument or
// environment). Unknown fields are rejected to catch typos.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// defaults only
	case err != nil:
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := decode(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// decode overlays YAML onto cfg. An empty document leaves cfg unchanged.
func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks c against the embedded CUE schema.
func (c Config) Validate() error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	v := schema.LookupPath(cue.ParsePath("#Config")).Unify(ctx.Encode(c))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SlogLevel maps LogLevel to a slog.Level. Unknown values map to info.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
