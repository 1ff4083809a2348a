// Package config loads gfagraph settings from TOML or YAML files.
//
// Files are looked up in this order, the first one found wins:
//
//	./gfagraph.toml
//	./gfagraph.yaml
//	$XDG_CONFIG_HOME/gfagraph/config.toml
//	$XDG_CONFIG_HOME/gfagraph/config.yaml
//
// Command line flags override file values; see internal/cli.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	gfaerrors "github.com/matzehuels/gfagraph/pkg/errors"
	"github.com/matzehuels/gfagraph/pkg/record"
	"github.com/matzehuels/gfagraph/pkg/render"
	"github.com/matzehuels/gfagraph/pkg/schema"
)

// Config holds settings shared by all commands.
type Config struct {
	// Validation is "strict" or "permissive".
	Validation string `toml:"validation" yaml:"validation"`

	// Version forces the GFA version: "1" or "2". Empty detects it.
	Version string `toml:"version" yaml:"version"`

	Verbose bool `toml:"verbose" yaml:"verbose"`

	Render Render `toml:"render" yaml:"render"`
}

// Render holds defaults for the render command.
type Render struct {
	Detailed bool    `toml:"detailed" yaml:"detailed"`
	Format   string  `toml:"format" yaml:"format"`
	Scale    float64 `toml:"scale" yaml:"scale"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Validation: record.Strict.String(),
		Render: Render{
			Format: render.FormatSVG,
			Scale:  2,
		},
	}
}

// SearchPaths returns the candidate config files in lookup order.
func SearchPaths() []string {
	paths := []string{"gfagraph.toml", "gfagraph.yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths,
			filepath.Join(dir, "gfagraph", "config.toml"),
			filepath.Join(dir, "gfagraph", "config.yaml"),
		)
	}
	return paths
}

// Find returns the first existing file of SearchPaths.
func Find() (string, bool) {
	for _, p := range SearchPaths() {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

// Load reads the file at path over the defaults. The format follows the
// extension: .toml, .yaml or .yml. Unknown keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = decodeTOML(data, &cfg)
	case ".yaml", ".yml":
		err = decodeYAML(data, &cfg)
	default:
		return Config{}, gfaerrors.New(gfaerrors.ErrCodeInvalidInput, "config %s: unsupported extension %q", path, filepath.Ext(path))
	}
	if err != nil {
		return Config{}, gfaerrors.Wrap(gfaerrors.ErrCodeInvalidInput, err, "config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault loads the first file found on the search path, or returns the
// defaults when there is none. The returned path is empty in that case.
func LoadDefault() (Config, string, error) {
	path, ok := Find()
	if !ok {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

func decodeTOML(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks that every value is one the commands understand.
func (c Config) Validate() error {
	if _, err := c.RecordValidation(); err != nil {
		return err
	}
	if _, err := c.GFAVersion(); err != nil {
		return err
	}
	if c.Render.Format != "" && !render.ValidFormat(c.Render.Format) {
		return gfaerrors.New(gfaerrors.ErrCodeInvalidInput, "render.format %q: want one of %s",
			c.Render.Format, strings.Join(render.Formats(), ", "))
	}
	if c.Render.Scale < 0 {
		return gfaerrors.New(gfaerrors.ErrCodeInvalidInput, "render.scale must not be negative")
	}
	return nil
}

// RecordValidation maps Validation to the record parsing mode.
func (c Config) RecordValidation() (record.Validation, error) {
	switch strings.ToLower(c.Validation) {
	case "", record.Strict.String():
		return record.Strict, nil
	case record.Permissive.String():
		return record.Permissive, nil
	}
	return record.Strict, gfaerrors.New(gfaerrors.ErrCodeInvalidInput,
		"validation %q: want %s or %s", c.Validation, record.Strict, record.Permissive)
}

var versions = map[string]schema.Version{
	"":     schema.AnyVersion,
	"1":    schema.GFA1,
	"1.0":  schema.GFA1,
	"gfa1": schema.GFA1,
	"2":    schema.GFA2,
	"2.0":  schema.GFA2,
	"gfa2": schema.GFA2,
}

// GFAVersion maps Version to a schema version.
func (c Config) GFAVersion() (schema.Version, error) {
	if v, ok := versions[strings.ToLower(c.Version)]; ok {
		return v, nil
	}
	keys := make([]string, 0, len(versions))
	for k := range versions {
		if k != "" {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return schema.AnyVersion, gfaerrors.New(gfaerrors.ErrCodeInvalidInput,
		"version %q: want one of %s", c.Version, strings.Join(keys, ", "))
}
