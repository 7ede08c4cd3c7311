// Package config loads the optional eqncheck YAML configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/roach88/eqncheck/internal/dataset"
)

// DefaultFile is the config file name looked up in the working directory.
const DefaultFile = ".eqncheck.yaml"

// Config holds settings that may also be given as CLI flags.
// Flags always win over file values.
type Config struct {
	// DataDir is the directory holding equation_data.json and version.json.
	DataDir string `yaml:"data_dir" validate:"required"`

	// Mode is "fail-fast" or "collect-all".
	Mode string `yaml:"mode" validate:"omitempty,oneof=fail-fast collect-all"`

	// Format is the CLI output format, "text" or "json".
	Format string `yaml:"format" validate:"oneof=text json"`

	// Policy is an optional CUE release policy file.
	// Relative paths are resolved against the working directory.
	Policy string `yaml:"policy,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DataDir: dataset.DefaultDataDir,
		Mode:    dataset.FailFast.String(),
		Format:  "text",
	}
}

// Load reads path and overlays it on Default. Unknown keys are rejected so
// typos such as "datadir:" fail instead of being ignored.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

var validate = newValidator()

// newValidator reports fields by their YAML names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks field values.
func (c Config) Validate() error {
	err := validate.Struct(c)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	// Report the first failure; fields are checked in declaration order.
	return formatFieldError(fieldErrs[0])
}

func formatFieldError(e validator.FieldError) error {
	switch e.Field() {
	case "data_dir":
		return errors.New("data_dir must not be empty")
	case "mode":
		_, err := dataset.ParseMode(fmt.Sprint(e.Value()))
		return err
	case "format":
		return fmt.Errorf("invalid format %q: must be text or json", e.Value())
	default:
		return fmt.Errorf("%s is invalid (%s)", e.Field(), e.Tag())
	}
}

// ValidationMode returns the parsed Mode.
func (c Config) ValidationMode() dataset.Mode {
	m, _ := dataset.ParseMode(c.Mode)
	return m
}
