package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/eqncheck/internal/config"
	"github.com/roach88/eqncheck/internal/dataset"
	"github.com/roach88/eqncheck/internal/schema"
)

// Error codes for command-level failures. Dataset failures use the E2xx
// codes from the dataset package.
const (
	ErrCodeGeneric = "E001"
	ErrCodeConfig  = "E002"
	ErrCodePolicy  = "E003"
)

// LoadError is a failure to set up a command before any data is checked.
type LoadError struct {
	Code    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Settings is the effective configuration of one validate run.
type Settings struct {
	Config config.Config
	Mode   dataset.Mode
	Policy *schema.Policy
}

// Overrides are values given explicitly on the command line.
// Empty strings mean "not given".
type Overrides struct {
	DataDir string
	Mode    string
	Format  string
	Policy  string
}

// LoadSettings resolves the config file, applies flag overrides and compiles
// the release policy, if any.
//
// When configPath is empty, DefaultFile in the working directory is used if
// it exists.
func LoadSettings(configPath string, o Overrides) (*Settings, error) {
	cfg := config.Default()

	path := configPath
	if path == "" {
		if _, err := os.Stat(config.DefaultFile); err == nil {
			path = config.DefaultFile
		}
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeConfig, Message: "loading config", Err: err}
		}
		cfg = loaded
	}

	if o.DataDir != "" {
		cfg.DataDir = o.DataDir
	}
	if o.Mode != "" {
		cfg.Mode = o.Mode
	}
	if o.Format != "" {
		cfg.Format = o.Format
	}
	if o.Policy != "" {
		cfg.Policy = o.Policy
	}
	if err := cfg.Validate(); err != nil {
		return nil, &LoadError{Code: ErrCodeConfig, Message: "invalid settings", Err: err}
	}

	s := &Settings{Config: cfg, Mode: cfg.ValidationMode()}
	if cfg.Policy != "" {
		p, err := schema.LoadPolicy(cfg.Policy)
		if err != nil {
			return s, &LoadError{Code: ErrCodePolicy, Message: "loading policy", Err: err}
		}
		s.Policy = p
	}
	return s, nil
}

// describeLoadError splits err into a code and a message without the code
// prefix. Errors that are not a *LoadError get ErrCodeGeneric.
func describeLoadError(err error) (code, message string) {
	var le *LoadError
	if !errors.As(err, &le) {
		return ErrCodeGeneric, err.Error()
	}
	if le.Err != nil {
		return le.Code, fmt.Sprintf("%s: %v", le.Message, le.Err)
	}
	return le.Code, le.Message
}
