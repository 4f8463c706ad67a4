package config

import (
	"errors"
	"flag"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/primecheck/internal/errors"
)

// AppName names the per-user configuration directory.
const AppName = "primecheck"

// FileConfig is the on-disk YAML layout. Absent keys leave the defaults
// untouched.
type FileConfig struct {
	Algo        *string `yaml:"algo"`
	Timeout     *string `yaml:"timeout"`
	Explain     *bool   `yaml:"explain"`
	Details     *bool   `yaml:"details"`
	Quiet       *bool   `yaml:"quiet"`
	Format      *string `yaml:"format"`
	Output      *string `yaml:"output"`
	MetricsFile *string `yaml:"metrics_file"`
	LogLevel    *string `yaml:"log_level"`
	NoColor     *bool   `yaml:"no_color"`
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/primecheck/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// LoadFile reads and decodes a YAML configuration file. Unknown keys are
// rejected.
func LoadFile(path string) (FileConfig, error) {
	var fc FileConfig
	f, err := os.Open(path)
	if err != nil {
		return fc, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fc, apperrors.NewConfigError("parsing %s: %v", path, err)
	}
	return fc, nil
}

// resolveConfigPath picks --config, then PRIMECHECK_CONFIG, then the XDG
// default. explicit is false only for the XDG default, whose absence is
// not an error.
func resolveConfigPath(cfg *AppConfig) (path string, explicit bool) {
	if cfg.ConfigFile != "" {
		return cfg.ConfigFile, true
	}
	if env := os.Getenv(EnvPrefix + "CONFIG"); env != "" {
		return env, true
	}
	return DefaultConfigPath(), false
}

// applyConfigFile loads the YAML layer into cfg for every flag the user did
// not set.
func applyConfigFile(cfg *AppConfig, flags *flag.FlagSet) error {
	path, explicit := resolveConfigPath(cfg)
	fc, err := LoadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		var ce apperrors.ConfigError
		if errors.As(err, &ce) {
			return err
		}
		return apperrors.NewConfigError("reading config file: %v", err)
	}
	cfg.ConfigFile = path

	setString := func(dst *string, v *string, names ...string) {
		if v != nil && !isFlagSetAny(flags, names...) {
			*dst = *v
		}
	}
	setBool := func(dst *bool, v *bool, names ...string) {
		if v != nil && !isFlagSetAny(flags, names...) {
			*dst = *v
		}
	}

	setString(&cfg.Algo, fc.Algo, "algo")
	setString(&cfg.Format, fc.Format, "format")
	setString(&cfg.OutputFile, fc.Output, "output", "o")
	setString(&cfg.MetricsFile, fc.MetricsFile, "metrics-file")
	setString(&cfg.LogLevel, fc.LogLevel, "log-level")
	setBool(&cfg.Explain, fc.Explain, "explain")
	setBool(&cfg.Details, fc.Details, "details", "d")
	setBool(&cfg.Quiet, fc.Quiet, "quiet", "q")
	setBool(&cfg.NoColor, fc.NoColor, "no-color")

	if fc.Timeout != nil && !isFlagSet(flags, "timeout") {
		d, err := time.ParseDuration(*fc.Timeout)
		if err != nil {
			return apperrors.NewConfigError("%s: invalid timeout %q", path, *fc.Timeout)
		}
		cfg.Timeout = d
	}
	return nil
}
