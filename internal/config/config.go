package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/big"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/agbru/primecheck/internal/errors"
)

// EnvPrefix prefixes every environment variable the application reads.
const EnvPrefix = "PRIMECHECK_"

// Pseudo-algorithms accepted by --algo besides registered strategy names.
const (
	AlgoAll  = "all"
	AlgoAuto = "auto"
)

// Defaults.
const (
	DefaultAlgo     = "trial"
	DefaultTimeout  = 5 * time.Minute
	DefaultFormat   = "text"
	DefaultLogLevel = "warn"
)

// AppConfig aggregates every setting that drives a run.
type AppConfig struct {
	// N is the candidate as typed by the user. Empty means "prompt on stdin".
	N string
	// Algo is a strategy name, "all" or "auto".
	Algo string `validate:"required"`
	// Timeout bounds each check.
	Timeout time.Duration `validate:"gt=0"`

	Quiet       bool
	Details     bool
	Explain     bool
	Interactive bool
	TUI         bool
	NoColor     bool

	// OutputFile, when set, receives a report in Format.
	OutputFile string
	Format     string `validate:"oneof=text json markdown"`
	// MetricsFile, when set, receives a Prometheus textfile after the run.
	MetricsFile string

	// ConfigFile is the YAML file that was loaded, if any.
	ConfigFile string
	LogLevel   string `validate:"oneof=trace debug info warn error disabled"`
	Completion string `validate:"omitempty,oneof=bash zsh fish powershell"`
}

// HasCandidate reports whether a candidate was supplied without prompting.
func (c AppConfig) HasCandidate() bool {
	return strings.TrimSpace(c.N) != ""
}

// Candidate parses N as a decimal integer of arbitrary size.
func (c AppConfig) Candidate() (*big.Int, error) {
	return ParseCandidate(c.N)
}

// ParseCandidate parses a decimal integer, optionally signed and
// surrounded by whitespace. Underscores and commas used as digit
// separators are accepted.
func ParseCandidate(s string) (*big.Int, error) {
	trimmed := strings.TrimSpace(s)
	cleaned := strings.NewReplacer("_", "", ",", "").Replace(trimmed)
	if cleaned == "" || cleaned == "+" || cleaned == "-" {
		return nil, apperrors.ParseError{Input: trimmed}
	}
	n, ok := new(big.Int).SetString(cleaned, 10)
	if !ok {
		return nil, apperrors.ParseError{Input: trimmed, Cause: errors.New("not a base-10 integer")}
	}
	return n, nil
}

var validate = validator.New()

// Validate checks the struct tags and that Algo names a known strategy.
func (c AppConfig) Validate(availableAlgos []string) error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return apperrors.ValidationError{
				Field:   fe.Field(),
				Message: fmt.Sprintf("failed %q constraint (got %v)", fe.Tag(), fe.Value()),
			}
		}
		return err
	}

	algo := strings.ToLower(c.Algo)
	if algo == AlgoAll || algo == AlgoAuto || slices.Contains(availableAlgos, algo) {
		return nil
	}
	return apperrors.NewConfigError("unknown algorithm %q (available: %s, %s, %s)",
		c.Algo, strings.Join(availableAlgos, ", "), AlgoAll, AlgoAuto)
}

// ParseConfig parses args (without the program name) into an AppConfig and
// applies the YAML file and environment layers. flag.ErrHelp is returned
// unchanged when -h/--help was requested.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	cfg := AppConfig{}
	algoHelp := fmt.Sprintf("Strategy to run: %s, %s or %s.", strings.Join(availableAlgos, ", "), AlgoAll, AlgoAuto)

	fs.StringVar(&cfg.N, "n", "", "Candidate integer (decimal, arbitrary size). Prompted for when omitted.")
	fs.StringVar(&cfg.Algo, "algo", DefaultAlgo, algoHelp)
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Maximum duration of a check.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print only the verdict.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&cfg.Details, "details", false, "Show timings and memory statistics.")
	fs.BoolVar(&cfg.Details, "d", false, "Shorthand for --details.")
	fs.BoolVar(&cfg.Explain, "explain", true, "Explain the verdict and the search bound.")
	fs.BoolVar(&cfg.Interactive, "interactive", false, "Start an interactive session.")
	fs.BoolVar(&cfg.Interactive, "i", false, "Shorthand for --interactive.")
	fs.BoolVar(&cfg.TUI, "tui", false, "Start the terminal dashboard.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable coloured output.")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write a report to this file.")
	fs.StringVar(&cfg.OutputFile, "o", "", "Shorthand for --output.")
	fs.StringVar(&cfg.Format, "format", DefaultFormat, "Report format: text, json or markdown.")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", "", "Write Prometheus metrics in textfile format to this path.")
	fs.StringVar(&cfg.ConfigFile, "config", "", "YAML configuration file (default $XDG_CONFIG_HOME/primecheck/config.yaml).")
	fs.StringVar(&cfg.LogLevel, "log-level", DefaultLogLevel, "Diagnostic log level: trace, debug, info, warn, error, disabled.")
	fs.StringVar(&cfg.Completion, "completion", "", "Print a completion script for bash, zsh, fish or powershell.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	switch fs.NArg() {
	case 0:
	case 1:
		if isFlagSet(fs, "n") {
			return AppConfig{}, apperrors.NewConfigError("candidate given twice: -n %s and %s", cfg.N, fs.Arg(0))
		}
		if err := fs.Set("n", fs.Arg(0)); err != nil {
			return AppConfig{}, err
		}
	default:
		return AppConfig{}, apperrors.NewConfigError("expected at most one candidate, got %d arguments", fs.NArg())
	}

	if err := applyConfigFile(&cfg, fs); err != nil {
		return AppConfig{}, err
	}
	applyEnvOverrides(&cfg, fs)

	cfg.Algo = strings.ToLower(strings.TrimSpace(cfg.Algo))
	cfg.Format = strings.ToLower(cfg.Format)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := cfg.Validate(availableAlgos); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}
