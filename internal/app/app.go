package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/agbru/primecheck/internal/cli"
	"github.com/agbru/primecheck/internal/config"
	apperrors "github.com/agbru/primecheck/internal/errors"
	"github.com/agbru/primecheck/internal/logging"
	"github.com/agbru/primecheck/internal/prime"
	"github.com/agbru/primecheck/internal/tui"
	"github.com/agbru/primecheck/internal/ui"
)

// Application represents the primecheck application instance.
type Application struct {
	Config    config.AppConfig
	Factory   prime.CheckerFactory
	In        io.Reader
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom CheckerFactory for the application.
func WithFactory(f prime.CheckerFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithInput sets the reader used for the candidate prompt and the REPL.
func WithInput(in io.Reader) AppOption {
	return func(a *Application) { a.In = in }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = prime.NewDefaultFactory()
	}

	programName := config.AppName
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor)
	logger := a.newLogger()
	logger.Debug("configuration loaded",
		logging.String("algo", a.Config.Algo),
		logging.Duration("timeout", a.Config.Timeout),
		logging.String("config_file", a.Config.ConfigFile))

	switch {
	case a.Config.Interactive:
		return a.runREPL(out, logger)
	case a.Config.TUI:
		return a.runTUI(ctx, logger)
	default:
		return a.runCheck(ctx, out, logger)
	}
}

func (a *Application) newLogger() logging.Logger {
	return logging.NewLevelLogger(a.ErrWriter, config.AppName, logging.ParseLevel(a.Config.LogLevel))
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive session.
func (a *Application) runREPL(out io.Writer, logger logging.Logger) int {
	repl := cli.NewREPL(a.Factory, cli.REPLConfig{
		DefaultAlgo: a.Config.Algo,
		Timeout:     a.Config.Timeout,
		Explain:     a.Config.Explain,
		Logger:      logger,
	})
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// runTUI launches the dashboard. Each check inside it has its own timeout.
func (a *Application) runTUI(ctx context.Context, logger logging.Logger) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	return tui.Run(ctx, a.Factory, a.Config, tui.Options{
		Version: Version,
		Logger:  logger,
	})
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// StartupExitCode reports an error returned by New and returns the exit
// code. Flag syntax errors have already been printed by the flag package.
func StartupExitCode(err error, errWriter io.Writer) int {
	if err == nil || IsHelpError(err) {
		return apperrors.ExitSuccess
	}
	var (
		configErr apperrors.ConfigError
		validErr  apperrors.ValidationError
		parseErr  apperrors.ParseError
	)
	if errors.As(err, &configErr) || errors.As(err, &validErr) || errors.As(err, &parseErr) {
		fmt.Fprintf(errWriter, "Error: %v\n", err)
		return apperrors.ExitCodeFor(err)
	}
	return apperrors.ExitErrorConfig
}
