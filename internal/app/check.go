package app

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"os/signal"
	"syscall"

	"github.com/agbru/primecheck/internal/cli"
	"github.com/agbru/primecheck/internal/config"
	apperrors "github.com/agbru/primecheck/internal/errors"
	"github.com/agbru/primecheck/internal/logging"
	"github.com/agbru/primecheck/internal/metrics"
	"github.com/agbru/primecheck/internal/orchestration"
)

// runCheck checks one candidate: read it, run the selected strategies,
// present the verdict and write the optional report and metrics files.
func (a *Application) runCheck(ctx context.Context, out io.Writer, logger logging.Logger) int {
	n, code := a.readCandidate(out)
	if code != apperrors.ExitSuccess {
		return code
	}

	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	algo := config.ResolveAlgo(a.Config.Algo, n)
	if algo != a.Config.Algo {
		logger.Debug("strategy resolved", logging.String("requested", a.Config.Algo), logging.String("algo", algo))
	}
	selected := orchestration.GetCheckersToRun(algo, a.Factory)
	if len(selected) == 0 {
		fmt.Fprintf(a.ErrWriter, "Error: unknown strategy %q\n", algo)
		return apperrors.ExitErrorConfig
	}

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, n, out)
		cli.PrintExecutionMode(selected, out)
	}

	var progressReporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		progressReporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	recorder := metrics.NewRecorder()
	memBefore := metrics.NewMemoryCollector().Snapshot()

	results := orchestration.ExecuteChecks(ctx, selected, n, progressReporter, progressOut,
		orchestration.WithRecorder(recorder),
		orchestration.WithLogger(logger),
		orchestration.WithTimeoutLimit(a.Config.Timeout))

	presenter := cli.CLIResultPresenter{MemoryBefore: &memBefore}
	presOpts := orchestration.PresentationOptions{
		N:       n,
		Quiet:   a.Config.Quiet,
		Details: a.Config.Details,
		Explain: a.Config.Explain,
	}
	exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, presenter, presenter, out)
	if exitCode == apperrors.ExitErrorMismatch {
		recorder.IncMismatch()
		logger.Error("strategies disagree", orchestration.FindMismatch(results, n), logging.BigInt("n", n))
	}

	if exitCode == apperrors.ExitSuccess {
		if code := a.writeReport(out, n, results, logger); code != apperrors.ExitSuccess {
			exitCode = code
		}
	}
	if code := a.writeMetrics(recorder, logger); code != apperrors.ExitSuccess && exitCode == apperrors.ExitSuccess {
		exitCode = code
	}
	return exitCode
}

// readCandidate returns the candidate from the configuration, or prompts
// for it. A malformed candidate is reported and yields ExitErrorParse.
func (a *Application) readCandidate(out io.Writer) (*big.Int, int) {
	var (
		n   *big.Int
		err error
	)
	if a.Config.HasCandidate() {
		n, err = a.Config.Candidate()
	} else {
		promptOut := out
		if a.Config.Quiet {
			promptOut = io.Discard
		}
		n, err = cli.PromptCandidate(a.In, promptOut)
		if err == nil && !a.Config.Quiet {
			fmt.Fprintln(out)
		}
	}
	if err != nil {
		cli.DisplayParseError(a.ErrWriter, err)
		return nil, apperrors.ExitCodeFor(err)
	}
	return n, apperrors.ExitSuccess
}

func (a *Application) writeReport(out io.Writer, n *big.Int, results []orchestration.CheckResult, logger logging.Logger) int {
	if a.Config.OutputFile == "" {
		return apperrors.ExitSuccess
	}
	r, ok := cli.BuildReport(n, results)
	if !ok {
		return apperrors.ExitSuccess
	}
	msgOut := out
	if a.Config.Quiet {
		msgOut = io.Discard
	}
	if err := cli.WriteReport(msgOut, a.Config.OutputFile, a.Config.Format, r); err != nil {
		logger.Error("writing report failed", err, logging.String("path", a.Config.OutputFile))
		fmt.Fprintf(a.ErrWriter, "Error saving report: %v\n", err)
		return apperrors.ExitCodeFor(err)
	}
	logger.Info("report written",
		logging.String("run_id", r.RunID),
		logging.String("path", a.Config.OutputFile),
		logging.String("format", a.Config.Format))
	return apperrors.ExitSuccess
}

func (a *Application) writeMetrics(recorder *metrics.Recorder, logger logging.Logger) int {
	if a.Config.MetricsFile == "" {
		return apperrors.ExitSuccess
	}
	recorder.ObserveMemory(metrics.NewMemoryCollector().Snapshot())
	if err := recorder.WriteTextfile(a.Config.MetricsFile); err != nil {
		logger.Error("writing metrics failed", err, logging.String("path", a.Config.MetricsFile))
		fmt.Fprintf(a.ErrWriter, "Error writing metrics: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
