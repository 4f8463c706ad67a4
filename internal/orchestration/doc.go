// Package orchestration runs one or several primality strategies
// concurrently, aggregates their progress and cross-validates their
// verdicts. It depends on presentation only through the ProgressReporter,
// ResultPresenter and ErrorHandler interfaces.
package orchestration
