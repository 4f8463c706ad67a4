// Package logging provides the structured logger used for primecheck
// diagnostics. Components depend on the Logger interface; the zerolog
// adapter is the default backend and writes to stderr so that stdout stays
// reserved for verdicts.
package logging
