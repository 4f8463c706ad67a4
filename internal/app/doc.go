// Package app wires configuration, strategies and presentation together
// and selects the run mode: completion script, REPL, dashboard or a
// single check.
package app
