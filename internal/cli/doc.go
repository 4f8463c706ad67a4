// Package cli implements the terminal front end of primecheck: progress
// display, result presentation, the stdin prompt, report files, shell
// completion and the interactive REPL.
package cli
