// Package report turns a primality verdict into human-readable output. It
// never decides primality itself: Narrate explains a verdict computed by
// package prime, Estimate compares the naive and bounded search costs, and
// the Writer implementations persist a Report as text, JSON or Markdown.
package report
