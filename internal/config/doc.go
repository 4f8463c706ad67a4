// Package config builds the application configuration from, in decreasing
// priority, command-line flags, PRIMECHECK_* environment variables, an
// optional YAML file and built-in defaults.
package config
