// Package prime implements the primality oracle: Check reports whether an
// arbitrary-precision integer is prime and, when it is not, a divisor that
// proves it. Named strategies implementing Checker wrap the same contract
// with cancellation and progress reporting for the CLI.
package prime
