package config

import "math/big"

// ExhaustiveBitLimit is the largest candidate size, in bits, for which
// "auto" still picks an exhaustive divisor scan. Above it the scan is
// bounded by 2^(bits/2) divisions, so auto switches to Miller-Rabin with
// Pollard's rho.
const ExhaustiveBitLimit = 64

// ResolveAlgo turns "auto" into a concrete strategy name for n. Other
// values are returned unchanged.
func ResolveAlgo(algo string, n *big.Int) string {
	if algo != AlgoAuto {
		return algo
	}
	if n == nil || n.BitLen() <= ExhaustiveBitLimit {
		return "wheel"
	}
	return "rho"
}
