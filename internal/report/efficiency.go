package report

import (
	"math/big"

	"github.com/agbru/primecheck/internal/prime"
)

// ratioThreshold is the candidate above which the speed-up is worth
// mentioning.
var ratioThreshold = big.NewInt(100)

// Efficiency compares scanning every divisor in [2, n-1] with scanning
// only [2, isqrt(n)].
type Efficiency struct {
	Candidate *big.Int
	// Limit is isqrt(n), or 0 for n <= 1.
	Limit *big.Int
	// NaiveChecks counts divisors in [2, n-1]; 0 for n <= 2.
	NaiveChecks *big.Int
	// OptimizedChecks counts divisors in [2, Limit]; 0 when Limit < 2.
	OptimizedChecks *big.Int
	// Ratio is NaiveChecks/OptimizedChecks, valid only when HasRatio.
	Ratio    float64
	HasRatio bool
}

// Estimate computes the Efficiency of checking n. There is no floor on
// the optimized count: when no divisor needs testing the ratio is simply
// undefined.
func Estimate(n *big.Int) Efficiency {
	e := Efficiency{
		Candidate:       new(big.Int),
		Limit:           new(big.Int),
		NaiveChecks:     new(big.Int),
		OptimizedChecks: new(big.Int),
	}
	if n == nil {
		return e
	}
	e.Candidate.Set(n)
	if n.Cmp(big.NewInt(1)) > 0 {
		e.Limit = prime.Bound(n)
	}
	if n.Cmp(big.NewInt(2)) > 0 {
		e.NaiveChecks.Sub(n, big.NewInt(2))
	}
	if e.Limit.Cmp(big.NewInt(2)) >= 0 {
		e.OptimizedChecks.Sub(e.Limit, big.NewInt(1))
	}
	if e.OptimizedChecks.Sign() > 0 {
		q := new(big.Float).Quo(new(big.Float).SetInt(e.NaiveChecks), new(big.Float).SetInt(e.OptimizedChecks))
		e.Ratio, _ = q.Float64()
		e.HasRatio = true
	}
	return e
}

// ShowRatio reports whether the speed-up line should be printed: the
// candidate exceeds 100 and the ratio is defined.
func (e Efficiency) ShowRatio() bool {
	return e.HasRatio && e.Candidate.Cmp(ratioThreshold) > 0
}

// LastNaiveDivisor returns n-1, the upper end of the naive scan.
func (e Efficiency) LastNaiveDivisor() *big.Int {
	return new(big.Int).Sub(e.Candidate, big.NewInt(1))
}
