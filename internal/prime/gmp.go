//go:build gmp

package prime

import (
	"context"
	"math/big"

	"github.com/ncw/gmp"

	"github.com/agbru/primecheck/internal/progress"
)

func init() {
	registerOptional("gmp", &GMPTrialDivision{})
}

// GMPTrialDivision is WheelDivision on libgmp integers. It only pays off for
// candidates beyond 64 bits, where math/big remainders dominate the scan.
// Built only with -tags gmp.
type GMPTrialDivision struct{}

// Name returns the strategy description.
func (*GMPTrialDivision) Name() string {
	return "GMP Wheel Division (O(√n/2), cgo)"
}

// CheckCore runs the odd-divisor scan using GMP arithmetic.
func (*GMPTrialDivision) CheckCore(ctx context.Context, report progress.ProgressCallback, n *big.Int) (Verdict, error) {
	if n.Cmp(bigOne) <= 0 {
		return belowTwo(), nil
	}
	if report == nil {
		report = func(float64) {}
	}
	if n.IsUint64() {
		return trialDivision(ctx, n, 2, report)
	}
	if n.Bit(0) == 0 {
		return composite(bigTwo), nil
	}

	gn := new(gmp.Int).SetBytes(n.Bytes())
	bound := new(gmp.Int).Sqrt(gn)
	span, _ := Bound(n).Float64()

	d := gmp.NewInt(3)
	two := gmp.NewInt(2)
	rem := new(gmp.Int)
	var tick uint64
	for ; d.Cmp(bound) <= 0; d.Add(d, two) {
		if rem.Rem(gn, d).Sign() == 0 {
			return composite(new(big.Int).SetBytes(d.Bytes())), nil
		}
		tick++
		if tick%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Verdict{}, err
			}
			f, _ := new(big.Int).SetBytes(d.Bytes()).Float64()
			report(f / span)
		}
	}
	return primeVerdict(new(big.Int).SetBytes(bound.Bytes())), nil
}
