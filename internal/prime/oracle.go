package prime

import (
	"context"
	"math/big"

	"github.com/agbru/primecheck/internal/progress"
)

var (
	bigOne = big.NewInt(1)
	bigTwo = big.NewInt(2)
)

// cancelCheckInterval is the number of divisors tested between two
// context and progress checks.
const cancelCheckInterval = 1 << 14

// Check reports whether n is prime. It scans divisors 2..isqrt(n) in
// ascending order and stops at the first one dividing n. Check is total
// over all integers, never modifies n and is safe for concurrent use.
func Check(n *big.Int) Verdict {
	v, _ := trialDivision(context.Background(), n, 1, nil)
	return v
}

// CheckInt64 is Check for a machine integer.
func CheckInt64(n int64) Verdict {
	return Check(big.NewInt(n))
}

// Bound returns the integer square root of n, the last divisor worth
// testing. It is zero for n <= 0.
func Bound(n *big.Int) *big.Int {
	if n.Sign() <= 0 {
		return new(big.Int)
	}
	return new(big.Int).Sqrt(n)
}

// trialDivision scans for the smallest divisor of n. With step 1 every
// integer from 2 is tested; with step 2 the divisor 2 is tested once and
// the scan continues over odd integers from 3. Both find the same smallest
// divisor because the smallest divisor of a composite is prime.
func trialDivision(ctx context.Context, n *big.Int, step uint64, report progress.ProgressCallback) (Verdict, error) {
	if n.Cmp(bigOne) <= 0 {
		return belowTwo(), nil
	}
	if report == nil {
		report = func(float64) {}
	}
	bound := Bound(n)
	if n.IsUint64() {
		d, found, err := scanUint64(ctx, n.Uint64(), bound.Uint64(), step, report)
		if err != nil {
			return Verdict{}, err
		}
		if found {
			return composite(new(big.Int).SetUint64(d)), nil
		}
		return primeVerdict(bound), nil
	}
	d, err := scanBig(ctx, n, bound, step, report)
	if err != nil {
		return Verdict{}, err
	}
	if d != nil {
		return composite(d), nil
	}
	return primeVerdict(bound), nil
}

// scanUint64 is the 64-bit fast path. bound is at most 2^32-1, so d never
// overflows.
func scanUint64(ctx context.Context, n, bound, step uint64, report progress.ProgressCallback) (uint64, bool, error) {
	if bound < 2 {
		return 0, false, nil
	}
	start := uint64(2)
	if step == 2 {
		if n%2 == 0 {
			return 2, true, nil
		}
		start = 3
	}
	span := float64(bound)
	var tick uint64
	for d := start; d <= bound; d += step {
		if n%d == 0 {
			return d, true, nil
		}
		tick++
		if tick%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return 0, false, err
			}
			report(float64(d) / span)
		}
	}
	return 0, false, nil
}

// scanBig handles candidates beyond 64 bits. The scan is correct but only
// practical when n has a small factor; callers bound it with a context.
func scanBig(ctx context.Context, n, bound *big.Int, step uint64, report progress.ProgressCallback) (*big.Int, error) {
	if bound.Cmp(bigTwo) < 0 {
		return nil, nil
	}
	d := big.NewInt(2)
	if step == 2 {
		if n.Bit(0) == 0 {
			return d, nil
		}
		d.SetInt64(3)
	}
	inc := new(big.Int).SetUint64(step)
	rem := new(big.Int)
	span, _ := bound.Float64()
	var tick uint64
	for ; d.Cmp(bound) <= 0; d.Add(d, inc) {
		if rem.Rem(n, d).Sign() == 0 {
			return d, nil
		}
		tick++
		if tick%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			f, _ := d.Float64()
			report(f / span)
		}
	}
	return nil, nil
}
