package prime

import (
	"context"
	"errors"
	"math/big"

	"github.com/agbru/primecheck/internal/progress"
)

const (
	// MillerRabinRounds is the number of Miller-Rabin rounds passed to
	// big.Int.ProbablyPrime. math/big also runs a Baillie-PSW test, which
	// is exact below 2^64.
	MillerRabinRounds = 20

	// smallFactorLimit bounds the trial-division pre-pass of PollardRho.
	// Factors below it are found in ascending order, like TrialDivision.
	smallFactorLimit = 1 << 12

	// rhoBatch is the number of products accumulated before each gcd in
	// Brent's cycle detection.
	rhoBatch = 128

	// maxRhoAttempts caps the number of polynomial constants tried.
	maxRhoAttempts = 64
)

// errRhoExhausted is returned when no factor was found after
// maxRhoAttempts polynomials. It does not happen for composites in
// practice.
var errRhoExhausted = errors.New("prime: pollard rho found no factor")

// PollardRho decides primality with Miller-Rabin and finds a witness with
// Brent's variant of Pollard's rho. Its witness is a divisor no greater
// than isqrt(n), but not necessarily the smallest one: the smallest is only
// guaranteed when it is below the trial pre-pass limit.
type PollardRho struct{}

// Name returns the strategy description.
func (*PollardRho) Name() string {
	return "Miller-Rabin + Pollard Rho"
}

// CheckCore runs the probabilistic strategy.
func (*PollardRho) CheckCore(ctx context.Context, report progress.ProgressCallback, n *big.Int) (Verdict, error) {
	if n.Cmp(bigOne) <= 0 {
		return belowTwo(), nil
	}
	if report == nil {
		report = func(float64) {}
	}

	if d := smallFactor(n); d != nil {
		return composite(d), nil
	}
	report(0.25)

	bound := Bound(n)
	if n.ProbablyPrime(MillerRabinRounds) {
		return primeVerdict(bound), nil
	}
	report(0.5)

	c := big.NewInt(1)
	for attempt := 0; attempt < maxRhoAttempts; attempt++ {
		f, err := brent(ctx, n, c)
		if err != nil {
			return Verdict{}, err
		}
		if f != nil {
			other := new(big.Int).Quo(n, f)
			if other.Cmp(f) < 0 {
				f = other
			}
			return composite(f), nil
		}
		c.Add(c, bigOne)
	}
	return Verdict{}, errRhoExhausted
}

// smallFactor returns the smallest divisor of n below smallFactorLimit
// that is also at most isqrt(n), or nil.
func smallFactor(n *big.Int) *big.Int {
	if n.Bit(0) == 0 {
		if n.Cmp(bigTwo) == 0 {
			return nil
		}
		return big.NewInt(2)
	}
	limit := int64(smallFactorLimit)
	if n.IsInt64() && n.Int64() < limit*limit {
		limit = Bound(n).Int64()
	}
	d := new(big.Int)
	rem := new(big.Int)
	for i := int64(3); i <= limit; i += 2 {
		d.SetInt64(i)
		if rem.Rem(n, d).Sign() == 0 {
			return d
		}
	}
	return nil
}

// brent searches for a non-trivial factor of the odd composite n using
// the polynomial x^2 + c. It returns nil when the cycle closed without a
// factor, in which case another c must be tried.
func brent(ctx context.Context, n, c *big.Int) (*big.Int, error) {
	step := func(v *big.Int) {
		v.Mul(v, v)
		v.Add(v, c)
		v.Mod(v, n)
	}

	y := big.NewInt(2)
	x := new(big.Int)
	ys := new(big.Int)
	q := big.NewInt(1)
	g := big.NewInt(1)
	diff := new(big.Int)

	for r := 1; g.Cmp(bigOne) == 0; r *= 2 {
		x.Set(y)
		for i := 0; i < r; i++ {
			if i%rhoBatch == 0 {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
			}
			step(y)
		}
		for k := 0; k < r && g.Cmp(bigOne) == 0; k += rhoBatch {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			ys.Set(y)
			for i := 0; i < rhoBatch && i < r-k; i++ {
				step(y)
				diff.Sub(x, y)
				diff.Abs(diff)
				q.Mul(q, diff)
				q.Mod(q, n)
			}
			g.GCD(nil, nil, q, n)
		}
	}

	if g.Cmp(n) == 0 {
		// The batch overshot; replay it one step at a time.
		for i := 0; ; i++ {
			if i%rhoBatch == 0 {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
			}
			step(ys)
			diff.Sub(x, ys)
			diff.Abs(diff)
			g.GCD(nil, nil, diff, n)
			if g.Cmp(bigOne) > 0 {
				break
			}
		}
	}
	if g.Cmp(n) == 0 {
		return nil, nil
	}
	return g, nil
}
