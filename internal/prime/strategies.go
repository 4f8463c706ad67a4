package prime

import (
	"context"
	"math/big"

	"github.com/agbru/primecheck/internal/progress"
)

// TrialDivision tests every integer from 2 up to isqrt(n). It is the
// reference strategy: its verdicts are exactly those of Check.
type TrialDivision struct{}

// Name returns the strategy description.
func (*TrialDivision) Name() string {
	return "Trial Division (O(√n))"
}

// CheckCore runs the ascending scan.
func (*TrialDivision) CheckCore(ctx context.Context, report progress.ProgressCallback, n *big.Int) (Verdict, error) {
	return trialDivision(ctx, n, 1, report)
}

// WheelDivision tests 2, then odd integers only. It examines half the
// divisors of TrialDivision and returns identical verdicts.
type WheelDivision struct{}

// Name returns the strategy description.
func (*WheelDivision) Name() string {
	return "Odd Wheel Division (O(√n/2))"
}

// CheckCore runs the scan skipping even divisors after 2.
func (*WheelDivision) CheckCore(ctx context.Context, report progress.ProgressCallback, n *big.Int) (Verdict, error) {
	return trialDivision(ctx, n, 2, report)
}
