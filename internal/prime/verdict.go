package prime

import (
	"encoding/json"
	"math/big"
)

// Verdict is the immutable outcome of one primality check.
//
// The witness is present if and only if the candidate is composite, that
// is IsPrime is false and the candidate is greater than 1. CheckedBound is
// the last divisor examined: the witness itself for composites, isqrt(n)
// for primes and zero for candidates below 2.
type Verdict struct {
	isPrime      bool
	witness      *big.Int
	checkedBound *big.Int
}

// belowTwo is the verdict for every candidate n <= 1. Primes are only
// defined for integers greater than 1, so no search takes place.
func belowTwo() Verdict {
	return Verdict{checkedBound: new(big.Int)}
}

// composite returns the verdict for a candidate divisible by d.
func composite(d *big.Int) Verdict {
	return Verdict{
		witness:      new(big.Int).Set(d),
		checkedBound: new(big.Int).Set(d),
	}
}

// primeVerdict returns the verdict for a prime whose divisor range ended at bound.
func primeVerdict(bound *big.Int) Verdict {
	return Verdict{isPrime: true, checkedBound: new(big.Int).Set(bound)}
}

// IsPrime reports whether the candidate is prime.
func (v Verdict) IsPrime() bool { return v.isPrime }

// Witness returns a copy of the divisor proving compositeness. The boolean
// is false when no witness exists.
func (v Verdict) Witness() (*big.Int, bool) {
	if v.witness == nil {
		return nil, false
	}
	return new(big.Int).Set(v.witness), true
}

// HasWitness reports whether a witness divisor is present.
func (v Verdict) HasWitness() bool { return v.witness != nil }

// CheckedBound returns a copy of the last divisor examined.
func (v Verdict) CheckedBound() *big.Int {
	if v.checkedBound == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v.checkedBound)
}

// Cofactor returns n divided by the witness, or nil when there is no witness.
func (v Verdict) Cofactor(n *big.Int) *big.Int {
	if v.witness == nil || n == nil {
		return nil
	}
	return new(big.Int).Quo(n, v.witness)
}

// Equal reports whether two verdicts carry the same values.
func (v Verdict) Equal(o Verdict) bool {
	if v.isPrime != o.isPrime || v.HasWitness() != o.HasWitness() {
		return false
	}
	if v.witness != nil && v.witness.Cmp(o.witness) != 0 {
		return false
	}
	return v.CheckedBound().Cmp(o.CheckedBound()) == 0
}

// String renders the verdict the way --quiet prints it.
func (v Verdict) String() string {
	switch {
	case v.isPrime:
		return "prime"
	case v.witness != nil:
		return "composite " + v.witness.String()
	default:
		return "not-prime"
	}
}

type verdictJSON struct {
	IsPrime      bool     `json:"is_prime"`
	Witness      *big.Int `json:"witness_divisor"`
	CheckedBound *big.Int `json:"checked_bound"`
}

// MarshalJSON encodes the verdict with a null witness when absent.
func (v Verdict) MarshalJSON() ([]byte, error) {
	return json.Marshal(verdictJSON{
		IsPrime:      v.isPrime,
		Witness:      v.witness,
		CheckedBound: v.CheckedBound(),
	})
}

// UnmarshalJSON decodes a verdict produced by MarshalJSON.
func (v *Verdict) UnmarshalJSON(data []byte) error {
	var raw verdictJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v.isPrime = raw.IsPrime
	v.witness = raw.Witness
	v.checkedBound = raw.CheckedBound
	return nil
}
