package prime

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// TestCheck_ConcreteCases covers the documented reference values.
func TestCheck_ConcreteCases(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		n           int64
		wantPrime   bool
		wantWitness int64 // 0 means absent
		wantBound   int64
	}{
		{"97 is prime", 97, true, 0, 9},
		{"100 has witness 2", 100, false, 2, 2},
		{"899 = 29 * 31", 899, false, 29, 29},
		{"1 is not prime", 1, false, 0, 0},
		{"0 is not prime", 0, false, 0, 0},
		{"-5 is not prime", -5, false, 0, 0},
		{"2 is the smallest prime", 2, true, 0, 1},
		{"3 has an empty divisor range", 3, true, 0, 1},
		{"4 is the smallest composite", 4, false, 2, 2},
		{"49 is a perfect square", 49, false, 7, 7},
		{"7919 is prime", 7919, true, 0, 88},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v := CheckInt64(tt.n)
			if v.IsPrime() != tt.wantPrime {
				t.Errorf("IsPrime() = %v, want %v", v.IsPrime(), tt.wantPrime)
			}
			w, ok := v.Witness()
			if tt.wantWitness == 0 {
				if ok {
					t.Errorf("Witness() = %s, want absent", w)
				}
			} else if !ok || w.Int64() != tt.wantWitness {
				t.Errorf("Witness() = %v, %v, want %d", w, ok, tt.wantWitness)
			}
			if got := v.CheckedBound().Int64(); got != tt.wantBound {
				t.Errorf("CheckedBound() = %d, want %d", got, tt.wantBound)
			}
		})
	}
}

// TestCheck_DoesNotMutateCandidate ensures the candidate is read-only.
func TestCheck_DoesNotMutateCandidate(t *testing.T) {
	t.Parallel()
	n := big.NewInt(899)
	Check(n)
	if n.Int64() != 899 {
		t.Errorf("candidate mutated to %s", n)
	}
}

// TestVerdict_WitnessIsCopied ensures callers cannot mutate a verdict.
func TestVerdict_WitnessIsCopied(t *testing.T) {
	t.Parallel()
	v := CheckInt64(100)
	w, _ := v.Witness()
	w.SetInt64(99)
	again, _ := v.Witness()
	if again.Int64() != 2 {
		t.Errorf("witness changed to %s after caller mutation", again)
	}
}

// TestCheck_BeyondUint64 exercises the arbitrary-precision path.
func TestCheck_BeyondUint64(t *testing.T) {
	t.Parallel()
	// 2^64 + 1 = 274177 * 67280421310721
	n, _ := new(big.Int).SetString("18446744073709551617", 10)
	v := Check(n)
	w, ok := v.Witness()
	if v.IsPrime() || !ok || w.Int64() != 274177 {
		t.Fatalf("Check(2^64+1) = %v, want composite 274177", v)
	}

	even := new(big.Int).Lsh(big.NewInt(1), 100)
	if w, _ := Check(even).Witness(); w == nil || w.Int64() != 2 {
		t.Errorf("Check(2^100) witness = %v, want 2", w)
	}
}

func TestBound(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    string
		want string
	}{
		{"-7", "0"},
		{"0", "0"},
		{"1", "1"},
		{"24", "4"},
		{"25", "5"},
		{"26", "5"},
		{"18446744073709551615", "4294967295"},
		{"18446744073709551616", "4294967296"},
	}
	for _, tt := range tests {
		n, _ := new(big.Int).SetString(tt.n, 10)
		if got := Bound(n).String(); got != tt.want {
			t.Errorf("Bound(%s) = %s, want %s", tt.n, got, tt.want)
		}
	}
}

type goldenVerdict struct {
	N            string  `json:"n"`
	IsPrime      bool    `json:"is_prime"`
	Witness      *string `json:"witness"`
	CheckedBound string  `json:"checked_bound"`
}

func loadGolden(t *testing.T) []goldenVerdict {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "verdicts_golden.json"))
	if err != nil {
		t.Fatalf("reading golden file: %v", err)
	}
	var entries []goldenVerdict
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("decoding golden file: %v", err)
	}
	return entries
}

// TestCheck_Golden compares Check and the deterministic strategies against
// the verdicts recorded by cmd/generate-golden.
func TestCheck_Golden(t *testing.T) {
	t.Parallel()
	strategies := []coreChecker{&TrialDivision{}, &WheelDivision{}}

	for _, g := range loadGolden(t) {
		n, ok := new(big.Int).SetString(g.N, 10)
		if !ok {
			t.Fatalf("bad golden candidate %q", g.N)
		}
		want := goldenVerdict{N: g.N, IsPrime: g.IsPrime, Witness: g.Witness, CheckedBound: g.CheckedBound}

		results := []Verdict{Check(n)}
		for _, s := range strategies {
			v, err := s.CheckCore(context.Background(), nil, n)
			if err != nil {
				t.Fatalf("%s(%s): %v", s.Name(), g.N, err)
			}
			results = append(results, v)
		}
		for i, v := range results {
			got := goldenVerdict{N: g.N, IsPrime: v.IsPrime(), CheckedBound: v.CheckedBound().String()}
			if w, ok := v.Witness(); ok {
				s := w.String()
				got.Witness = &s
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("result %d for n=%s mismatch (-want +got):\n%s", i, g.N, diff)
			}
		}
	}
}

// TestStrategies_Cancellation verifies that a long scan honours its context.
func TestStrategies_Cancellation(t *testing.T) {
	t.Parallel()
	// A 160-bit prime: exhaustive search cannot finish.
	n, _ := new(big.Int).SetString("1461501637330902918203684832716283019655932542983", 10)

	for _, s := range []coreChecker{&TrialDivision{}, &WheelDivision{}} {
		s := s
		t.Run(s.Name(), func(t *testing.T) {
			t.Parallel()
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer cancel()
			_, err := s.CheckCore(ctx, nil, n)
			if !errors.Is(err, context.DeadlineExceeded) {
				t.Errorf("err = %v, want context.DeadlineExceeded", err)
			}
		})
	}
}

func TestVerdict_String(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    int64
		want string
	}{
		{97, "prime"},
		{899, "composite 29"},
		{-5, "not-prime"},
	}
	for _, tt := range tests {
		if got := CheckInt64(tt.n).String(); got != tt.want {
			t.Errorf("CheckInt64(%d).String() = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestVerdict_JSON(t *testing.T) {
	t.Parallel()
	data, err := json.Marshal(CheckInt64(899))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	const want = `{"is_prime":false,"witness_divisor":29,"checked_bound":29}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	data, _ = json.Marshal(CheckInt64(1))
	const wantNull = `{"is_prime":false,"witness_divisor":null,"checked_bound":0}`
	if string(data) != wantNull {
		t.Errorf("Marshal = %s, want %s", data, wantNull)
	}

	var back Verdict
	if err := json.Unmarshal([]byte(want), &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !back.Equal(CheckInt64(899)) {
		t.Errorf("decoded verdict %v differs from original", back)
	}
}

func TestVerdict_Cofactor(t *testing.T) {
	t.Parallel()
	n := big.NewInt(899)
	if got := Check(n).Cofactor(n); got == nil || got.Int64() != 31 {
		t.Errorf("Cofactor = %v, want 31", got)
	}
	if got := CheckInt64(97).Cofactor(big.NewInt(97)); got != nil {
		t.Errorf("Cofactor of a prime = %v, want nil", got)
	}
}
