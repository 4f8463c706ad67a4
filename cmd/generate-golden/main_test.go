package main

import (
	"bytes"
	"encoding/json"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func strp(s string) *string { return &s }

// TestNaiveVerdict checks the reference scan against known values.
func TestNaiveVerdict(t *testing.T) {
	tests := []struct {
		n    int64
		want goldenEntry
	}{
		{-5, goldenEntry{N: "-5", CheckedBound: "0"}},
		{1, goldenEntry{N: "1", CheckedBound: "0"}},
		{2, goldenEntry{N: "2", IsPrime: true, CheckedBound: "1"}},
		{97, goldenEntry{N: "97", IsPrime: true, CheckedBound: "9"}},
		{100, goldenEntry{N: "100", Witness: strp("2"), CheckedBound: "2"}},
		{899, goldenEntry{N: "899", Witness: strp("29"), CheckedBound: "29"}},
	}
	for _, tt := range tests {
		got := naiveVerdict(big.NewInt(tt.n))
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("naiveVerdict(%d) mismatch (-want +got):\n%s", tt.n, diff)
		}
	}
}

func TestNaiveVerdict_FermatF5(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping slow scan in short mode")
	}
	n, _ := new(big.Int).SetString("4294967297", 10)
	got := naiveVerdict(n)
	if got.Witness == nil || *got.Witness != "641" {
		t.Errorf("F5 witness = %v, want 641", got.Witness)
	}
}

func TestCandidates(t *testing.T) {
	ns, err := candidates()
	if err != nil {
		t.Fatal(err)
	}
	want := (rangeEnd - rangeStart + 1) + len(notable)
	if len(ns) != want {
		t.Errorf("len(candidates) = %d, want %d", len(ns), want)
	}
}

// TestWriteGolden_MatchesCommittedFile regenerates the golden file in
// memory and compares it with the committed copy.
func TestWriteGolden_MatchesCommittedFile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping golden regeneration in short mode")
	}
	ns, err := candidates()
	if err != nil {
		t.Fatal(err)
	}
	entries := make([]goldenEntry, len(ns))
	for i, n := range ns {
		entries[i] = naiveVerdict(n)
	}
	var buf bytes.Buffer
	if err := writeGolden(&buf, entries); err != nil {
		t.Fatal(err)
	}

	committed, err := os.ReadFile(filepath.Join("..", "..", "internal", "prime", "testdata", "verdicts_golden.json"))
	if err != nil {
		t.Fatal(err)
	}
	var want, got []goldenEntry
	if err := json.Unmarshal(committed, &want); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("golden file is stale (-committed +generated):\n%s", diff)
	}
}
