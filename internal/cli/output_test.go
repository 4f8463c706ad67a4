package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/primecheck/internal/orchestration"
	"github.com/agbru/primecheck/internal/prime"
	"github.com/agbru/primecheck/internal/report"
	"github.com/agbru/primecheck/internal/ui"
)

func resultFor(n int64) (*big.Int, orchestration.CheckResult) {
	b := big.NewInt(n)
	return b, orchestration.CheckResult{
		Key:      "trial",
		Name:     "Trial division",
		Verdict:  prime.Check(b),
		Duration: time.Millisecond,
	}
}

func TestDisplayResult(t *testing.T) {
	ui.SetTheme("none")

	tests := []struct {
		name     string
		n        int64
		cfg      OutputConfig
		contains []string
		excludes []string
	}{
		{
			name:     "quiet prime",
			n:        97,
			cfg:      OutputConfig{Quiet: true, Explain: true},
			contains: []string{"prime\n"},
			excludes: []string{"Result"},
		},
		{
			name:     "quiet composite",
			n:        899,
			cfg:      OutputConfig{Quiet: true},
			contains: []string{"composite 29"},
		},
		{
			name: "explained composite",
			n:    100,
			cfg:  OutputConfig{Explain: true},
			contains: []string{
				"Info: 100 is not prime because it is divisible by 2 (e.g., 2 * 50 = 100).",
				"❌ Result: 100 is NOT a prime number.",
				"--- How the Algorithm Works (Efficiency) ---",
				"• For the number 100, we only need to check for divisors from 2 up to 10.",
				"--- Try Checking These Numbers ---",
				"• 899 (a non-prime with less obvious factors: 29 * 31)",
			},
		},
		{
			name:     "explained below two",
			n:        -5,
			cfg:      OutputConfig{Explain: true},
			contains: []string{"primes must be greater than 1", "-5 is below 2"},
		},
		{
			name:     "plain prime",
			n:        97,
			cfg:      OutputConfig{},
			contains: []string{"✅ Result: 97 is a PRIME number!"},
			excludes: []string{"Efficiency", "Details"},
		},
		{
			name:     "details keep the candidate intact",
			n:        1001,
			cfg:      OutputConfig{Explain: true, Details: true},
			contains: []string{"Info: 1001 is not prime because it is divisible by 7 (e.g., 7 * 143 = 1001).", "Candidate:      1,001 (10 bits, 4 digits)", "7 × 143"},
		},
		{
			name:     "details of a negative candidate",
			n:        -1234,
			cfg:      OutputConfig{Details: true},
			contains: []string{"-1234 is NOT a prime number.", "Candidate:      -1,234 (11 bits, 4 digits)"},
		},
		{
			name:     "details",
			n:        899,
			cfg:      OutputConfig{Details: true},
			contains: []string{"--- Details ---", "Trial division", "10 bits, 3 digits", "Checked bound:  29", "29 × 31"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, res := resultFor(tt.n)
			var buf bytes.Buffer
			DisplayResult(&buf, n, res, tt.cfg)
			out := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(out, unwanted) {
					t.Errorf("output should not contain %q:\n%s", unwanted, out)
				}
			}
		})
	}
}

// TestDisplayResult_NarrationMatchesReport checks that the coloured
// narration is report.Narrate once colours are off.
func TestDisplayResult_NarrationMatchesReport(t *testing.T) {
	ui.SetTheme("none")
	for _, v := range []int64{-5, 1, 2, 97, 899, 1001} {
		n, res := resultFor(v)
		var got, want bytes.Buffer
		DisplayResult(&got, n, res, OutputConfig{Explain: true})
		if err := report.Narrate(&want, n, res.Verdict); err != nil {
			t.Fatal(err)
		}
		if got.String() != "\n"+want.String() {
			t.Errorf("n=%d narration differs:\ngot:\n%s\nwant:\n%s", v, got.String(), want.String())
		}
	}
}

func TestBuildReport(t *testing.T) {
	t.Parallel()
	n := big.NewInt(899)
	results := []orchestration.CheckResult{
		{Key: "rho", Err: errors.New("boom")},
		{Key: "wheel", Verdict: prime.Check(n), Duration: time.Millisecond},
	}
	r, ok := BuildReport(n, results)
	if !ok {
		t.Fatal("BuildReport returned false with a successful result")
	}
	if r.Strategy != "wheel" || r.RunID == "" || len(r.Results) != 2 {
		t.Errorf("unexpected report %+v", r)
	}

	if _, ok := BuildReport(n, results[:1]); ok {
		t.Error("BuildReport should fail when every result failed")
	}
}

func TestWriteReport(t *testing.T) {
	ui.SetTheme("none")
	n, res := resultFor(97)
	r, _ := BuildReport(n, []orchestration.CheckResult{res})

	tmp := t.TempDir()
	path := filepath.Join(tmp, "nested", "dir", "report.json")
	var buf bytes.Buffer
	if err := WriteReport(&buf, path, "json", r); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	if !strings.Contains(buf.String(), "Report saved to") {
		t.Errorf("missing confirmation, got %q", buf.String())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("report is not JSON: %v", err)
	}
	if doc["candidate"] != "97" {
		t.Errorf("candidate = %v", doc["candidate"])
	}

	if err := WriteReport(&buf, "", "json", r); err != nil {
		t.Errorf("empty path should be a no-op, got %v", err)
	}
	err = WriteReport(&buf, filepath.Join(tmp, "r.txt"), "xml", r)
	if err == nil {
		t.Fatal("unknown format should fail")
	}
	if !strings.Contains(err.Error(), "writing xml report") {
		t.Errorf("error should name the format, got %v", err)
	}
}
