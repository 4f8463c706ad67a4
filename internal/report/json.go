package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/agbru/primecheck/internal/prime"
)

// JSONWriter writes a Report as a single JSON document. Big integers are
// encoded as JSON numbers, which encoding/json renders exactly.
type JSONWriter struct {
	// Indent enables pretty printing when non-empty.
	Indent string
}

type jsonEfficiency struct {
	Limit           string   `json:"limit"`
	NaiveChecks     string   `json:"naive_checks"`
	OptimizedChecks string   `json:"optimized_checks"`
	Ratio           *float64 `json:"ratio"`
}

type jsonResult struct {
	Name       string         `json:"name"`
	Verdict    *prime.Verdict `json:"verdict,omitempty"`
	DurationNS int64          `json:"duration_ns"`
	Error      string         `json:"error,omitempty"`
}

type jsonReport struct {
	RunID       string         `json:"run_id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Candidate   string         `json:"candidate"`
	Strategy    string         `json:"strategy"`
	Verdict     prime.Verdict  `json:"verdict"`
	DurationNS  int64          `json:"duration_ns"`
	Efficiency  jsonEfficiency `json:"efficiency"`
	Results     []jsonResult   `json:"results,omitempty"`
}

// Write implements Writer.
func (jw JSONWriter) Write(w io.Writer, r Report) error {
	doc := jsonReport{
		RunID:       r.RunID,
		GeneratedAt: r.GeneratedAt,
		Candidate:   r.Candidate.String(),
		Strategy:    r.Strategy,
		Verdict:     r.Verdict,
		DurationNS:  r.Duration.Nanoseconds(),
		Efficiency: jsonEfficiency{
			Limit:           r.Efficiency.Limit.String(),
			NaiveChecks:     r.Efficiency.NaiveChecks.String(),
			OptimizedChecks: r.Efficiency.OptimizedChecks.String(),
		},
	}
	if r.Efficiency.HasRatio {
		ratio := r.Efficiency.Ratio
		doc.Efficiency.Ratio = &ratio
	}
	for _, res := range r.Results {
		jr := jsonResult{Name: res.Name, DurationNS: res.Duration.Nanoseconds()}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		} else {
			v := res.Verdict
			jr.Verdict = &v
		}
		doc.Results = append(doc.Results, jr)
	}

	enc := json.NewEncoder(w)
	if jw.Indent != "" {
		enc.SetIndent("", jw.Indent)
	}
	return enc.Encode(doc)
}
