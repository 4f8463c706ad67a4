package report

import (
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/agbru/primecheck/internal/prime"
)

// StrategyResult is the outcome of one strategy within a run.
type StrategyResult struct {
	Name     string
	Verdict  prime.Verdict
	Duration time.Duration
	Err      error
}

// Report is everything persisted about one run.
type Report struct {
	RunID       string
	GeneratedAt time.Time
	Candidate   *big.Int
	// Strategy names the strategy whose verdict is reported.
	Strategy   string
	Verdict    prime.Verdict
	Duration   time.Duration
	Efficiency Efficiency
	// Results holds every strategy that ran, in presentation order.
	Results []StrategyResult
}

// New builds a Report for n with a fresh run ID.
func New(n *big.Int, strategy string, v prime.Verdict, d time.Duration) Report {
	return Report{
		RunID:       NewRunID(),
		GeneratedAt: time.Now().UTC(),
		Candidate:   new(big.Int).Set(n),
		Strategy:    strategy,
		Verdict:     v,
		Duration:    d,
		Efficiency:  Estimate(n),
	}
}

// NewRunID returns a random identifier correlating a report with its log
// lines and metrics.
func NewRunID() string {
	return uuid.NewString()
}

// Status summarises the verdict in a few words.
func (r Report) Status() string {
	switch {
	case r.Verdict.IsPrime():
		return "prime"
	case r.Verdict.HasWitness():
		return "composite"
	default:
		return "not prime (below 2)"
	}
}
