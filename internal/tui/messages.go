package tui

import (
	"math/big"
	"time"

	"github.com/agbru/primecheck/internal/orchestration"
	"github.com/agbru/primecheck/internal/sysmon"
)

// ProgressMsg carries one aggregated progress update.
type ProgressMsg struct {
	CheckerIndex    int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
	Generation      uint64
}

// ProgressDoneMsg is sent when the progress channel closes.
type ProgressDoneMsg struct {
	Generation uint64
}

// CheckCompleteMsg ends a run. Results are in presentation order.
type CheckCompleteMsg struct {
	N          *big.Int
	Results    []orchestration.CheckResult
	Final      *orchestration.CheckResult
	Err        error
	ExitCode   int
	Generation uint64
}

// TickMsg drives the elapsed timer and stats sampling.
type TickMsg time.Time

// StatsMsg carries a runtime sample.
type StatsMsg sysmon.Stats
