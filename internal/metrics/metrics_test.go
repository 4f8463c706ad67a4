package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMemoryCollector_Snapshot(t *testing.T) {
	t.Parallel()
	snap := NewMemoryCollector().Snapshot()
	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys == 0 {
		t.Error("Sys should be > 0")
	}
}

func TestDelta(t *testing.T) {
	t.Parallel()
	before := MemorySnapshot{HeapAlloc: 100, TotalAlloc: 1000, NumGC: 2}
	after := MemorySnapshot{HeapAlloc: 50, TotalAlloc: 4000, NumGC: 5}
	d := Delta(before, after)
	if d.Allocated != 3000 || d.GCCycles != 3 || d.PeakHeap != 100 {
		t.Errorf("unexpected delta %+v", d)
	}

	if d := Delta(after, before); d.Allocated != 0 || d.GCCycles != 0 {
		t.Errorf("reversed snapshots should not underflow: %+v", d)
	}
}

func TestRecorderObserveCheck(t *testing.T) {
	t.Parallel()
	r := NewRecorder()
	r.ObserveCheck("trial", LabelPrime, time.Millisecond)
	r.ObserveCheck("trial", LabelPrime, 2*time.Millisecond)
	r.ObserveCheck("rho", LabelComposite, time.Microsecond)
	r.IncMismatch()

	if got := testutil.ToFloat64(r.checks.WithLabelValues("trial", LabelPrime)); got != 2 {
		t.Errorf("trial/prime = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.checks.WithLabelValues("rho", LabelComposite)); got != 1 {
		t.Errorf("rho/composite = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.mismatches); got != 1 {
		t.Errorf("mismatches = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(r.checkDuration); n != 2 {
		t.Errorf("duration series = %d, want 2", n)
	}
}

func TestRecorderWriteTextfile(t *testing.T) {
	t.Parallel()
	r := NewRecorder()
	r.SetCandidateBits(10)
	r.ObserveCheck("wheel", LabelComposite, 5*time.Microsecond)
	r.ObserveMemory(MemorySnapshot{HeapAlloc: 2048})

	path := filepath.Join(t.TempDir(), "primecheck.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{
		`primecheck_checks_total{strategy="wheel",verdict="composite"} 1`,
		"primecheck_candidate_bits 10",
		"primecheck_heap_alloc_bytes 2048",
		"# TYPE primecheck_check_duration_seconds histogram",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("textfile missing %q", want)
		}
	}
}
