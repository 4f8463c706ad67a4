package metrics

import "runtime"

// MemorySnapshot is a point-in-time reading of the Go runtime's memory.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes of live heap objects
	HeapSys      uint64 // heap bytes obtained from the OS
	Sys          uint64 // total bytes obtained from the OS
	NumGC        uint32 // completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause
	TotalAlloc   uint64 // cumulative bytes allocated
}

// MemoryCollector takes MemorySnapshots.
type MemoryCollector struct{}

// NewMemoryCollector returns a collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads the runtime statistics. It briefly stops the world.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		TotalAlloc:   m.TotalAlloc,
	}
}

// MemoryDelta summarises the allocation activity between two snapshots.
type MemoryDelta struct {
	Allocated uint64 // bytes allocated in between
	GCCycles  uint32 // GC cycles completed in between
	PeakHeap  uint64 // larger of the two HeapAlloc readings
}

// Delta computes the activity from before to after.
func Delta(before, after MemorySnapshot) MemoryDelta {
	d := MemoryDelta{PeakHeap: max(before.HeapAlloc, after.HeapAlloc)}
	if after.TotalAlloc > before.TotalAlloc {
		d.Allocated = after.TotalAlloc - before.TotalAlloc
	}
	if after.NumGC > before.NumGC {
		d.GCCycles = after.NumGC - before.NumGC
	}
	return d
}
