// Package sysmon samples process resource usage and reports the CPU
// features relevant to big-integer arithmetic.
package sysmon

import (
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// Stats holds a single snapshot of process resource usage.
type Stats struct {
	Goroutines int
	HeapAlloc  uint64 // bytes
	HeapSys    uint64 // bytes
	NumCPU     int
}

// Sample collects a snapshot of the running process.
func Sample() Stats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return Stats{
		Goroutines: runtime.NumGoroutine(),
		HeapAlloc:  m.HeapAlloc,
		HeapSys:    m.HeapSys,
		NumCPU:     runtime.NumCPU(),
	}
}

// HeapPercent is the share of the heap reserved from the OS that is in use.
func (s Stats) HeapPercent() float64 {
	if s.HeapSys == 0 {
		return 0
	}
	return float64(s.HeapAlloc) / float64(s.HeapSys) * 100
}

// CPUFeatures lists the instruction set extensions math/big benefits from.
type CPUFeatures struct {
	Arch string
	AVX2 bool
	BMI2 bool
	ADX  bool
	// ASIMD and PMULL are reported on arm64.
	ASIMD bool
	PMULL bool
}

// GetCPUFeatures reads the features detected at startup.
func GetCPUFeatures() CPUFeatures {
	return CPUFeatures{
		Arch:  runtime.GOARCH,
		AVX2:  cpu.X86.HasAVX2,
		BMI2:  cpu.X86.HasBMI2,
		ADX:   cpu.X86.HasADX,
		ASIMD: cpu.ARM64.HasASIMD,
		PMULL: cpu.ARM64.HasPMULL,
	}
}

// String renders the detected features, "none" when there are none.
func (f CPUFeatures) String() string {
	var names []string
	for _, feat := range []struct {
		name string
		on   bool
	}{
		{"AVX2", f.AVX2}, {"BMI2", f.BMI2}, {"ADX", f.ADX},
		{"ASIMD", f.ASIMD}, {"PMULL", f.PMULL},
	} {
		if feat.on {
			names = append(names, feat.name)
		}
	}
	if len(names) == 0 {
		return f.Arch + ": none"
	}
	return f.Arch + ": " + strings.Join(names, " ")
}
