package tui

import (
	"fmt"
	"strings"

	"github.com/agbru/primecheck/internal/format"
	"github.com/agbru/primecheck/internal/sysmon"
)

// heapHistory is the number of samples kept for the heap sparkline.
const heapHistory = 40

// MetricsModel displays runtime figures of the process.
type MetricsModel struct {
	stats sysmon.Stats
	heap  *RingBuffer
}

// NewMetricsModel creates an empty runtime panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{heap: NewRingBuffer(heapHistory)}
}

// Update records a runtime sample.
func (m *MetricsModel) Update(s sysmon.Stats) {
	m.stats = s
	m.heap.Push(s.HeapPercent())
}

// View renders the runtime panel content.
func (m MetricsModel) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s   %s %s   %s %s\n",
		metricLabelStyle.Render("Heap:"),
		metricValueStyle.Render(format.FormatBytes(m.stats.HeapAlloc)+" / "+format.FormatBytes(m.stats.HeapSys)),
		metricLabelStyle.Render("Goroutines:"),
		metricValueStyle.Render(fmt.Sprint(m.stats.Goroutines)),
		metricLabelStyle.Render("CPUs:"),
		metricValueStyle.Render(fmt.Sprint(m.stats.NumCPU)))
	b.WriteString(metricLabelStyle.Render("Heap use: "))
	if m.heap.Len() == 0 {
		b.WriteString(dimStyle.Render("sampling..."))
	} else {
		b.WriteString(sparklineStyle.Render(RenderSparkline(m.heap.Slice())))
	}
	return b.String()
}
