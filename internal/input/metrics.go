package input

import (
	"sync/atomic"
	"time"

	"github.com/dshills/hotkeys/internal/input/keymap"
)

// Metrics tracks evaluation pass counts and latency.
type Metrics struct {
	// Pass counters
	globalPasses    atomic.Uint64
	elementPasses   atomic.Uint64
	fires           atomic.Uint64
	scopeRejections atomic.Uint64
	consumedKeys    atomic.Uint64
	coalesced       atomic.Uint64
	skippedRepeats  atomic.Uint64

	// Latency tracking
	totalLatency atomic.Int64
	lastLatency  atomic.Int64
	peakLatency  atomic.Int64

	// Start time for uptime calculation
	startTime atomic.Int64

	// Enable flag
	enabled atomic.Bool
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{}
	m.startTime.Store(time.Now().UnixNano())
	m.enabled.Store(true)
	return m
}

// SetEnabled enables or disables metrics collection.
func (m *Metrics) SetEnabled(enabled bool) {
	m.enabled.Store(enabled)
}

// IsEnabled returns whether metrics collection is enabled.
func (m *Metrics) IsEnabled() bool {
	return m.enabled.Load()
}

// RecordPass records the outcome of one evaluation pass.
func (m *Metrics) RecordPass(mode keymap.Mode, result keymap.Result, latency time.Duration) {
	if m == nil || !m.enabled.Load() {
		return
	}

	switch mode {
	case keymap.ModeGlobal:
		m.globalPasses.Add(1)
	case keymap.ModeElement:
		m.elementPasses.Add(1)
	}
	m.fires.Add(uint64(len(result.Fired)))
	m.scopeRejections.Add(uint64(result.ScopeRejected))
	m.consumedKeys.Add(uint64(result.Consumed))

	latencyNs := latency.Nanoseconds()
	m.totalLatency.Add(latencyNs)
	m.lastLatency.Store(latencyNs)

	// Update peak latency
	for {
		current := m.peakLatency.Load()
		if latencyNs <= current {
			break
		}
		if m.peakLatency.CompareAndSwap(current, latencyNs) {
			break
		}
	}
}

// RecordCoalesced records a change notification folded into a pass that
// was already running or pending.
func (m *Metrics) RecordCoalesced() {
	if m == nil || !m.enabled.Load() {
		return
	}
	m.coalesced.Add(1)
}

// RecordSkippedRepeat records an auto-repeat key-down ignored by an element.
func (m *Metrics) RecordSkippedRepeat() {
	if m == nil || !m.enabled.Load() {
		return
	}
	m.skippedRepeats.Add(1)
}

// MetricsSnapshot holds a point-in-time view of metrics.
type MetricsSnapshot struct {
	// Counters
	GlobalPasses    uint64
	ElementPasses   uint64
	Fires           uint64
	ScopeRejections uint64
	ConsumedKeys    uint64
	Coalesced       uint64
	SkippedRepeats  uint64

	// Latency stats
	AvgPassLatency  time.Duration
	LastPassLatency time.Duration
	PeakPassLatency time.Duration

	// Uptime
	Uptime time.Duration
}

// Passes returns the total number of passes of either mode.
func (s MetricsSnapshot) Passes() uint64 {
	return s.GlobalPasses + s.ElementPasses
}

// Snapshot returns a point-in-time view of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{
		GlobalPasses:    m.globalPasses.Load(),
		ElementPasses:   m.elementPasses.Load(),
		Fires:           m.fires.Load(),
		ScopeRejections: m.scopeRejections.Load(),
		ConsumedKeys:    m.consumedKeys.Load(),
		Coalesced:       m.coalesced.Load(),
		SkippedRepeats:  m.skippedRepeats.Load(),
		LastPassLatency: time.Duration(m.lastLatency.Load()),
		PeakPassLatency: time.Duration(m.peakLatency.Load()),
		Uptime:          time.Since(time.Unix(0, m.startTime.Load())),
	}

	if passes := snap.Passes(); passes > 0 {
		snap.AvgPassLatency = time.Duration(m.totalLatency.Load() / int64(passes))
	}

	return snap
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.globalPasses.Store(0)
	m.elementPasses.Store(0)
	m.fires.Store(0)
	m.scopeRejections.Store(0)
	m.consumedKeys.Store(0)
	m.coalesced.Store(0)
	m.skippedRepeats.Store(0)
	m.totalLatency.Store(0)
	m.lastLatency.Store(0)
	m.peakLatency.Store(0)
	m.startTime.Store(time.Now().UnixNano())
}
