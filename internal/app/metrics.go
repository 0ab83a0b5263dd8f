package app

import (
	"sync/atomic"
	"time"
)

// Metrics counts the edits handled while watching a file.
type Metrics struct {
	editCount   atomic.Uint64
	editTotalNs atomic.Int64
	editMaxNs   atomic.Int64
	lastEditNs  atomic.Int64

	saveFailures atomic.Uint64
	dropped      atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordEdit records one re-anchoring pass and the number of annotations
// it dropped.
func (m *Metrics) RecordEdit(duration time.Duration, dropped int) {
	ns := duration.Nanoseconds()

	m.editCount.Add(1)
	m.editTotalNs.Add(ns)
	m.lastEditNs.Store(ns)
	m.dropped.Add(uint64(dropped))

	for {
		old := m.editMaxNs.Load()
		if ns <= old || m.editMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordSaveFailure records an edit whose part could not be written.
func (m *Metrics) RecordSaveFailure() {
	m.saveFailures.Add(1)
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime       time.Duration
	EditCount    uint64
	AvgEditNs    int64
	MaxEditNs    int64
	LastEditNs   int64
	SaveFailures uint64
	Dropped      uint64
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	count := m.editCount.Load()

	var avg int64
	if count > 0 {
		avg = m.editTotalNs.Load() / int64(count)
	}

	return MetricsSnapshot{
		Uptime:       time.Since(m.startTime),
		EditCount:    count,
		AvgEditNs:    avg,
		MaxEditNs:    m.editMaxNs.Load(),
		LastEditNs:   m.lastEditNs.Load(),
		SaveFailures: m.saveFailures.Load(),
		Dropped:      m.dropped.Load(),
	}
}

// AvgEdit returns the mean re-anchoring time.
func (s MetricsSnapshot) AvgEdit() time.Duration {
	return time.Duration(s.AvgEditNs)
}

// Timer provides a simple way to measure elapsed time.
type Timer struct {
	start time.Time
}

// StartTimer creates a new timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the elapsed time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Metrics returns the application's watch metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}
