package game

import (
	"time"
)

// PerfStats tracks execution time for each system.
type PerfStats struct {
	samples    map[string][]time.Duration
	maxSamples int
}

// NewPerfStats creates a new performance stats tracker.
func NewPerfStats() *PerfStats {
	return &PerfStats{
		samples:    make(map[string][]time.Duration),
		maxSamples: 120, // ~2 seconds of samples at 60fps
	}
}

// Record adds a duration sample for the named system.
func (p *PerfStats) Record(name string, d time.Duration) {
	p.samples[name] = append(p.samples[name], d)
	if len(p.samples[name]) > p.maxSamples {
		p.samples[name] = p.samples[name][1:]
	}
}

// Avg returns the average duration for the named system.
func (p *PerfStats) Avg(name string) time.Duration {
	s := p.samples[name]
	if len(s) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range s {
		total += d
	}
	return total / time.Duration(len(s))
}

// Total returns the sum of all average durations.
func (p *PerfStats) Total() time.Duration {
	var total time.Duration
	for name := range p.samples {
		total += p.Avg(name)
	}
	return total
}

// Averages returns the average duration of every recorded system.
func (p *PerfStats) Averages() map[string]time.Duration {
	avg := make(map[string]time.Duration, len(p.samples))
	for name := range p.samples {
		avg[name] = p.Avg(name)
	}
	return avg
}

// PhaseTimer times consecutive systems within a frame.
type PhaseTimer struct {
	p     *PerfStats
	name  string
	start time.Time
}

// Start begins timing the named system.
func (p *PerfStats) Start(name string) PhaseTimer {
	return PhaseTimer{p: p, name: name, start: time.Now()}
}

// Next records the running system and starts timing the next one.
func (t PhaseTimer) Next(name string) PhaseTimer {
	t.Stop()
	return t.p.Start(name)
}

// Stop records the running system.
func (t PhaseTimer) Stop() {
	t.p.Record(t.name, time.Since(t.start))
}
