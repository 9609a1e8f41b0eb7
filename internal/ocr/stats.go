package ocr

import (
	"slices"
	"sync"
	"time"
)

// maxSamples bounds memory when a busy worker pool records faster than the
// window expires.
const maxSamples = 4096

type observation struct {
	at         time.Time
	durationMs int64
	failed     bool
}

// StatsSnapshot summarizes recognition calls inside the window.
type StatsSnapshot struct {
	Calls    int     `json:"calls"`
	Failures int     `json:"failures"`
	MinMs    int64   `json:"min_ms"`
	MaxMs    int64   `json:"max_ms"`
	AvgMs    float64 `json:"avg_ms"`
	P50Ms    float64 `json:"p50_ms"`
	P95Ms    float64 `json:"p95_ms"`
}

// Stats keeps a rolling window of recognition latencies.
type Stats struct {
	mu     sync.Mutex
	window time.Duration
	obs    []observation
	now    func() time.Time
}

func NewStats(window time.Duration) *Stats {
	if window <= 0 {
		window = time.Hour
	}
	return &Stats{window: window, now: time.Now}
}

// Record adds a successful call.
func (s *Stats) Record(durationMs int64) {
	s.add(durationMs, false)
}

// RecordFailure adds a failed call. Failures count toward Calls but not
// toward latency figures.
func (s *Stats) RecordFailure(durationMs int64) {
	s.add(durationMs, true)
}

func (s *Stats) add(durationMs int64, failed bool) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expireLocked()
	if len(s.obs) == maxSamples {
		s.obs = s.obs[1:]
	}
	s.obs = append(s.obs, observation{at: s.now(), durationMs: max(durationMs, 0), failed: failed})
}

func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expireLocked()
	snap := StatsSnapshot{Calls: len(s.obs)}
	var durations []int64
	var sum int64
	for _, o := range s.obs {
		if o.failed {
			snap.Failures++
			continue
		}
		durations = append(durations, o.durationMs)
		sum += o.durationMs
	}
	if len(durations) == 0 {
		return snap
	}
	slices.Sort(durations)
	snap.MinMs = durations[0]
	snap.MaxMs = durations[len(durations)-1]
	snap.AvgMs = float64(sum) / float64(len(durations))
	snap.P50Ms = interpolate(durations, 0.50)
	snap.P95Ms = interpolate(durations, 0.95)
	return snap
}

// expireLocked drops observations older than the window. Observations are
// appended in time order, so the expired ones form a prefix.
func (s *Stats) expireLocked() {
	cutoff := s.now().Add(-s.window)
	i := 0
	for i < len(s.obs) && s.obs[i].at.Before(cutoff) {
		i++
	}
	if i > 0 {
		s.obs = slices.Delete(s.obs, 0, i)
	}
}

// interpolate returns the q-quantile (0..1) of sorted values using linear
// interpolation between closest ranks.
func interpolate(sorted []int64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	if lo >= len(sorted)-1 {
		return float64(sorted[len(sorted)-1])
	}
	frac := pos - float64(lo)
	return float64(sorted[lo]) + frac*float64(sorted[lo+1]-sorted[lo])
}
