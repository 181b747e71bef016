package api

import "go.uber.org/atomic"

// requestStats tracks request volume across the lifetime of the process.
// Counters are read from the health handler without taking a lock, so a
// plain mutex-guarded struct would be overkill; atomics keep the hot path
// (every request) allocation-free.
type requestStats struct {
	inFlight atomic.Int64
	total    atomic.Int64
}

var stats requestStats

func (s *requestStats) begin() {
	s.inFlight.Inc()
	s.total.Inc()
}

func (s *requestStats) end() {
	s.inFlight.Dec()
}

// Snapshot reports current request volume for the health endpoint.
func (s *requestStats) Snapshot() (inFlight, total int64) {
	return s.inFlight.Load(), s.total.Load()
}
