package monitor

import (
	"time"

	hostmon "github.com/digineo/go-hostmon"
)

const defaultHistorySize = 50

// Stats aggregates the recent probe results for one host. Rounds and
// Failed count the whole session; Best, Worst and Mean cover only the
// results still retained in the ring.
type Stats struct {
	Rounds int           // probes recorded
	Failed int           // probes that did not end in success
	Last   time.Duration // latency of the most recent success
	Best   time.Duration
	Worst  time.Duration
	Mean   time.Duration
}

// Loss returns the failure ratio over the whole session.
func (s Stats) Loss() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Failed) / float64(s.Rounds)
}

// history is a bounded ring of recent results for one host. Access is
// guarded by the monitor's mutex.
type history struct {
	results  []hostmon.Result
	count    int
	position int

	rounds int // includes results already evicted from the ring
	failed int
	last   time.Duration
}

func newHistory(capacity int) *history {
	return &history{
		results: make([]hostmon.Result, capacity),
	}
}

func (h *history) add(r hostmon.Result) {
	h.results[h.position] = r
	h.position = (h.position + 1) % cap(h.results)

	if h.count < cap(h.results) {
		h.count++
	}

	h.rounds++
	if r.Reachable() {
		h.last = r.Latency
	} else {
		h.failed++
	}
}

func (h *history) compute() Stats {
	s := Stats{
		Rounds: h.rounds,
		Failed: h.failed,
		Last:   h.last,
	}

	var total time.Duration
	var succeeded int

	for i := 0; i < h.count; i++ {
		r := h.results[i]
		if !r.Reachable() {
			continue
		}

		if succeeded == 0 || r.Latency < s.Best {
			s.Best = r.Latency
		}
		if r.Latency > s.Worst {
			s.Worst = r.Latency
		}

		total += r.Latency
		succeeded++
	}

	if succeeded > 0 {
		s.Mean = total / time.Duration(succeeded)
	}

	return s
}
