// Package monitor drives periodic reachability probes against a fixed
// set of hosts and retains the latest result per host for rendering.
package monitor

import (
	"log"
	"net"
	"sync"
	"time"

	hostmon "github.com/digineo/go-hostmon"
)

// Prober runs one echo round trip per host and round.
type Prober interface {
	Probe(dst *net.IPAddr, seq uint16) hostmon.Result
}

// Host is a monitored address with an optional display name. The name
// is fixed when the host is added.
type Host struct {
	Addr        *net.IPAddr
	DisplayName string
}

// Label returns "addr (name)" if a display name was supplied, the bare
// address otherwise.
func (h Host) Label() string {
	if h.DisplayName != "" {
		return h.Addr.String() + " (" + h.DisplayName + ")"
	}
	return h.Addr.String()
}

// HostStatus pairs a host with its latest probe result and running
// statistics.
type HostStatus struct {
	Host
	Result hostmon.Result
	Probed bool // false until the first round covering this host finished
	Stats  Stats
}

// Monitor probes every tracked host once per round, on a fixed
// interval, until stopped.
type Monitor struct {
	prober   Prober
	interval time.Duration

	// OnRound, if set, is called after each completed round with the
	// time the round finished. Set it before calling Start.
	OnRound func(time.Time)

	hosts   []Host
	index   map[string]int            // address -> position in hosts
	results map[string]hostmon.Result // latest result per address
	stats   map[string]*history

	seq  uint16
	mtx  sync.RWMutex
	stop chan struct{}
	done chan struct{}
}

// New creates a Monitor. Add hosts with AddHost, then call Start.
func New(prober Prober, interval time.Duration) *Monitor {
	return &Monitor{
		prober:   prober,
		interval: interval,
		index:    make(map[string]int),
		results:  make(map[string]hostmon.Result),
		stats:    make(map[string]*history),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// AddHost registers addr for monitoring. Hosts keep their insertion
// order; re-adding a known address is a no-op and reports false.
func (m *Monitor) AddHost(addr *net.IPAddr, displayName string) bool {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	key := addr.String()
	if _, dup := m.index[key]; dup {
		return false
	}

	m.index[key] = len(m.hosts)
	m.hosts = append(m.hosts, Host{Addr: addr, DisplayName: displayName})
	m.stats[key] = newHistory(defaultHistorySize)

	return true
}

// Hosts returns the tracked hosts in insertion order.
func (m *Monitor) Hosts() []Host {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	hosts := make([]Host, len(m.hosts))
	copy(hosts, m.hosts)
	return hosts
}

// Start launches the monitoring loop. The first round runs immediately.
func (m *Monitor) Start() {
	go m.run()
}

// Stop brings the monitoring to a halt and waits for the current round
// to finish.
func (m *Monitor) Stop() {
	close(m.stop)
	<-m.done
}

func (m *Monitor) run() {
	defer close(m.done)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.round()
	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.round()
		}
	}
}

// round probes every host once. Probes run concurrently; each opens
// its own transport and writes only its own result entry.
func (m *Monitor) round() {
	m.mtx.Lock()
	m.seq++
	seq := m.seq
	hosts := make([]Host, len(m.hosts))
	copy(hosts, m.hosts)
	m.mtx.Unlock()

	if len(hosts) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, h := range hosts {
		wg.Add(1)
		go func(h Host) {
			defer wg.Done()

			result := m.prober.Probe(h.Addr, seq)
			if result.Status == hostmon.SocketError {
				log.Printf("probe %v: socket error", h.Addr)
			}

			key := h.Addr.String()
			m.mtx.Lock()
			m.results[key] = result
			m.stats[key].add(result)
			m.mtx.Unlock()
		}(h)
	}
	wg.Wait()

	if m.OnRound != nil {
		m.OnRound(time.Now())
	}
}

// Snapshot returns the hosts in insertion order together with their
// latest results and statistics.
func (m *Monitor) Snapshot() []HostStatus {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	snapshot := make([]HostStatus, len(m.hosts))
	for i, h := range m.hosts {
		key := h.Addr.String()
		result, probed := m.results[key]
		snapshot[i] = HostStatus{
			Host:   h,
			Result: result,
			Probed: probed,
			Stats:  m.stats[key].compute(),
		}
	}

	return snapshot
}
