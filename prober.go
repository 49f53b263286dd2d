// Package hostmon implements the ICMPv4 echo protocol engine used to
// check reachability and round-trip latency of IPv4 hosts: the internet
// checksum, the 8-byte echo request/reply codec, and a single-shot
// prober that classifies every outcome of one round trip.
package hostmon

import (
	"net"
	"os"
	"time"

	"golang.org/x/net/ipv4"
)

const defaultTimeout = 2 * time.Second

// Config carries the session parameters for a Prober. Identifier and
// Dial are explicit so tests can run deterministically against a fake
// transport.
type Config struct {
	Identifier uint16        // session token; derived from the process id if zero
	Timeout    time.Duration // reply window per probe; defaults to 2s
	Dial       Dialer        // transport factory; defaults to DialRaw
}

// Prober executes single ICMP echo round trips.
type Prober struct {
	id      uint16
	timeout time.Duration
	dial    Dialer
}

// New creates a Prober from cfg, filling in defaults for zero values.
func New(cfg Config) *Prober {
	if cfg.Identifier == 0 {
		cfg.Identifier = uint16(os.Getpid() & 0xffff)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Dial == nil {
		cfg.Dial = DialRaw
	}

	return &Prober{
		id:      cfg.Identifier,
		timeout: cfg.Timeout,
		dial:    cfg.Dial,
	}
}

// Identifier returns the session token stamped into outgoing requests.
func (p *Prober) Identifier() uint16 {
	return p.id
}

// Timeout returns the reply window used per probe.
func (p *Prober) Timeout() time.Duration {
	return p.timeout
}

// Probe sends one echo request with the given sequence number to dst
// and waits for the reply. Every fault is converted into a Result
// variant; Probe never panics or returns an error. The transport is
// scoped to this call and released before returning.
func (p *Prober) Probe(dst *net.IPAddr, seq uint16) Result {
	transport, err := p.dial()
	if err != nil {
		log.Errorf("open transport: %v", err)
		return Result{Status: SocketError}
	}
	defer transport.Close()

	request, err := ComposeEchoRequest(p.id, seq)
	if err != nil {
		log.Errorf("compose echo request: %v", err)
		return Result{Status: ProtocolError}
	}

	if err := transport.Send(request, dst); err != nil {
		log.Errorf("send to %v: %v", dst, err)
		return Result{Status: SocketError}
	}
	sent := time.Now()

	buf := make([]byte, maxDatagramSize)
	n, from, err := transport.Recv(buf, p.timeout)
	// taken before validation, so parsing cost never inflates the
	// reported latency
	elapsed := time.Since(sent)

	if err != nil {
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			return Result{Status: TimedOut}
		}
		log.Errorf("receive from %v: %v", dst, err)
		return Result{Status: SocketError}
	}

	return p.classify(buf[:n], from, dst, seq, elapsed)
}

// classify validates a received datagram against the request it should
// answer. Any mismatch yields WrongAnswer; finer distinctions between
// corrupted, unrelated and misdirected replies are deliberately not
// made.
func (p *Prober) classify(datagram []byte, from net.IP, dst *net.IPAddr, seq uint16, elapsed time.Duration) Result {
	header, err := ParseIPHeaderView(datagram)
	if err != nil {
		return Result{Status: WrongAnswer}
	}

	if from == nil || !from.Equal(dst.IP) ||
		header.Version != ipv4.Version || header.Protocol != ProtocolICMP {
		return Result{Status: WrongAnswer}
	}

	if header.HeaderLen > len(datagram) {
		return Result{Status: WrongAnswer}
	}
	payload := datagram[header.HeaderLen:]

	identifier, sequence, ok, err := ParseEchoReply(payload)
	if err != nil || !ok || identifier != p.id || sequence != seq {
		return Result{Status: WrongAnswer}
	}

	return Result{Status: Success, Latency: elapsed}
}
