package hostmon

import (
	"strconv"
	"time"
)

// Status classifies the outcome of a single probe.
type Status int

const (
	// Success means an echo reply from the target arrived in time.
	Success Status = iota

	// TimedOut means no datagram arrived within the reply window.
	TimedOut

	// WrongAnswer means a datagram arrived but failed envelope or
	// correlation validation.
	WrongAnswer

	// SocketError means the transport could not be opened or used.
	SocketError

	// ProtocolError means the codec failed to produce a self-consistent
	// request.
	ProtocolError
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case TimedOut:
		return "timeout"
	case WrongAnswer:
		return "wrong-answer"
	case SocketError:
		return "socket-error"
	case ProtocolError:
		return "protocol-error"
	}
	return "unknown"
}

// Reason returns a short human-readable description of an abnormal
// status, suitable for display next to an unreachable host.
func (s Status) Reason() string {
	switch s {
	case TimedOut:
		return "timed out"
	case WrongAnswer:
		return "errors in received echo reply"
	case SocketError:
		return "error while using the socket"
	case ProtocolError:
		return "error while generating echo request"
	}
	return "unknown status"
}

// Result is the outcome of one probe attempt. Latency is only set for
// Success.
type Result struct {
	Status  Status
	Latency time.Duration
}

// Reachable reports whether the probe ended with an echo reply.
func (r Result) Reachable() bool {
	return r.Status == Success
}

// LatencyMillis returns the round trip time in milliseconds, rounded.
func (r Result) LatencyMillis() int {
	return int(r.Latency.Round(time.Millisecond) / time.Millisecond)
}

// String renders the result for display: whole milliseconds for a
// reachable host ("<1 ms" below one millisecond), the failure reason
// otherwise.
func (r Result) String() string {
	if !r.Reachable() {
		return r.Status.Reason()
	}
	if r.Latency < time.Millisecond {
		return "<1 ms"
	}
	return strconv.Itoa(r.LatencyMillis()) + " ms"
}
