package hostmon

import (
	"net"
	"time"
)

// maxDatagramSize bounds the receive buffer for echo replies. Replies
// to our 8-byte requests are far smaller, even with IP options.
const maxDatagramSize = 1024

// A Transport carries raw ICMP datagrams for a single probe attempt.
// Recv must return the datagram as seen on the wire, IPv4 header
// included, together with its source address. A transport is used for
// exactly one send and one receive, then closed.
type Transport interface {
	Send(b []byte, dst *net.IPAddr) error
	Recv(buf []byte, timeout time.Duration) (n int, from net.IP, err error)
	Close() error
}

// A Dialer opens a fresh Transport for a single probe attempt.
type Dialer func() (Transport, error)
