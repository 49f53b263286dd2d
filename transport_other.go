//go:build !unix

package hostmon

import "errors"

var errUnsupported = errors.New("raw ICMP transport is not supported on this platform")

// DialRaw is unavailable: receiving datagrams with their IP header
// intact requires a Unix raw socket.
func DialRaw() (Transport, error) {
	return nil, errUnsupported
}
