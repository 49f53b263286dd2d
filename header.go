package hostmon

import (
	"errors"
	"net"

	"golang.org/x/net/ipv4"
)

// ProtocolICMP is the number of the Internet Control Message Protocol
// (see golang.org/x/net/internal/iana.ProtocolICMP)
const ProtocolICMP = 1

var errShortDatagram = errors.New("datagram too short for an IPv4 header")

// IPHeaderView is a read-only projection of the IPv4 header fields
// needed to validate an echo reply's envelope.
type IPHeaderView struct {
	Version   int    // IP version, upper nibble of the first octet
	HeaderLen int    // header length in bytes, IHL * 4
	Protocol  int    // upper-layer protocol number
	Src       net.IP // source address
}

// ParseIPHeaderView extracts the envelope fields from a raw datagram.
// Only the fixed 20-octet part of the header is inspected; options are
// accounted for via HeaderLen but not decoded.
func ParseIPHeaderView(datagram []byte) (IPHeaderView, error) {
	if len(datagram) < ipv4.HeaderLen {
		return IPHeaderView{}, errShortDatagram
	}

	return IPHeaderView{
		Version:   int(datagram[0] >> 4),
		HeaderLen: int(datagram[0]&0x0f) * 4,
		Protocol:  int(datagram[9]),
		Src:       net.IPv4(datagram[12], datagram[13], datagram[14], datagram[15]),
	}, nil
}
