package hostmon

import (
	"encoding/binary"
	"errors"

	"golang.org/x/net/ipv4"
)

// EchoLength is the wire size of an ICMP echo message without payload.
const EchoLength = 8

const (
	echoRequestType = uint8(ipv4.ICMPTypeEcho)      // 8
	echoReplyType   = uint8(ipv4.ICMPTypeEchoReply) // 0
	echoCode        = 0
)

var (
	// ErrMessageLength is returned by ParseEchoReply for input that is
	// not exactly 8 bytes long.
	ErrMessageLength = errors.New("echo message must be exactly 8 bytes")

	// ErrChecksumSelfTest is returned when a freshly composed request
	// does not verify against its own checksum. Unreachable with a
	// correct Checksum, but checked rather than assumed.
	ErrChecksumSelfTest = errors.New("composed echo request failed checksum verification")
)

// ComposeEchoRequest builds an 8-byte ICMP Echo Request carrying the
// given identifier and sequence number. The checksum is computed over
// the message with a zeroed checksum field, filled in, and the result
// verified before it is returned.
func ComposeEchoRequest(identifier, sequence uint16) ([]byte, error) {
	msg := make([]byte, EchoLength)
	msg[0] = echoRequestType
	msg[1] = echoCode
	// bytes 2-3 stay zero for the checksum pass
	binary.BigEndian.PutUint16(msg[4:6], identifier)
	binary.BigEndian.PutUint16(msg[6:8], sequence)

	cs, err := Checksum(msg)
	if err != nil {
		return nil, err
	}
	binary.BigEndian.PutUint16(msg[2:4], cs)

	sum, err := FoldedSum(msg)
	if err != nil {
		return nil, err
	}
	if sum != 0xffff {
		return nil, ErrChecksumSelfTest
	}

	return msg, nil
}

// ParseEchoReply extracts identifier and sequence number from an 8-byte
// ICMP Echo Reply. ok is false when the checksum does not verify or the
// message is not an echo reply; corrupted and unrelated datagrams are
// expected on a raw socket and are not reported as errors.
func ParseEchoReply(data []byte) (identifier, sequence uint16, ok bool, err error) {
	if len(data) != EchoLength {
		return 0, 0, false, ErrMessageLength
	}

	sum, err := FoldedSum(data)
	if err != nil {
		return 0, 0, false, err
	}
	if sum != 0xffff || data[0] != echoReplyType || data[1] != echoCode {
		return 0, 0, false, nil
	}

	return binary.BigEndian.Uint16(data[4:6]), binary.BigEndian.Uint16(data[6:8]), true, nil
}
