package hostmon

import "errors"

// ErrOddLength is returned when a checksum is requested over an odd
// number of bytes. Echo messages are always 8 bytes long, so hitting
// this indicates a bug at the call site rather than bad network input.
var ErrOddLength = errors.New("data must have an even number of bytes")

// FoldedSum computes the 16-bit ones' complement sum over data as
// described in RFC 1071: adjacent octets are paired big-endian into
// 16-bit words, the words are accumulated, and carries beyond bit 15
// are folded back until the sum fits into 16 bits.
func FoldedSum(data []byte) (uint32, error) {
	if len(data)%2 != 0 {
		return 0, ErrOddLength
	}

	var sum uint32
	for i := 0; i < len(data); i += 2 {
		sum += uint32(data[i])<<8 | uint32(data[i+1])
	}

	// fold deferred carries back into the low word
	for sum>>16 != 0 {
		sum = (sum & 0xffff) + (sum >> 16)
	}

	return sum, nil
}

// Checksum computes the internet checksum of data: the ones' complement
// of the folded ones' complement sum.
func Checksum(data []byte) (uint16, error) {
	sum, err := FoldedSum(data)
	if err != nil {
		return 0, err
	}
	return ^uint16(sum), nil
}
