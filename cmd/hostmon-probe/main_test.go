package main

import (
	"encoding/binary"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"

	hostmon "github.com/digineo/go-hostmon"
)

// echoTransport answers every request immediately and records the
// sequence numbers it saw.
type echoTransport struct {
	t    *testing.T
	seqs *[]uint16

	request []byte
	dst     *net.IPAddr
}

func (e *echoTransport) Send(b []byte, dst *net.IPAddr) error {
	e.request = append([]byte(nil), b...)
	e.dst = dst
	*e.seqs = append(*e.seqs, binary.BigEndian.Uint16(b[6:8]))
	return nil
}

func (e *echoTransport) Recv(buf []byte, timeout time.Duration) (int, net.IP, error) {
	id := binary.BigEndian.Uint16(e.request[4:6])
	seq := binary.BigEndian.Uint16(e.request[6:8])

	msg := icmp.Message{
		Type: ipv4.ICMPTypeEchoReply,
		Body: &icmp.Echo{ID: int(id), Seq: int(seq)},
	}
	wire, err := msg.Marshal(nil)
	require.NoError(e.t, err)

	datagram := make([]byte, ipv4.HeaderLen+len(wire))
	datagram[0] = 0x45
	datagram[9] = hostmon.ProtocolICMP
	copy(datagram[12:16], e.dst.IP.To4())
	copy(datagram[ipv4.HeaderLen:], wire)

	return copy(buf, datagram), e.dst.IP, nil
}

func (e *echoTransport) Close() error { return nil }

func proberFor(t *testing.T, seqs *[]uint16) *hostmon.Prober {
	return hostmon.New(hostmon.Config{
		Identifier: 7,
		Dial: func() (hostmon.Transport, error) {
			return &echoTransport{t: t, seqs: seqs}, nil
		},
	})
}

func TestSweep(t *testing.T) {
	assert := assert.New(t)

	var seqs []uint16
	var ticks int
	remote := &net.IPAddr{IP: net.IPv4(192, 0, 2, 1)}

	results := sweep(proberFor(t, &seqs), remote, 3, func() { ticks++ })

	require.Len(t, results, 3)
	assert.Equal([]uint16{1, 2, 3}, seqs)
	assert.Equal(3, ticks)
	for _, r := range results {
		assert.True(r.Reachable())
	}
}

// The full sequence range must terminate: 65535 attempts reach wire
// sequence 0xffff without the counter wrapping back to zero.
func TestSweepMaxAttempts(t *testing.T) {
	assert := assert.New(t)

	var seqs []uint16
	remote := &net.IPAddr{IP: net.IPv4(192, 0, 2, 1)}

	results := sweep(proberFor(t, &seqs), remote, 0xffff, nil)

	require.Len(t, results, 0xffff)
	require.Len(t, seqs, 0xffff)
	assert.EqualValues(1, seqs[0])
	assert.EqualValues(0xffff, seqs[len(seqs)-1])

	var received int
	for _, r := range results {
		if r.Reachable() {
			received++
		}
	}
	assert.Equal(0xffff, received)
}
