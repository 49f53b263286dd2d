package monitor

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

// proberFunc adapts a function to the Prober interface.
type proberFunc func(dst *net.IPAddr, seq uint16) hostmon.Result

func (f proberFunc) Probe(dst *net.IPAddr, seq uint16) hostmon.Result {
	return f(dst, seq)
}

func addr(s string) *net.IPAddr {
	return &net.IPAddr{IP: net.ParseIP(s)}
}

func TestAddHost(t *testing.T) {
	assert := assert.New(t)

	mon := New(nil, time.Second)
	assert.True(mon.AddHost(addr("192.0.2.1"), "alpha"))
	assert.True(mon.AddHost(addr("192.0.2.2"), ""))
	assert.False(mon.AddHost(addr("192.0.2.1"), "beta"), "duplicate address")

	hosts := mon.Hosts()
	require.Len(t, hosts, 2)
	assert.Equal("192.0.2.1 (alpha)", hosts[0].Label())
	assert.Equal("192.0.2.2", hosts[1].Label())

	// the name given first wins
	assert.Equal("alpha", hosts[0].DisplayName)
}

func TestRound(t *testing.T) {
	assert := assert.New(t)

	up := addr("192.0.2.1")
	down := addr("192.0.2.2")

	mon := New(proberFunc(func(dst *net.IPAddr, seq uint16) hostmon.Result {
		if dst.IP.Equal(up.IP) {
			return hostmon.Result{Status: hostmon.Success, Latency: 5 * time.Millisecond}
		}
		return hostmon.Result{Status: hostmon.TimedOut}
	}), time.Second)

	mon.AddHost(up, "")
	mon.AddHost(down, "")

	// nothing probed yet
	for _, hs := range mon.Snapshot() {
		assert.False(hs.Probed)
	}

	mon.round()
	mon.round()

	snapshot := mon.Snapshot()
	require.Len(t, snapshot, 2)

	assert.True(snapshot[0].Probed)
	assert.Equal(hostmon.Success, snapshot[0].Result.Status)
	assert.Equal(5*time.Millisecond, snapshot[0].Result.Latency)
	assert.Equal(2, snapshot[0].Stats.Rounds)
	assert.Equal(0, snapshot[0].Stats.Failed)

	assert.True(snapshot[1].Probed)
	assert.Equal(hostmon.TimedOut, snapshot[1].Result.Status)
	assert.Equal(2, snapshot[1].Stats.Rounds)
	assert.Equal(2, snapshot[1].Stats.Failed)
	assert.EqualValues(1, snapshot[1].Stats.Loss())
}

func TestRoundSequenceAdvances(t *testing.T) {
	var seqs []uint16
	mon := New(proberFunc(func(dst *net.IPAddr, seq uint16) hostmon.Result {
		seqs = append(seqs, seq)
		return hostmon.Result{Status: hostmon.Success}
	}), time.Second)
	mon.AddHost(addr("192.0.2.1"), "")

	mon.round()
	mon.round()
	mon.round()

	assert.Equal(t, []uint16{1, 2, 3}, seqs)
}

func TestStartStop(t *testing.T) {
	rounds := make(chan time.Time, 16)

	mon := New(proberFunc(func(dst *net.IPAddr, seq uint16) hostmon.Result {
		return hostmon.Result{Status: hostmon.Success, Latency: time.Millisecond}
	}), 10*time.Millisecond)
	mon.OnRound = func(at time.Time) {
		select {
		case rounds <- at:
		default:
		}
	}
	mon.AddHost(addr("192.0.2.1"), "")

	mon.Start()
	for i := 0; i < 3; i++ {
		select {
		case <-rounds:
		case <-time.After(time.Second):
			t.Fatal("no round completed in time")
		}
	}
	mon.Stop()

	snapshot := mon.Snapshot()
	require.Len(t, snapshot, 1)
	assert.GreaterOrEqual(t, snapshot[0].Stats.Rounds, 3)
}

// timeoutError mimics the error a raw socket read returns when the
// reply window elapses.
type timeoutError struct{}

func (e *timeoutError) Error() string   { return "i/o timeout" }
func (e *timeoutError) Timeout() bool   { return true }
func (e *timeoutError) Temporary() bool { return true }

// scriptedTransport answers probes for the addresses in replies and
// lets everything else time out.
type scriptedTransport struct {
	t       *testing.T
	replies map[string]bool

	request []byte
	dst     *net.IPAddr
}

func (s *scriptedTransport) Send(b []byte, dst *net.IPAddr) error {
	s.request = append([]byte(nil), b...)
	s.dst = dst
	return nil
}

func (s *scriptedTransport) Recv(buf []byte, timeout time.Duration) (int, net.IP, error) {
	if !s.replies[s.dst.String()] {
		return 0, nil, &timeoutError{}
	}

	id := binary.BigEndian.Uint16(s.request[4:6])
	seq := binary.BigEndian.Uint16(s.request[6:8])

	msg := icmp.Message{
		Type: ipv4.ICMPTypeEchoReply,
		Body: &icmp.Echo{ID: int(id), Seq: int(seq)},
	}
	wire, err := msg.Marshal(nil)
	require.NoError(s.t, err)

	datagram := make([]byte, ipv4.HeaderLen+len(wire))
	datagram[0] = 0x45
	datagram[9] = hostmon.ProtocolICMP
	copy(datagram[12:16], s.dst.IP.To4())
	copy(datagram[ipv4.HeaderLen:], wire)

	return copy(buf, datagram), s.dst.IP, nil
}

func (s *scriptedTransport) Close() error { return nil }

// End-to-end round through the real prober: one answering host, one
// silent host.
func TestRoundWithProber(t *testing.T) {
	assert := assert.New(t)

	up := addr("192.0.2.1")
	down := addr("192.0.2.2")

	prober := hostmon.New(hostmon.Config{
		Identifier: 42,
		Timeout:    20 * time.Millisecond,
		Dial: func() (hostmon.Transport, error) {
			return &scriptedTransport{t: t, replies: map[string]bool{up.String(): true}}, nil
		},
	})

	mon := New(prober, time.Second)
	mon.AddHost(up, "")
	mon.AddHost(down, "")
	mon.round()

	snapshot := mon.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(hostmon.Success, snapshot[0].Result.Status)
	assert.Equal(hostmon.TimedOut, snapshot[1].Result.Status)
}
