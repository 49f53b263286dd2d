//go:build unix

package hostmon

import (
	"net"
	"os"
	"syscall"
	"time"
)

// rawTransport wraps a raw ICMP socket. Reads on AF_INET/SOCK_RAW
// sockets deliver the full datagram including the IP header, which the
// probe needs for envelope validation; net.ListenPacket strips that
// header on "ip4" networks and cannot be used here.
type rawTransport struct {
	fd int
}

// DialRaw opens a raw ICMP socket for a single probe. Opening one
// requires elevated privileges (or CAP_NET_RAW) on most systems.
func DialRaw() (Transport, error) {
	fd, err := syscall.Socket(syscall.AF_INET, syscall.SOCK_RAW, syscall.IPPROTO_ICMP)
	if err != nil {
		return nil, os.NewSyscallError("socket", err)
	}
	return &rawTransport{fd: fd}, nil
}

func (t *rawTransport) Send(b []byte, dst *net.IPAddr) error {
	ip4 := dst.IP.To4()
	if ip4 == nil {
		return &net.AddrError{Err: "not an IPv4 address", Addr: dst.String()}
	}

	var sa syscall.SockaddrInet4
	copy(sa.Addr[:], ip4)

	return os.NewSyscallError("sendto", syscall.Sendto(t.fd, b, 0, &sa))
}

func (t *rawTransport) Recv(buf []byte, timeout time.Duration) (int, net.IP, error) {
	tv := syscall.NsecToTimeval(timeout.Nanoseconds())
	if err := syscall.SetsockoptTimeval(t.fd, syscall.SOL_SOCKET, syscall.SO_RCVTIMEO, &tv); err != nil {
		return 0, nil, os.NewSyscallError("setsockopt", err)
	}

	n, from, err := syscall.Recvfrom(t.fd, buf, 0)
	if err != nil {
		if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK {
			return 0, nil, &timeoutError{}
		}
		return 0, nil, os.NewSyscallError("recvfrom", err)
	}

	var src net.IP
	if sa, ok := from.(*syscall.SockaddrInet4); ok {
		src = net.IPv4(sa.Addr[0], sa.Addr[1], sa.Addr[2], sa.Addr[3])
	}

	return n, src, nil
}

func (t *rawTransport) Close() error {
	return syscall.Close(t.fd)
}
