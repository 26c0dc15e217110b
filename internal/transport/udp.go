// Package transport sends replayed datagrams over UDP.
package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"syscall"

	"golang.org/x/net/ipv4"

	"github.com/llehouerou/packetplay/internal/model"
)

// ErrClosed is returned by Send after Close.
var ErrClosed = errors.New("sender closed")

// Sender delivers payloads to a fixed destination.
type Sender interface {
	Send(payload []byte) error
	Close() error
}

// UDPSender writes datagrams from a bound local port to one destination.
type UDPSender struct {
	conn net.PacketConn
	dest *net.UDPAddr
}

// Verify UDPSender implements Sender at compile time.
var _ Sender = (*UDPSender)(nil)

// Dial binds 0.0.0.0:<source_port> with address reuse and broadcast enabled
// and applies the TTL to both unicast and multicast traffic.
func Dial(ctx context.Context, s model.Settings) (*UDPSender, error) {
	dest, err := net.ResolveUDPAddr("udp4", s.Destination)
	if err != nil {
		return nil, fmt.Errorf("resolve destination %q: %w", s.Destination, err)
	}

	lc := net.ListenConfig{
		Control: func(_, _ string, c syscall.RawConn) error {
			var opErr error
			if err := c.Control(func(fd uintptr) {
				opErr = setSocketOptions(fd)
			}); err != nil {
				return err
			}
			return opErr
		},
	}

	local := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.SourcePort))
	conn, err := lc.ListenPacket(ctx, "udp4", local)
	if err != nil {
		return nil, fmt.Errorf("bind %s: %w", local, err)
	}

	if err := applyTTL(conn, s.TTL, dest.IP.IsMulticast()); err != nil {
		conn.Close()
		return nil, err
	}

	return &UDPSender{conn: conn, dest: dest}, nil
}

func applyTTL(conn net.PacketConn, ttl int, multicast bool) error {
	pc := ipv4.NewPacketConn(conn)
	if err := pc.SetTTL(ttl); err != nil {
		return fmt.Errorf("set ttl %d: %w", ttl, err)
	}
	if !multicast {
		return nil
	}
	if err := pc.SetMulticastTTL(ttl); err != nil {
		return fmt.Errorf("set multicast ttl %d: %w", ttl, err)
	}
	// Local listeners on the replay host should see the traffic too.
	if err := pc.SetMulticastLoopback(true); err != nil {
		return fmt.Errorf("enable multicast loopback: %w", err)
	}
	return nil
}

// Send writes one datagram to the destination.
func (u *UDPSender) Send(payload []byte) error {
	if u.conn == nil {
		return ErrClosed
	}
	_, err := u.conn.WriteTo(payload, u.dest)
	return err
}

// LocalAddr returns the bound local address.
func (u *UDPSender) LocalAddr() net.Addr {
	if u.conn == nil {
		return nil
	}
	return u.conn.LocalAddr()
}

// Destination returns the resolved destination address.
func (u *UDPSender) Destination() *net.UDPAddr {
	return u.dest
}

// Close releases the socket. Calling it twice is safe.
func (u *UDPSender) Close() error {
	if u.conn == nil {
		return nil
	}
	err := u.conn.Close()
	u.conn = nil
	return err
}
