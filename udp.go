package lifx

import (
	"errors"
	"net"
	"time"

	"golang.org/x/sys/unix"

	"github.com/ferristseng/go-lifx/common"
)

// Conn is the UDP transport capability a Client requires: send a datagram to
// an address, receive a datagram with its sender, toggle broadcast mode, and
// close.  Reads and writes are bounded by short deadlines so callers can poll
// for shutdown instead of blocking forever.
type Conn interface {
	// SendTo writes b as a single datagram to addr, returning the number of
	// bytes written
	SendTo(b []byte, addr *net.UDPAddr) (int, error)
	// RecvFrom reads a single datagram into b, returning its length and
	// sender.  A deadline expiry surfaces as a timeout error, see IsTimeout.
	RecvFrom(b []byte) (int, *net.UDPAddr, error)
	// SetBroadcast toggles the socket's broadcast send permission
	SetBroadcast(enable bool) error
	// Close closes the socket
	Close() error
}

// udpConn adapts a bound *net.UDPConn to the Conn capability
type udpConn struct {
	conn         *net.UDPConn
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// bindUDP binds a UDP4 socket on addr with the supplied per-operation
// deadlines
func bindUDP(addr string, readTimeout, writeTimeout time.Duration) (*udpConn, error) {
	udpAddr, err := net.ResolveUDPAddr(`udp4`, addr)
	if err != nil {
		return nil, err
	}
	conn, err := net.ListenUDP(`udp4`, udpAddr)
	if err != nil {
		return nil, err
	}
	return &udpConn{
		conn:         conn,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}, nil
}

func (u *udpConn) SendTo(b []byte, addr *net.UDPAddr) (int, error) {
	if err := u.conn.SetWriteDeadline(time.Now().Add(u.writeTimeout)); err != nil {
		return 0, err
	}
	return u.conn.WriteToUDP(b, addr)
}

func (u *udpConn) RecvFrom(b []byte) (int, *net.UDPAddr, error) {
	if err := u.conn.SetReadDeadline(time.Now().Add(u.readTimeout)); err != nil {
		return 0, nil, err
	}
	return u.conn.ReadFromUDP(b)
}

// SetBroadcast toggles SO_BROADCAST on the socket.  The net package exposes
// no option for this, so it is set through the raw fd.
func (u *udpConn) SetBroadcast(enable bool) error {
	raw, err := u.conn.SyscallConn()
	if err != nil {
		return err
	}
	var optErr error
	val := 0
	if enable {
		val = 1
	}
	err = raw.Control(func(fd uintptr) {
		optErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_BROADCAST, val)
	})
	if err != nil {
		return err
	}
	return optErr
}

func (u *udpConn) Close() error {
	return u.conn.Close()
}

// IsTimeout reports whether err is a transport deadline expiry.  Timeouts are
// not failures, they are the mechanism by which background loops poll the
// closed flag.
func IsTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return errors.Is(err, common.ErrTimeout)
}
