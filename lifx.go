// Package lifx provides a client for discovering and commanding LIFX devices
// over the LAN protocol.
//
// A Client owns a single UDP endpoint.  Listen starts the background receive
// loop that maintains the device directory, and Discover periodically
// broadcasts service discovery and refreshes per-device state.  Also included
// in cmd/lifx is a small CLI utility for interacting with devices on the LAN.
package lifx

import (
	"runtime"

	"github.com/ferristseng/go-lifx/common"
)

const (
	// VERSION of this library
	VERSION = `0.1.0`
)

// NewClient returns a Client bound to addr, which may be an empty host to
// listen on all interfaces (e.g. `:56700`).  The socket uses short read and
// write deadlines so background loops can observe Close promptly.
func NewClient(addr string) (*Client, error) {
	conn, err := bindUDP(addr, common.DefaultReadTimeout, common.DefaultWriteTimeout)
	if err != nil {
		return nil, err
	}
	c := newClient(conn)
	runtime.SetFinalizer(c, func(c *Client) { _ = c.Close() })
	return c, nil
}

// SetLogger allows assigning a custom levelled logger that conforms to the
// common.Logger interface.  To capture logs generated during client creation,
// this should be called before creating a Client.  Defaults to
// common.StubLogger, which does no logging at all.
func SetLogger(logger common.Logger) {
	common.SetLogger(logger)
}
