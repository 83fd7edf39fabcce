package common

import (
	"errors"
	"time"
)

const (
	// DefaultTimeout is the default duration after which waiting operations
	// give up
	DefaultTimeout = 2 * time.Second
	// DefaultReadTimeout bounds a single blocking socket read, so that
	// background loops can poll for shutdown promptly
	DefaultReadTimeout = 500 * time.Millisecond
	// DefaultWriteTimeout bounds a single blocking socket write
	DefaultWriteTimeout = 500 * time.Millisecond
	// DefaultRateLimit is the delay enforced between successive requests to a
	// single device during discovery, so devices are not flooded
	DefaultRateLimit = 50 * time.Millisecond
)

var (
	// ErrNotFound is returned when a device lookup fails
	ErrNotFound = errors.New(`not found`)
	// ErrDuplicate is returned when attempting to register a device that is
	// already known
	ErrDuplicate = errors.New(`duplicate`)
	// ErrClosed is returned on operations against a closed client or
	// subscription
	ErrClosed = errors.New(`closed`)
	// ErrTimeout is returned when an operation exceeds its timeout
	ErrTimeout = errors.New(`timed out`)
	// ErrShortWrite is returned when fewer bytes than the encoded message
	// length were written to the socket
	ErrShortWrite = errors.New(`short write`)
)
