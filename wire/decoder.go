package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrShortBuffer is returned when a read runs past the end of the input
var ErrShortBuffer = errors.New(`short buffer`)

// Decoder reads primitive values back out of a flat little-endian byte
// stream.  It is the exact inverse of Encoder.
type Decoder struct {
	buf []byte
	off int
}

// NewDecoder returns a Decoder over data
func NewDecoder(data []byte) *Decoder {
	return &Decoder{buf: data}
}

// Remaining returns the number of unread bytes
func (d *Decoder) Remaining() int {
	return len(d.buf) - d.off
}

func (d *Decoder) take(n int, what string) ([]byte, error) {
	if d.Remaining() < n {
		return nil, fmt.Errorf("read %s: %w", what, ErrShortBuffer)
	}
	b := d.buf[d.off : d.off+n]
	d.off += n
	return b, nil
}

// ReadUint8 reads a single byte
func (d *Decoder) ReadUint8() (uint8, error) {
	b, err := d.take(1, `u8`)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadUint16 reads two little-endian bytes
func (d *Decoder) ReadUint16() (uint16, error) {
	b, err := d.take(2, `u16`)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadUint32 reads four little-endian bytes
func (d *Decoder) ReadUint32() (uint32, error) {
	b, err := d.take(4, `u32`)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadUint64 reads eight little-endian bytes
func (d *Decoder) ReadUint64() (uint64, error) {
	b, err := d.take(8, `u64`)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadInt8 reads a single byte
func (d *Decoder) ReadInt8() (int8, error) {
	v, err := d.ReadUint8()
	return int8(v), err
}

// ReadInt16 reads two little-endian bytes
func (d *Decoder) ReadInt16() (int16, error) {
	v, err := d.ReadUint16()
	return int16(v), err
}

// ReadInt32 reads four little-endian bytes
func (d *Decoder) ReadInt32() (int32, error) {
	v, err := d.ReadUint32()
	return int32(v), err
}

// ReadInt64 reads eight little-endian bytes
func (d *Decoder) ReadInt64() (int64, error) {
	v, err := d.ReadUint64()
	return int64(v), err
}

// ReadFloat32 reads four little-endian bytes as IEEE 754 bits
func (d *Decoder) ReadFloat32() (float32, error) {
	v, err := d.ReadUint32()
	return math.Float32frombits(v), err
}

// ReadFloat64 reads eight little-endian bytes as IEEE 754 bits
func (d *Decoder) ReadFloat64() (float64, error) {
	v, err := d.ReadUint64()
	return math.Float64frombits(v), err
}

// ReadBool reads a single byte, any non-zero value is true
func (d *Decoder) ReadBool() (bool, error) {
	v, err := d.ReadUint8()
	return v > 0, err
}

// ReadBytes reads exactly n raw bytes, returning a copy
func (d *Decoder) ReadBytes(n int) ([]byte, error) {
	b, err := d.take(n, `bytes`)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// ReadString reads UTF-8 bytes up to a NUL terminator, consuming the
// terminator.  The read is bounded by max bytes of string content, failing if
// no terminator is found within the bound or before the input is exhausted.
func (d *Decoder) ReadString(max int) (string, error) {
	var s []byte
	for i := 0; i <= max; i++ {
		b, err := d.ReadUint8()
		if err != nil {
			return ``, fmt.Errorf("read string: %w", ErrShortBuffer)
		}
		if b == 0 {
			return string(s), nil
		}
		if i == max {
			return ``, fmt.Errorf("read string: no terminator within %d bytes", max)
		}
		s = append(s, b)
	}
	return ``, fmt.Errorf("read string: no terminator within %d bytes", max)
}

// ReadStringFixed consumes exactly width bytes and returns the content up to
// the first NUL.  A field occupying its full width decodes with no
// terminator.
func (d *Decoder) ReadStringFixed(width int) (string, error) {
	b, err := d.take(width, `string`)
	if err != nil {
		return ``, err
	}
	for i, c := range b {
		if c == 0 {
			return string(b[:i]), nil
		}
	}
	return string(b), nil
}
