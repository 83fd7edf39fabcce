// Package wire implements the LIFX LAN binary wire format: a little-endian
// codec over a flat byte stream, the fixed 36-byte message header, and the
// catalog of device and light payloads.
//
// Encoding is self-describing in the sense that a payload knows its own type
// code, but the wire format carries that code once, in the header.  Decoding
// the payload therefore requires the externally supplied type code, which is
// why DecodePayload takes the code as an explicit argument.
package wire

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// Encoder serializes primitive values to a flat little-endian byte stream.
// All integers are written fixed-width at their natural size, booleans as a
// single byte, strings as UTF-8 followed by a NUL terminator.  Structured
// values impose no framing of their own, fields are laid out back-to-back.
type Encoder struct {
	buf []byte
}

// NewEncoder returns an empty Encoder
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Bytes returns the encoded stream
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Len returns the number of bytes encoded so far
func (e *Encoder) Len() int {
	return len(e.buf)
}

// WriteUint8 appends v as a single byte
func (e *Encoder) WriteUint8(v uint8) {
	e.buf = append(e.buf, v)
}

// WriteUint16 appends v as two little-endian bytes
func (e *Encoder) WriteUint16(v uint16) {
	e.buf = binary.LittleEndian.AppendUint16(e.buf, v)
}

// WriteUint32 appends v as four little-endian bytes
func (e *Encoder) WriteUint32(v uint32) {
	e.buf = binary.LittleEndian.AppendUint32(e.buf, v)
}

// WriteUint64 appends v as eight little-endian bytes
func (e *Encoder) WriteUint64(v uint64) {
	e.buf = binary.LittleEndian.AppendUint64(e.buf, v)
}

// WriteInt8 appends v as a single byte
func (e *Encoder) WriteInt8(v int8) {
	e.WriteUint8(uint8(v))
}

// WriteInt16 appends v as two little-endian bytes
func (e *Encoder) WriteInt16(v int16) {
	e.WriteUint16(uint16(v))
}

// WriteInt32 appends v as four little-endian bytes
func (e *Encoder) WriteInt32(v int32) {
	e.WriteUint32(uint32(v))
}

// WriteInt64 appends v as eight little-endian bytes
func (e *Encoder) WriteInt64(v int64) {
	e.WriteUint64(uint64(v))
}

// WriteFloat32 appends the IEEE 754 bits of v as four little-endian bytes
func (e *Encoder) WriteFloat32(v float32) {
	e.WriteUint32(math.Float32bits(v))
}

// WriteFloat64 appends the IEEE 754 bits of v as eight little-endian bytes
func (e *Encoder) WriteFloat64(v float64) {
	e.WriteUint64(math.Float64bits(v))
}

// WriteBool appends v as a single 0/1 byte
func (e *Encoder) WriteBool(v bool) {
	if v {
		e.WriteUint8(1)
	} else {
		e.WriteUint8(0)
	}
}

// WriteBytes appends b raw, with no length prefix
func (e *Encoder) WriteBytes(b []byte) {
	e.buf = append(e.buf, b...)
}

// WriteString appends the UTF-8 bytes of s followed by a single NUL
// terminator.  Strings containing NUL bytes are unrepresentable on the wire
// and are rejected.
func (e *Encoder) WriteString(s string) error {
	if strings.IndexByte(s, 0) >= 0 {
		return fmt.Errorf("encode string: embedded NUL byte")
	}
	e.buf = append(e.buf, s...)
	e.WriteUint8(0)
	return nil
}

// WriteStringFixed appends s into a field of exactly width bytes, zero-padded
// on the right.  Protocol-fixed string fields (labels, location and group
// names) always occupy their full field width on the wire regardless of the
// string length.
func (e *Encoder) WriteStringFixed(s string, width int) error {
	if strings.IndexByte(s, 0) >= 0 {
		return fmt.Errorf("encode string: embedded NUL byte")
	}
	if len(s) > width {
		return fmt.Errorf("encode string: %d bytes exceeds fixed width %d", len(s), width)
	}
	e.buf = append(e.buf, s...)
	for i := len(s); i < width; i++ {
		e.WriteUint8(0)
	}
	return nil
}
