package wire

const (
	// HeaderSize is the fixed encoded length of a Header in bytes
	HeaderSize uint16 = 36
	// ProtocolNumber is the only protocol revision spoken here
	ProtocolNumber uint16 = 1024
	// ClientID identifies this client in the header source field, so that
	// replies can be told apart from other traffic on the shared port
	ClientID uint32 = 1014
)

// Header is the fixed 36-byte frame / frame-address / protocol-header triad
// that precedes every payload.  Several boolean and numeric sub-fields share
// 16-bit words on the wire and are packed with bit masks.
type Header struct {
	// Size is the total message length in bytes, including the header
	Size uint16
	// Origin is reserved, always zero in practice, but preserved across a
	// decode for round-trip fidelity
	Origin uint8
	// Tagged is set on messages addressed to any device rather than a
	// specific target
	Tagged bool
	// Addressable is always true, the frame-address fields are present
	Addressable bool
	// Protocol is always ProtocolNumber
	Protocol uint16
	// Source identifies the client
	Source uint32
	// Target is the device identifier, zero for broadcast
	Target uint64
	// AckRequired requests an Acknowledgement reply
	AckRequired bool
	// ResRequired requests a State reply
	ResRequired bool
	// Sequence correlates acks with requests, wrapping mod 256
	Sequence uint8
	// Type is the payload type code
	Type uint16
}

// NewHeader returns a Header with the origin, addressable and protocol
// fields at their only valid values.
func NewHeader(size uint16, tagged bool, source uint32, target uint64, ackRequired, resRequired bool, sequence uint8, typ uint16) Header {
	return Header{
		Size:        size,
		Origin:      0,
		Tagged:      tagged,
		Addressable: true,
		Protocol:    ProtocolNumber,
		Source:      source,
		Target:      target,
		AckRequired: ackRequired,
		ResRequired: resRequired,
		Sequence:    sequence,
		Type:        typ,
	}
}

// DefaultHeader returns the zero-value header used before explicit
// construction
func DefaultHeader() Header {
	return NewHeader(0, true, 0, 0, true, true, 0, 0)
}

// encode lays the header out as 36 bytes:
//
//	[0:2)   size
//	[2:4)   protocol | origin<<14 | tagged<<13 | addressable<<12
//	[4:8)   source
//	[8:16)  target
//	[16:22) reserved
//	[22]    ack_required<<1 | res_required
//	[23]    sequence
//	[24:32) reserved
//	[32:34) type
//	[34:36) reserved
func (h Header) encode(e *Encoder) {
	// FRAME
	e.WriteUint16(h.Size)
	word := h.Protocol & 0x0fff
	word |= uint16(h.Origin&0x3) << 14
	if h.Tagged {
		word |= 1 << 13
	}
	if h.Addressable {
		word |= 1 << 12
	}
	e.WriteUint16(word)
	e.WriteUint32(h.Source)

	// FRAME ADDRESS
	e.WriteUint64(h.Target)
	for i := 0; i < 6; i++ {
		e.WriteUint8(0)
	}
	var flags uint8
	if h.AckRequired {
		flags |= 1 << 1
	}
	if h.ResRequired {
		flags |= 1
	}
	e.WriteUint8(flags)
	e.WriteUint8(h.Sequence)

	// PROTOCOL HEADER
	e.WriteUint64(0)
	e.WriteUint16(h.Type)
	e.WriteUint16(0)
}

// Encode returns the 36-byte wire form of the header
func (h Header) Encode() []byte {
	e := NewEncoder()
	h.encode(e)
	return e.Bytes()
}

// DecodeHeader is the exact inverse of encode.  Reserved regions are read
// and discarded.
func DecodeHeader(d *Decoder) (Header, error) {
	var h Header

	// FRAME
	size, err := d.ReadUint16()
	if err != nil {
		return h, err
	}
	word, err := d.ReadUint16()
	if err != nil {
		return h, err
	}
	source, err := d.ReadUint32()
	if err != nil {
		return h, err
	}
	h.Size = size
	h.Origin = uint8(word >> 14)
	h.Tagged = word&(1<<13) > 0
	h.Addressable = word&(1<<12) > 0
	h.Protocol = word & 0x0fff
	h.Source = source

	// FRAME ADDRESS
	if h.Target, err = d.ReadUint64(); err != nil {
		return h, err
	}
	if _, err = d.ReadBytes(6); err != nil {
		return h, err
	}
	flags, err := d.ReadUint8()
	if err != nil {
		return h, err
	}
	h.AckRequired = flags&(1<<1) > 0
	h.ResRequired = flags&1 > 0
	if h.Sequence, err = d.ReadUint8(); err != nil {
		return h, err
	}

	// PROTOCOL HEADER
	if _, err = d.ReadUint64(); err != nil {
		return h, err
	}
	if h.Type, err = d.ReadUint16(); err != nil {
		return h, err
	}
	if _, err = d.ReadUint16(); err != nil {
		return h, err
	}

	return h, nil
}
