package wire

import "fmt"

// Message couples a Header to a Payload.  The header's size, type, tagged and
// response flags are derived from the payload at construction.
type Message struct {
	Header  Header
	Payload Payload
}

// NewMessage returns a Message addressed to target, carrying payload.  A
// target of zero addresses any device.
func NewMessage(payload Payload, ackRequired bool, target uint64, sequence uint8) Message {
	return Message{
		Header: NewHeader(
			payload.Size()+HeaderSize,
			payload.Tagged(),
			ClientID,
			target,
			ackRequired,
			payload.RequiresResponse(),
			sequence,
			payload.Type(),
		),
		Payload: payload,
	}
}

// Unpack returns the payload and the target it was addressed to
func (m Message) Unpack() (Payload, uint64) {
	return m.Payload, m.Header.Target
}

// Encode emits the header followed by the payload, back-to-back with no
// separator
func (m Message) Encode() ([]byte, error) {
	e := NewEncoder()
	m.Header.encode(e)
	if err := m.Payload.encode(e); err != nil {
		return nil, fmt.Errorf("encode message type %d: %w", m.Header.Type, err)
	}
	return e.Bytes(), nil
}

// DecodeMessage decodes a datagram as a header followed by the payload named
// by the header's type code.  Unknown type codes fail with
// ErrUnrecognizedMessage; this is fatal for the datagram, not for the
// session.
func DecodeMessage(data []byte) (Message, error) {
	d := NewDecoder(data)
	header, err := DecodeHeader(d)
	if err != nil {
		return Message{}, fmt.Errorf("decode header: %w", err)
	}
	payload, err := DecodePayload(header.Type, d)
	if err != nil {
		return Message{}, err
	}
	return Message{Header: header, Payload: payload}, nil
}
