package wire

import (
	"errors"
	"fmt"

	"github.com/ferristseng/go-lifx/common"
)

// ErrUnrecognizedMessage is returned when decoding a payload whose type code
// is not in the catalog.  Unrecognized traffic is common on a shared port and
// must be discardable without affecting the session.
var ErrUnrecognizedMessage = errors.New(`unrecognized message`)

// Payload is one variant of the message body union.  Type code, tagged flag,
// response flag and wire size are pure functions of the variant, independent
// of its field values.
type Payload interface {
	// Type returns the numeric message type code carried in the header
	Type() uint16
	// Tagged reports whether the message addresses any device on the
	// network rather than a specific target
	Tagged() bool
	// RequiresResponse reports whether a State-style reply is expected
	RequiresResponse() bool
	// Size returns the exact encoded payload length in bytes
	Size() uint16

	encode(e *Encoder) error
}

// Message type codes.  The catalog is closed: codes outside this table fail
// decoding with ErrUnrecognizedMessage.
const (
	typeGetService        uint16 = 2
	typeStateService      uint16 = 3
	typeGetHostInfo       uint16 = 12
	typeStateHostInfo     uint16 = 13
	typeGetHostFirmware   uint16 = 14
	typeStateHostFirmware uint16 = 15
	typeGetWifiInfo       uint16 = 16
	typeStateWifiInfo     uint16 = 17
	typeGetWifiFirmware   uint16 = 18
	typeStateWifiFirmware uint16 = 19
	typeGetPower          uint16 = 20
	typeSetPower          uint16 = 21
	typeStatePower        uint16 = 22
	typeGetLabel          uint16 = 23
	typeSetLabel          uint16 = 24
	typeStateLabel        uint16 = 25
	typeGetVersion        uint16 = 32
	typeStateVersion      uint16 = 33
	typeGetInfo           uint16 = 34
	typeStateInfo         uint16 = 35
	typeAcknowledgement   uint16 = 45
	typeGetLocation       uint16 = 48
	typeStateLocation     uint16 = 50
	typeGetGroup          uint16 = 51
	typeStateGroup        uint16 = 53
	typeEchoRequest       uint16 = 58
	typeEchoResponse      uint16 = 59
	typeLightGet          uint16 = 101
	typeLightSetColor     uint16 = 102
	typeLightState        uint16 = 107
	typeLightGetPower     uint16 = 116
	typeLightSetPower     uint16 = 117
	typeLightStatePower   uint16 = 118
)

// LabelSize is the fixed wire width of label fields
const LabelSize = 32

// LocationIDSize is the fixed wire width of location and group identifiers
const LocationIDSize = 16

// EchoPayloadSize is the fixed wire width of echo payloads
const EchoPayloadSize = 64

// getBehaviour is shared by Get-style requests: empty body, addressed to a
// specific device, a State reply is expected.
type getBehaviour struct{}

func (getBehaviour) Tagged() bool           { return false }
func (getBehaviour) RequiresResponse() bool { return true }
func (getBehaviour) Size() uint16           { return 0 }
func (getBehaviour) encode(*Encoder) error  { return nil }

// stateBehaviour is shared by Set- and State-style messages: addressed to a
// specific device, no reply expected.
type stateBehaviour struct{}

func (stateBehaviour) Tagged() bool           { return false }
func (stateBehaviour) RequiresResponse() bool { return false }

// Service identifies the transport a device offers
type Service uint8

const (
	// ServiceUDP is the only service spoken here
	ServiceUDP Service = 1
	// ServiceReserved covers every other service code; decoding a Service is
	// total, unknown codes never fail
	ServiceReserved Service = 5
)

func serviceFromByte(b uint8) Service {
	if b == uint8(ServiceUDP) {
		return ServiceUDP
	}
	return ServiceReserved
}

func (s Service) String() string {
	if s == ServiceUDP {
		return `udp`
	}
	return `reserved`
}

func encodeColor(e *Encoder, c common.Color) {
	e.WriteUint16(c.Hue)
	e.WriteUint16(c.Saturation)
	e.WriteUint16(c.Brightness)
	e.WriteUint16(c.Kelvin)
}

func decodeColor(d *Decoder) (common.Color, error) {
	var c common.Color
	var err error
	if c.Hue, err = d.ReadUint16(); err != nil {
		return c, err
	}
	if c.Saturation, err = d.ReadUint16(); err != nil {
		return c, err
	}
	if c.Brightness, err = d.ReadUint16(); err != nil {
		return c, err
	}
	if c.Kelvin, err = d.ReadUint16(); err != nil {
		return c, err
	}
	return c, nil
}

// DecodePayload decodes the payload union from d.  The wire format carries
// the type code once, in the header, so it must be supplied here rather than
// read from the body.
func DecodePayload(typ uint16, d *Decoder) (Payload, error) {
	switch typ {
	case typeGetService:
		return GetService{}, nil
	case typeStateService:
		return decodeStateService(d)
	case typeGetHostInfo:
		return GetHostInfo{}, nil
	case typeStateHostInfo:
		return decodeStateHostInfo(d)
	case typeGetHostFirmware:
		return GetHostFirmware{}, nil
	case typeStateHostFirmware:
		return decodeStateHostFirmware(d)
	case typeGetWifiInfo:
		return GetWifiInfo{}, nil
	case typeStateWifiInfo:
		return decodeStateWifiInfo(d)
	case typeGetWifiFirmware:
		return GetWifiFirmware{}, nil
	case typeStateWifiFirmware:
		return decodeStateWifiFirmware(d)
	case typeGetPower:
		return GetPower{}, nil
	case typeSetPower:
		return decodeSetPower(d)
	case typeStatePower:
		return decodeStatePower(d)
	case typeGetLabel:
		return GetLabel{}, nil
	case typeSetLabel:
		return decodeSetLabel(d)
	case typeStateLabel:
		return decodeStateLabel(d)
	case typeGetVersion:
		return GetVersion{}, nil
	case typeStateVersion:
		return decodeStateVersion(d)
	case typeGetInfo:
		return GetInfo{}, nil
	case typeStateInfo:
		return decodeStateInfo(d)
	case typeAcknowledgement:
		return Acknowledgement{}, nil
	case typeGetLocation:
		return GetLocation{}, nil
	case typeStateLocation:
		return decodeStateLocation(d)
	case typeGetGroup:
		return GetGroup{}, nil
	case typeStateGroup:
		return decodeStateGroup(d)
	case typeEchoRequest:
		return decodeEchoRequest(d)
	case typeEchoResponse:
		return decodeEchoResponse(d)
	case typeLightGet:
		return LightGet{}, nil
	case typeLightSetColor:
		return decodeLightSetColor(d)
	case typeLightState:
		return decodeLightState(d)
	case typeLightGetPower:
		return LightGetPower{}, nil
	case typeLightSetPower:
		return decodeLightSetPower(d)
	case typeLightStatePower:
		return decodeLightStatePower(d)
	}
	return nil, fmt.Errorf("%w: type %d", ErrUnrecognizedMessage, typ)
}
