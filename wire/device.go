package wire

import "github.com/ferristseng/go-lifx/common"

// GetService asks every device on the network to report the service it
// offers.  It is the only tagged message, sent as a broadcast during
// discovery.
type GetService struct{}

func (GetService) Type() uint16           { return typeGetService }
func (GetService) Tagged() bool           { return true }
func (GetService) RequiresResponse() bool { return true }
func (GetService) Size() uint16           { return 0 }
func (GetService) encode(*Encoder) error  { return nil }

// StateService is a device's reply to GetService, carrying the service it
// offers and the port it listens on
type StateService struct {
	stateBehaviour
	Service Service
	Port    uint32
}

func (StateService) Type() uint16 { return typeStateService }
func (StateService) Size() uint16 { return 5 }

func (p StateService) encode(e *Encoder) error {
	e.WriteUint8(uint8(p.Service))
	e.WriteUint32(p.Port)
	return nil
}

func decodeStateService(d *Decoder) (StateService, error) {
	var p StateService
	b, err := d.ReadUint8()
	if err != nil {
		return p, err
	}
	p.Service = serviceFromByte(b)
	if p.Port, err = d.ReadUint32(); err != nil {
		return p, err
	}
	return p, nil
}

// GetHostInfo requests host MCU information
type GetHostInfo struct{ getBehaviour }

func (GetHostInfo) Type() uint16 { return typeGetHostInfo }

// StateHostInfo reports host MCU signal strength and traffic counters
type StateHostInfo struct {
	stateBehaviour
	Signal   float32
	Tx       uint32
	Rx       uint32
	Reserved int16
}

func (StateHostInfo) Type() uint16 { return typeStateHostInfo }
func (StateHostInfo) Size() uint16 { return 14 }

func (p StateHostInfo) encode(e *Encoder) error {
	e.WriteFloat32(p.Signal)
	e.WriteUint32(p.Tx)
	e.WriteUint32(p.Rx)
	e.WriteInt16(p.Reserved)
	return nil
}

func decodeStateHostInfo(d *Decoder) (StateHostInfo, error) {
	var p StateHostInfo
	var err error
	if p.Signal, err = d.ReadFloat32(); err != nil {
		return p, err
	}
	if p.Tx, err = d.ReadUint32(); err != nil {
		return p, err
	}
	if p.Rx, err = d.ReadUint32(); err != nil {
		return p, err
	}
	if p.Reserved, err = d.ReadInt16(); err != nil {
		return p, err
	}
	return p, nil
}

// GetHostFirmware requests host MCU firmware information
type GetHostFirmware struct{ getBehaviour }

func (GetHostFirmware) Type() uint16 { return typeGetHostFirmware }

// StateHostFirmware reports the host MCU firmware build time and version
type StateHostFirmware struct {
	stateBehaviour
	Build    uint64
	Reserved uint64
	Version  uint32
}

func (StateHostFirmware) Type() uint16 { return typeStateHostFirmware }
func (StateHostFirmware) Size() uint16 { return 20 }

func (p StateHostFirmware) encode(e *Encoder) error {
	e.WriteUint64(p.Build)
	e.WriteUint64(p.Reserved)
	e.WriteUint32(p.Version)
	return nil
}

func decodeStateHostFirmware(d *Decoder) (StateHostFirmware, error) {
	var p StateHostFirmware
	var err error
	if p.Build, err = d.ReadUint64(); err != nil {
		return p, err
	}
	if p.Reserved, err = d.ReadUint64(); err != nil {
		return p, err
	}
	if p.Version, err = d.ReadUint32(); err != nil {
		return p, err
	}
	return p, nil
}

// GetWifiInfo requests wifi subsystem information
type GetWifiInfo struct{ getBehaviour }

func (GetWifiInfo) Type() uint16 { return typeGetWifiInfo }

// StateWifiInfo reports wifi subsystem signal strength and traffic counters
type StateWifiInfo struct {
	stateBehaviour
	Signal   float32
	Tx       uint32
	Rx       uint32
	Reserved int16
}

func (StateWifiInfo) Type() uint16 { return typeStateWifiInfo }
func (StateWifiInfo) Size() uint16 { return 14 }

func (p StateWifiInfo) encode(e *Encoder) error {
	e.WriteFloat32(p.Signal)
	e.WriteUint32(p.Tx)
	e.WriteUint32(p.Rx)
	e.WriteInt16(p.Reserved)
	return nil
}

func decodeStateWifiInfo(d *Decoder) (StateWifiInfo, error) {
	var p StateWifiInfo
	var err error
	if p.Signal, err = d.ReadFloat32(); err != nil {
		return p, err
	}
	if p.Tx, err = d.ReadUint32(); err != nil {
		return p, err
	}
	if p.Rx, err = d.ReadUint32(); err != nil {
		return p, err
	}
	if p.Reserved, err = d.ReadInt16(); err != nil {
		return p, err
	}
	return p, nil
}

// GetWifiFirmware requests wifi subsystem firmware information
type GetWifiFirmware struct{ getBehaviour }

func (GetWifiFirmware) Type() uint16 { return typeGetWifiFirmware }

// StateWifiFirmware reports the wifi subsystem firmware build time and
// version
type StateWifiFirmware struct {
	stateBehaviour
	Build    uint64
	Reserved uint64
	Version  uint32
}

func (StateWifiFirmware) Type() uint16 { return typeStateWifiFirmware }
func (StateWifiFirmware) Size() uint16 { return 20 }

func (p StateWifiFirmware) encode(e *Encoder) error {
	e.WriteUint64(p.Build)
	e.WriteUint64(p.Reserved)
	e.WriteUint32(p.Version)
	return nil
}

func decodeStateWifiFirmware(d *Decoder) (StateWifiFirmware, error) {
	var p StateWifiFirmware
	var err error
	if p.Build, err = d.ReadUint64(); err != nil {
		return p, err
	}
	if p.Reserved, err = d.ReadUint64(); err != nil {
		return p, err
	}
	if p.Version, err = d.ReadUint32(); err != nil {
		return p, err
	}
	return p, nil
}

// GetPower requests the device power level
type GetPower struct{ getBehaviour }

func (GetPower) Type() uint16 { return typeGetPower }

// SetPower changes the device power level
type SetPower struct {
	stateBehaviour
	Level common.Power
}

func (SetPower) Type() uint16 { return typeSetPower }
func (SetPower) Size() uint16 { return 2 }

func (p SetPower) encode(e *Encoder) error {
	e.WriteUint16(uint16(p.Level))
	return nil
}

func decodeSetPower(d *Decoder) (SetPower, error) {
	var p SetPower
	v, err := d.ReadUint16()
	if err != nil {
		return p, err
	}
	p.Level = common.Power(v)
	return p, nil
}

// StatePower reports the device power level
type StatePower struct {
	stateBehaviour
	Level common.Power
}

func (StatePower) Type() uint16 { return typeStatePower }
func (StatePower) Size() uint16 { return 2 }

func (p StatePower) encode(e *Encoder) error {
	e.WriteUint16(uint16(p.Level))
	return nil
}

func decodeStatePower(d *Decoder) (StatePower, error) {
	var p StatePower
	v, err := d.ReadUint16()
	if err != nil {
		return p, err
	}
	p.Level = common.Power(v)
	return p, nil
}

// GetLabel requests the device label
type GetLabel struct{ getBehaviour }

func (GetLabel) Type() uint16 { return typeGetLabel }

// SetLabel changes the device label
type SetLabel struct {
	stateBehaviour
	Label string
}

func (SetLabel) Type() uint16 { return typeSetLabel }
func (SetLabel) Size() uint16 { return LabelSize }

func (p SetLabel) encode(e *Encoder) error {
	return e.WriteStringFixed(p.Label, LabelSize)
}

func decodeSetLabel(d *Decoder) (SetLabel, error) {
	var p SetLabel
	var err error
	p.Label, err = d.ReadStringFixed(LabelSize)
	return p, err
}

// StateLabel reports the device label
type StateLabel struct {
	stateBehaviour
	Label string
}

func (StateLabel) Type() uint16 { return typeStateLabel }
func (StateLabel) Size() uint16 { return LabelSize }

func (p StateLabel) encode(e *Encoder) error {
	return e.WriteStringFixed(p.Label, LabelSize)
}

func decodeStateLabel(d *Decoder) (StateLabel, error) {
	var p StateLabel
	var err error
	p.Label, err = d.ReadStringFixed(LabelSize)
	return p, err
}

// GetVersion requests the device hardware version
type GetVersion struct{ getBehaviour }

func (GetVersion) Type() uint16 { return typeGetVersion }

// StateVersion reports the device hardware vendor, product and version
type StateVersion struct {
	stateBehaviour
	Vendor  uint32
	Product uint32
	Version uint32
}

func (StateVersion) Type() uint16 { return typeStateVersion }
func (StateVersion) Size() uint16 { return 12 }

func (p StateVersion) encode(e *Encoder) error {
	e.WriteUint32(p.Vendor)
	e.WriteUint32(p.Product)
	e.WriteUint32(p.Version)
	return nil
}

func decodeStateVersion(d *Decoder) (StateVersion, error) {
	var p StateVersion
	var err error
	if p.Vendor, err = d.ReadUint32(); err != nil {
		return p, err
	}
	if p.Product, err = d.ReadUint32(); err != nil {
		return p, err
	}
	if p.Version, err = d.ReadUint32(); err != nil {
		return p, err
	}
	return p, nil
}

// GetInfo requests device runtime information
type GetInfo struct{ getBehaviour }

func (GetInfo) Type() uint16 { return typeGetInfo }

// StateInfo reports the device clock, uptime and downtime, all in
// nanoseconds
type StateInfo struct {
	stateBehaviour
	Time     uint64
	Uptime   uint64
	Downtime uint64
}

func (StateInfo) Type() uint16 { return typeStateInfo }
func (StateInfo) Size() uint16 { return 24 }

func (p StateInfo) encode(e *Encoder) error {
	e.WriteUint64(p.Time)
	e.WriteUint64(p.Uptime)
	e.WriteUint64(p.Downtime)
	return nil
}

func decodeStateInfo(d *Decoder) (StateInfo, error) {
	var p StateInfo
	var err error
	if p.Time, err = d.ReadUint64(); err != nil {
		return p, err
	}
	if p.Uptime, err = d.ReadUint64(); err != nil {
		return p, err
	}
	if p.Downtime, err = d.ReadUint64(); err != nil {
		return p, err
	}
	return p, nil
}

// Acknowledgement is sent by a device when a message had ack_required set
type Acknowledgement struct{ stateBehaviour }

func (Acknowledgement) Type() uint16          { return typeAcknowledgement }
func (Acknowledgement) Size() uint16          { return 0 }
func (Acknowledgement) encode(*Encoder) error { return nil }

// GetLocation requests the device location
type GetLocation struct{ getBehaviour }

func (GetLocation) Type() uint16 { return typeGetLocation }

// StateLocation reports the location a device belongs to
type StateLocation struct {
	stateBehaviour
	Location  [LocationIDSize]byte
	Label     string
	UpdatedAt uint64
}

func (StateLocation) Type() uint16 { return typeStateLocation }
func (StateLocation) Size() uint16 { return LocationIDSize + LabelSize + 8 }

func (p StateLocation) encode(e *Encoder) error {
	e.WriteBytes(p.Location[:])
	if err := e.WriteStringFixed(p.Label, LabelSize); err != nil {
		return err
	}
	e.WriteUint64(p.UpdatedAt)
	return nil
}

func decodeStateLocation(d *Decoder) (StateLocation, error) {
	var p StateLocation
	id, err := d.ReadBytes(LocationIDSize)
	if err != nil {
		return p, err
	}
	copy(p.Location[:], id)
	if p.Label, err = d.ReadStringFixed(LabelSize); err != nil {
		return p, err
	}
	if p.UpdatedAt, err = d.ReadUint64(); err != nil {
		return p, err
	}
	return p, nil
}

// GetGroup requests the device group
type GetGroup struct{ getBehaviour }

func (GetGroup) Type() uint16 { return typeGetGroup }

// StateGroup reports the group a device belongs to
type StateGroup struct {
	stateBehaviour
	Group     [LocationIDSize]byte
	Label     string
	UpdatedAt uint64
}

func (StateGroup) Type() uint16 { return typeStateGroup }
func (StateGroup) Size() uint16 { return LocationIDSize + LabelSize + 8 }

func (p StateGroup) encode(e *Encoder) error {
	e.WriteBytes(p.Group[:])
	if err := e.WriteStringFixed(p.Label, LabelSize); err != nil {
		return err
	}
	e.WriteUint64(p.UpdatedAt)
	return nil
}

func decodeStateGroup(d *Decoder) (StateGroup, error) {
	var p StateGroup
	id, err := d.ReadBytes(LocationIDSize)
	if err != nil {
		return p, err
	}
	copy(p.Group[:], id)
	if p.Label, err = d.ReadStringFixed(LabelSize); err != nil {
		return p, err
	}
	if p.UpdatedAt, err = d.ReadUint64(); err != nil {
		return p, err
	}
	return p, nil
}

// EchoRequest asks a device to echo back an arbitrary 64-byte payload
type EchoRequest struct {
	Payload [EchoPayloadSize]byte
}

func (EchoRequest) Type() uint16           { return typeEchoRequest }
func (EchoRequest) Tagged() bool           { return false }
func (EchoRequest) RequiresResponse() bool { return true }
func (EchoRequest) Size() uint16           { return EchoPayloadSize }

func (p EchoRequest) encode(e *Encoder) error {
	e.WriteBytes(p.Payload[:])
	return nil
}

func decodeEchoRequest(d *Decoder) (EchoRequest, error) {
	var p EchoRequest
	b, err := d.ReadBytes(EchoPayloadSize)
	if err != nil {
		return p, err
	}
	copy(p.Payload[:], b)
	return p, nil
}

// EchoResponse is a device's reply to EchoRequest
type EchoResponse struct {
	stateBehaviour
	Payload [EchoPayloadSize]byte
}

func (EchoResponse) Type() uint16 { return typeEchoResponse }
func (EchoResponse) Size() uint16 { return EchoPayloadSize }

func (p EchoResponse) encode(e *Encoder) error {
	e.WriteBytes(p.Payload[:])
	return nil
}

func decodeEchoResponse(d *Decoder) (EchoResponse, error) {
	var p EchoResponse
	b, err := d.ReadBytes(EchoPayloadSize)
	if err != nil {
		return p, err
	}
	copy(p.Payload[:], b)
	return p, nil
}
