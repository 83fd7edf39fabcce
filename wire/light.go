package wire

import "github.com/ferristseng/go-lifx/common"

// LightGet requests the full light state: color, power and label
type LightGet struct{ getBehaviour }

func (LightGet) Type() uint16 { return typeLightGet }

// LightSetColor changes the color of a light, transitioning over the given
// duration in milliseconds
type LightSetColor struct {
	stateBehaviour
	Reserved uint8
	Color    common.Color
	Duration uint32
}

func (LightSetColor) Type() uint16 { return typeLightSetColor }
func (LightSetColor) Size() uint16 { return 13 }

func (p LightSetColor) encode(e *Encoder) error {
	e.WriteUint8(p.Reserved)
	encodeColor(e, p.Color)
	e.WriteUint32(p.Duration)
	return nil
}

func decodeLightSetColor(d *Decoder) (LightSetColor, error) {
	var p LightSetColor
	var err error
	if p.Reserved, err = d.ReadUint8(); err != nil {
		return p, err
	}
	if p.Color, err = decodeColor(d); err != nil {
		return p, err
	}
	if p.Duration, err = d.ReadUint32(); err != nil {
		return p, err
	}
	return p, nil
}

// LightState reports the color, power and label of a light
type LightState struct {
	stateBehaviour
	Color     common.Color
	Reserved0 int16
	Power     common.Power
	Label     string
	Reserved1 uint64
}

func (LightState) Type() uint16 { return typeLightState }
func (LightState) Size() uint16 { return 8 + 2 + 2 + LabelSize + 8 }

func (p LightState) encode(e *Encoder) error {
	encodeColor(e, p.Color)
	e.WriteInt16(p.Reserved0)
	e.WriteUint16(uint16(p.Power))
	if err := e.WriteStringFixed(p.Label, LabelSize); err != nil {
		return err
	}
	e.WriteUint64(p.Reserved1)
	return nil
}

func decodeLightState(d *Decoder) (LightState, error) {
	var p LightState
	var err error
	if p.Color, err = decodeColor(d); err != nil {
		return p, err
	}
	if p.Reserved0, err = d.ReadInt16(); err != nil {
		return p, err
	}
	level, err := d.ReadUint16()
	if err != nil {
		return p, err
	}
	p.Power = common.Power(level)
	if p.Label, err = d.ReadStringFixed(LabelSize); err != nil {
		return p, err
	}
	if p.Reserved1, err = d.ReadUint64(); err != nil {
		return p, err
	}
	return p, nil
}

// LightGetPower requests the power level of a light
type LightGetPower struct{ getBehaviour }

func (LightGetPower) Type() uint16 { return typeLightGetPower }

// LightSetPower changes the power level of a light, transitioning over the
// given duration in milliseconds
type LightSetPower struct {
	stateBehaviour
	Level    common.Power
	Duration uint32
}

func (LightSetPower) Type() uint16 { return typeLightSetPower }
func (LightSetPower) Size() uint16 { return 6 }

func (p LightSetPower) encode(e *Encoder) error {
	e.WriteUint16(uint16(p.Level))
	e.WriteUint32(p.Duration)
	return nil
}

func decodeLightSetPower(d *Decoder) (LightSetPower, error) {
	var p LightSetPower
	level, err := d.ReadUint16()
	if err != nil {
		return p, err
	}
	p.Level = common.Power(level)
	if p.Duration, err = d.ReadUint32(); err != nil {
		return p, err
	}
	return p, nil
}

// LightStatePower reports the power level of a light
type LightStatePower struct {
	stateBehaviour
	Level common.Power
}

func (LightStatePower) Type() uint16 { return typeLightStatePower }
func (LightStatePower) Size() uint16 { return 2 }

func (p LightStatePower) encode(e *Encoder) error {
	e.WriteUint16(uint16(p.Level))
	return nil
}

func decodeLightStatePower(d *Decoder) (LightStatePower, error) {
	var p LightStatePower
	level, err := d.ReadUint16()
	if err != nil {
		return p, err
	}
	p.Level = common.Power(level)
	return p, nil
}
