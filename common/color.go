package common

import "fmt"

const (
	// KelvinMin is the warmest supported color temperature
	KelvinMin uint16 = 2500
	// KelvinMax is the coolest supported color temperature
	KelvinMax uint16 = 9000
)

// Color is used to represent the color and color temperature of a light.
// The color is represented as an HSB (Hue, Saturation, Brightness) value.
// The color temperature is represented in K (Kelvin) and is used to adjust
// the warmness / coolness of a white light, which is most obvious when
// saturation is close to zero.
type Color struct {
	Hue        uint16 // range 0 to 65535
	Saturation uint16 // range 0 to 65535
	Brightness uint16 // range 0 to 65535
	Kelvin     uint16 // range 2500° (warm) to 9000° (cool)
}

// NewColor returns a Color, validating that kelvin falls within the range
// supported by the devices.
func NewColor(hue, saturation, brightness, kelvin uint16) (Color, error) {
	if kelvin < KelvinMin || kelvin > KelvinMax {
		return Color{}, fmt.Errorf("kelvin %d outside range %d-%d", kelvin, KelvinMin, KelvinMax)
	}
	return Color{
		Hue:        hue,
		Saturation: saturation,
		Brightness: brightness,
		Kelvin:     kelvin,
	}, nil
}

// Power represents a device power level.  Devices only distinguish standby
// from full power, so only the two defined levels occur in practice.
type Power uint16

const (
	// PowerStandby is the power level of a device that is off
	PowerStandby Power = 0
	// PowerMax is the power level of a device that is on
	PowerMax Power = 65535
)

// On reports whether the power level represents a powered-on device
func (p Power) On() bool {
	return p > 0
}

func (p Power) String() string {
	switch p {
	case PowerStandby:
		return `standby`
	case PowerMax:
		return `max`
	}
	return fmt.Sprintf(`level(%d)`, uint16(p))
}
