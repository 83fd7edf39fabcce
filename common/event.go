package common

// EventNewDevice is emitted by a Client when it discovers a new device
type EventNewDevice struct {
	Target uint64
}

// EventUpdateLabel is emitted by a Client when a device's label is updated
type EventUpdateLabel struct {
	Target uint64
	Label  string
}

// EventUpdatePower is emitted by a Client when a device's power state is
// updated
type EventUpdatePower struct {
	Target uint64
	Power  Power
}

// EventUpdateLocation is emitted by a Client when a device's location is
// updated
type EventUpdateLocation struct {
	Target   uint64
	Location string
}

// EventUpdateGroup is emitted by a Client when a device's group is updated
type EventUpdateGroup struct {
	Target uint64
	Group  string
}

// EventUpdateColor is emitted by a Client when a light's Color is updated
type EventUpdateColor struct {
	Target uint64
	Color  Color
}
