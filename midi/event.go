package midi

// EventKind discriminates the controls an APC mini surface has.
type EventKind int

const (
	EventPad EventKind = iota
	EventScene
	EventTrackButton
	EventShift
	EventFader
)

// Event is a single control gesture from the hardware, already mapped
// to grid coordinates or button indices.
type Event struct {
	Kind EventKind

	// Pad events: grid coordinates, row 0 at the top.
	Col, Row int
	Velocity uint8

	// Scene / track / fader events.
	Index int
	Value uint8

	Pressed bool
}

// ControllerType distinguishes controller families for routing.
type ControllerType int

const (
	ControllerAPCMini ControllerType = iota
)

// Controller is a connected MIDI surface.
type Controller interface {
	ID() string
	Type() ControllerType

	// Events streams mapped control gestures. The channel is closed
	// when the controller closes.
	Events() <-chan Event

	Close() error
}
