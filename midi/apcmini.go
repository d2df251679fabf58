package midi

import (
	"fmt"
	"sync"

	"apcstep/debug"
	"apcstep/skin"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// APC mini mk2 surface, driven in drum pad mode.
//
// In drum mode the 8x8 grid sends notes 64-127 on channel 9, ascending
// from the bottom-left pad. The round buttons stay on channel 0: scene
// launch notes 112-119, track buttons 100-107, shift 122. The nine
// faders are CC 48-56 on channel 0.
const (
	drumChannel  uint8 = 9
	drumNoteBase uint8 = 64

	sceneNoteBase uint8 = 112
	trackNoteBase uint8 = 100
	shiftNote     uint8 = 122

	faderCCBase   uint8 = 48
	masterFaderCC uint8 = 56

	// Round-button LED velocities (single color LEDs).
	buttonLEDOff   uint8 = 0
	buttonLEDOn    uint8 = 1
	buttonLEDBlink uint8 = 2
)

// Pad-mode SysEx values: F0 47 7F 4F 62 00 01 <mode> F7.
const (
	padModeSession uint8 = 0
	padModeDrum    uint8 = 1
)

// APCMiniController binds one APC mini mk2.
type APCMiniController struct {
	id       string
	inPort   drivers.In
	outPort  drivers.Out
	send     func(msg gomidi.Message) error
	stopFunc func()

	events chan Event

	mu        sync.Mutex
	lastPad   [64]skin.Token
	padSeen   [64]bool
	lastScene [8]skin.Token
	sceneSeen [8]bool
}

// NewAPCMiniController opens the ports and puts the grid in drum mode.
func NewAPCMiniController(id string, inPort drivers.In, outPort drivers.Out) (*APCMiniController, error) {
	c := &APCMiniController{
		id:      id,
		inPort:  inPort,
		outPort: outPort,
		events:  make(chan Event, 64),
	}

	if outPort != nil {
		send, err := gomidi.SendTo(outPort)
		if err != nil {
			return nil, fmt.Errorf("open output: %w", err)
		}
		c.send = send
		c.setPadMode(padModeDrum)
		c.clearAll()
	}

	if inPort != nil {
		stop, err := gomidi.ListenTo(inPort, c.handleMessage)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		c.stopFunc = stop
	}

	debug.Log("apcmini", "connected %q", id)
	return c, nil
}

func (c *APCMiniController) ID() string           { return c.id }
func (c *APCMiniController) Type() ControllerType { return ControllerAPCMini }
func (c *APCMiniController) Events() <-chan Event { return c.events }

func (c *APCMiniController) handleMessage(msg gomidi.Message, timestampms int32) {
	var channel, note, velocity uint8
	var cc, value uint8

	switch {
	case msg.GetNoteOn(&channel, &note, &velocity):
		c.routeNote(channel, note, velocity, velocity > 0)
	case msg.GetNoteOff(&channel, &note, &velocity):
		c.routeNote(channel, note, 0, false)
	case msg.GetControlChange(&channel, &cc, &value):
		if cc >= faderCCBase && cc <= masterFaderCC {
			c.emit(Event{Kind: EventFader, Index: int(cc - faderCCBase), Value: value})
		}
	}
}

func (c *APCMiniController) routeNote(channel, note, velocity uint8, pressed bool) {
	if channel == drumChannel {
		col, row, ok := noteToColRow(note)
		if !ok {
			return
		}
		c.emit(Event{Kind: EventPad, Col: col, Row: row, Velocity: velocity, Pressed: pressed})
		return
	}

	switch {
	case note >= sceneNoteBase && note < sceneNoteBase+8:
		c.emit(Event{Kind: EventScene, Index: int(note - sceneNoteBase), Pressed: pressed})
	case note >= trackNoteBase && note < trackNoteBase+8:
		c.emit(Event{Kind: EventTrackButton, Index: int(note - trackNoteBase), Pressed: pressed})
	case note == shiftNote:
		c.emit(Event{Kind: EventShift, Pressed: pressed})
	}
}

// emit drops events when the consumer lags rather than blocking the
// driver callback.
func (c *APCMiniController) emit(ev Event) {
	select {
	case c.events <- ev:
	default:
		debug.Log("apcmini", "event dropped (kind=%d)", ev.Kind)
	}
}

// SetPadColor lights a grid pad. RGB pads take a palette velocity on a
// behavior channel (brightness, pulse, blink). Redundant sends are
// suppressed.
func (c *APCMiniController) SetPadColor(col, row int, token skin.Token) {
	if c.send == nil || col < 0 || col >= 8 || row < 0 || row >= 8 {
		return
	}
	idx := row*8 + col

	c.mu.Lock()
	if c.padSeen[idx] && c.lastPad[idx] == token {
		c.mu.Unlock()
		return
	}
	c.lastPad[idx] = token
	c.padSeen[idx] = true
	c.mu.Unlock()

	color := skin.Lookup(token)
	c.send(gomidi.NoteOn(color.Channel, colRowToNote(col, row), color.Velocity))
}

// SetSceneColor drives a scene launch LED. These are single-color, so
// the token reduces to off, on or blink.
func (c *APCMiniController) SetSceneColor(index int, token skin.Token) {
	if c.send == nil || index < 0 || index >= 8 {
		return
	}

	c.mu.Lock()
	if c.sceneSeen[index] && c.lastScene[index] == token {
		c.mu.Unlock()
		return
	}
	c.lastScene[index] = token
	c.sceneSeen[index] = true
	c.mu.Unlock()

	c.send(gomidi.NoteOn(0, sceneNoteBase+uint8(index), buttonVelocity(token)))
}

func buttonVelocity(token skin.Token) uint8 {
	color := skin.Lookup(token)
	switch {
	case color.Velocity == 0:
		return buttonLEDOff
	case color.Channel == skin.ChannelPulse || color.Channel == skin.ChannelBlink:
		return buttonLEDBlink
	default:
		return buttonLEDOn
	}
}

func (c *APCMiniController) setPadMode(mode uint8) {
	if c.send == nil {
		return
	}
	c.send(gomidi.SysEx([]byte{0x47, 0x7F, 0x4F, 0x62, 0x00, 0x01, mode}))
}

func (c *APCMiniController) clearAll() {
	if c.send == nil {
		return
	}
	for note := int(drumNoteBase); note <= 127; note++ {
		c.send(gomidi.NoteOn(0, uint8(note), 0))
	}
	for i := 0; i < 8; i++ {
		c.send(gomidi.NoteOn(0, sceneNoteBase+uint8(i), buttonLEDOff))
		c.send(gomidi.NoteOn(0, trackNoteBase+uint8(i), buttonLEDOff))
	}
}

func (c *APCMiniController) Close() error {
	if c.send != nil {
		c.clearAll()
		c.setPadMode(padModeSession)
	}
	if c.stopFunc != nil {
		c.stopFunc()
	}
	close(c.events)
	debug.Log("apcmini", "closed %q", c.id)
	return nil
}

// Drum-mode note layout: note 64 is the bottom-left pad and notes
// ascend left to right, bottom to top. Grid coordinates keep row 0 at
// the top.

func colRowToNote(col, row int) uint8 {
	return drumNoteBase + uint8((7-row)*8+col)
}

func noteToColRow(note uint8) (col, row int, ok bool) {
	if note < drumNoteBase {
		return 0, 0, false
	}
	idx := int(note - drumNoteBase)
	return idx % 8, 7 - idx/8, true
}
