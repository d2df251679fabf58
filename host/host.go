// Package host defines the narrow interface the sequencer core uses to
// talk to the owner of musical data: the clip holding notes and loop
// bounds, the transport clock, and the button grid it draws on. The
// in-memory implementations in this package back the standalone runtime
// and the tests; a DAW binding would satisfy the same interfaces.
package host

import (
	"errors"

	"apcstep/skin"
)

// ErrNoClip is returned by clip-dependent operations when no clip is
// bound. Callers treat it as a no-op, never as fatal.
var ErrNoClip = errors.New("no clip bound")

// Note is a single MIDI note in clip beat time.
type Note struct {
	Pitch    uint8
	Start    float64 // beats from clip start
	Duration float64 // beats
	Velocity uint8
	Muted    bool
}

// End returns the beat position where the note stops sounding.
func (n Note) End() float64 {
	return n.Start + n.Duration
}

// Clip is the host-owned note container the sequencer reads and edits.
// The core never keeps authoritative note copies across calls.
type Clip interface {
	// NotesInRange returns notes whose start falls in [from, from+span)
	// with pitch in [pitchLo, pitchHi], ordered by start then pitch.
	NotesInRange(pitchLo, pitchHi uint8, from, span float64) []Note

	AddNotes(notes []Note) error

	// RemoveNotes deletes notes whose start falls in [from, from+span)
	// with pitch in [pitchLo, pitchHi].
	RemoveNotes(pitchLo, pitchHi uint8, from, span float64) error

	// SetNoteVelocity rewrites the velocity of the note identified by
	// (pitch, start), leaving timing and duration untouched.
	SetNoteVelocity(pitch uint8, start float64, velocity uint8) error

	LoopBounds() (start, end float64)

	// SetLoopBounds moves loop end and the clip end marker together so
	// the two never diverge.
	SetLoopBounds(start, end float64) error

	BarLength() float64

	// PlayingPosition is the playhead position in clip beat time.
	PlayingPosition() (float64, error)

	// IsPlaying reports whether this clip is the track's playing clip.
	IsPlaying() bool
}

// Transport is the host's global play state.
type Transport interface {
	IsPlaying() bool
}

// ButtonHandle is one addressable pad LED.
type ButtonHandle interface {
	SetColor(token skin.Token)
}

// Grid is a rectangle of buttons. Implementations are expected to
// tolerate repeated SetColor calls with the same token cheaply.
type Grid interface {
	Width() int
	Height() int
	// Button returns the handle at (col, row), row 0 at the top.
	// ok is false for coordinates with no mapped button.
	Button(col, row int) (ButtonHandle, bool)
}
