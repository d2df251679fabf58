package host

import (
	"math"
	"sort"
	"sync"
	"time"
)

// MemTransport is a wall-clock beat counter standing in for the host
// transport. All reads happen on the scheduler goroutine; the mutex
// only guards against the TUI reading tempo concurrently.
type MemTransport struct {
	mu      sync.Mutex
	playing bool
	t0      time.Time
	bpm     float64
}

func NewMemTransport(bpm float64) *MemTransport {
	if bpm <= 0 {
		bpm = 120
	}
	return &MemTransport{bpm: bpm}
}

func (t *MemTransport) IsPlaying() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.playing
}

// Play starts the beat clock from zero.
func (t *MemTransport) Play() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.playing {
		t.playing = true
		t.t0 = time.Now()
	}
}

func (t *MemTransport) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.playing = false
}

func (t *MemTransport) Tempo() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bpm
}

func (t *MemTransport) SetTempo(bpm float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if bpm < 20 {
		bpm = 20
	}
	if bpm > 300 {
		bpm = 300
	}
	t.bpm = bpm
}

// SongBeats returns beats elapsed since Play.
func (t *MemTransport) SongBeats() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.playing {
		return 0
	}
	return time.Since(t.t0).Minutes() * t.bpm
}

// MemClip is the in-memory clip: a sorted note list plus loop bounds.
// It satisfies Clip for both the standalone runtime and the tests.
type MemClip struct {
	transport *MemTransport

	notes     []Note
	loopStart float64
	loopEnd   float64
	endMarker float64
	barLength float64
	playing   bool

	playListeners []func()
}

// NewMemClip creates a clip of the given length in beats, snapped up to
// a whole number of bars (minimum one bar).
func NewMemClip(transport *MemTransport, lengthBeats float64) *MemClip {
	c := &MemClip{
		transport: transport,
		barLength: 4.0,
	}
	if lengthBeats < c.barLength {
		lengthBeats = c.barLength
	}
	bars := math.Ceil(lengthBeats / c.barLength)
	c.loopEnd = bars * c.barLength
	c.endMarker = c.loopEnd
	return c
}

func (c *MemClip) NotesInRange(pitchLo, pitchHi uint8, from, span float64) []Note {
	var out []Note
	for _, n := range c.notes {
		if n.Pitch < pitchLo || n.Pitch > pitchHi {
			continue
		}
		if n.Start >= from && n.Start < from+span {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].Pitch < out[j].Pitch
	})
	return out
}

func (c *MemClip) AddNotes(notes []Note) error {
	c.notes = append(c.notes, notes...)
	sort.Slice(c.notes, func(i, j int) bool {
		if c.notes[i].Start != c.notes[j].Start {
			return c.notes[i].Start < c.notes[j].Start
		}
		return c.notes[i].Pitch < c.notes[j].Pitch
	})
	return nil
}

func (c *MemClip) RemoveNotes(pitchLo, pitchHi uint8, from, span float64) error {
	kept := c.notes[:0]
	for _, n := range c.notes {
		drop := n.Pitch >= pitchLo && n.Pitch <= pitchHi &&
			n.Start >= from && n.Start < from+span
		if !drop {
			kept = append(kept, n)
		}
	}
	c.notes = kept
	return nil
}

func (c *MemClip) SetNoteVelocity(pitch uint8, start float64, velocity uint8) error {
	for i := range c.notes {
		if c.notes[i].Pitch == pitch && c.notes[i].Start == start {
			c.notes[i].Velocity = velocity
			return nil
		}
	}
	return nil
}

func (c *MemClip) LoopBounds() (start, end float64) {
	return c.loopStart, c.loopEnd
}

func (c *MemClip) SetLoopBounds(start, end float64) error {
	c.loopStart = start
	c.loopEnd = end
	c.endMarker = end // end marker tracks loop end, always
	return nil
}

func (c *MemClip) EndMarker() float64 {
	return c.endMarker
}

func (c *MemClip) BarLength() float64 {
	return c.barLength
}

func (c *MemClip) PlayingPosition() (float64, error) {
	if !c.playing || c.transport == nil {
		return 0, ErrNoClip
	}
	length := c.loopEnd - c.loopStart
	if length <= 0 {
		return c.loopStart, nil
	}
	return c.loopStart + math.Mod(c.transport.SongBeats(), length), nil
}

func (c *MemClip) IsPlaying() bool {
	return c.playing
}

// Fire starts the clip playing (and the transport with it, matching a
// session clip launch).
func (c *MemClip) Fire() {
	if c.transport != nil {
		c.transport.Play()
	}
	if !c.playing {
		c.playing = true
		c.notifyPlaying()
	}
}

func (c *MemClip) StopPlaying() {
	if c.playing {
		c.playing = false
		c.notifyPlaying()
	}
}

// ObservePlaying registers a playing-status listener and returns its
// unsubscribe func. Used by the target component, which re-registers
// on every clip change.
func (c *MemClip) ObservePlaying(fn func()) (unsubscribe func()) {
	c.playListeners = append(c.playListeners, fn)
	idx := len(c.playListeners) - 1
	return func() {
		c.playListeners[idx] = nil
	}
}

func (c *MemClip) notifyPlaying() {
	for _, fn := range c.playListeners {
		if fn != nil {
			fn()
		}
	}
}

// AllNotes returns a copy of every note, for the TUI mirror.
func (c *MemClip) AllNotes() []Note {
	out := make([]Note, len(c.notes))
	copy(out, c.notes)
	return out
}

// Clone deep-copies the clip, sharing the transport. Used by clip
// variant duplication.
func (c *MemClip) Clone() *MemClip {
	dup := &MemClip{
		transport: c.transport,
		loopStart: c.loopStart,
		loopEnd:   c.loopEnd,
		endMarker: c.endMarker,
		barLength: c.barLength,
	}
	dup.notes = append(dup.notes, c.notes...)
	return dup
}
