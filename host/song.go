package host

import "fmt"

// Kit is the drum instrument bound to a track: sixteen pads, each with
// a MIDI note, a name and a level.
type Kit struct {
	Pads [16]KitPad
}

type KitPad struct {
	Note  uint8
	Name  string
	Level float64 // 0..1
}

// NewGMKit returns a kit with the usual General MIDI drum assignments.
func NewGMKit() *Kit {
	names := []string{
		"Kick", "Snare", "Closed HH", "Open HH",
		"Low Tom", "Mid Tom", "High Tom", "Crash",
		"Ride", "Clap", "Cowbell", "Clave",
		"Tambourine", "Cabasa", "Maracas", "Rimshot",
	}
	notes := []uint8{
		36, 38, 42, 46, 41, 43, 45, 49,
		51, 39, 56, 75, 54, 69, 70, 37,
	}
	k := &Kit{}
	for i := range k.Pads {
		k.Pads[i] = KitPad{Note: notes[i], Name: names[i], Level: 0.85}
	}
	return k
}

// PadLevel returns the level of pad i, or false for an invalid index.
func (k *Kit) PadLevel(i int) (float64, bool) {
	if i < 0 || i >= len(k.Pads) {
		return 0, false
	}
	return k.Pads[i].Level, true
}

func (k *Kit) SetPadLevel(i int, level float64) bool {
	if i < 0 || i >= len(k.Pads) {
		return false
	}
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	k.Pads[i].Level = level
	return true
}

// ClipSlot is one session slot on a track.
type ClipSlot struct {
	clip *MemClip
}

func (s *ClipSlot) HasClip() bool {
	return s != nil && s.clip != nil
}

func (s *ClipSlot) Clip() *MemClip {
	if s == nil {
		return nil
	}
	return s.clip
}

// Track owns a column of clip slots and a kit.
type Track struct {
	Name  string
	Kit   *Kit
	slots []*ClipSlot
}

func NewTrack(name string, numSlots int) *Track {
	t := &Track{Name: name, Kit: NewGMKit()}
	for i := 0; i < numSlots; i++ {
		t.slots = append(t.slots, &ClipSlot{})
	}
	return t
}

func (t *Track) NumSlots() int {
	return len(t.slots)
}

func (t *Track) Slot(i int) *ClipSlot {
	if i < 0 || i >= len(t.slots) {
		return nil
	}
	return t.slots[i]
}

// CreateClip puts a fresh clip of the given beat length into slot i.
func (t *Track) CreateClip(i int, transport *MemTransport, lengthBeats float64) (*MemClip, error) {
	slot := t.Slot(i)
	if slot == nil {
		return nil, fmt.Errorf("no clip slot %d", i)
	}
	if slot.HasClip() {
		return nil, fmt.Errorf("slot %d already has a clip", i)
	}
	slot.clip = NewMemClip(transport, lengthBeats)
	return slot.clip, nil
}

// DuplicateSlot copies the clip in slot src into the next empty slot
// after it and returns the destination index.
func (t *Track) DuplicateSlot(src int) (int, error) {
	slot := t.Slot(src)
	if slot == nil || !slot.HasClip() {
		return -1, fmt.Errorf("slot %d has no clip to duplicate", src)
	}
	for i := src + 1; i < len(t.slots); i++ {
		if !t.slots[i].HasClip() {
			t.slots[i].clip = slot.clip.Clone()
			return i, nil
		}
	}
	return -1, fmt.Errorf("no empty slot after %d", src)
}

// PlayingSlotIndex returns the index of the track's playing clip, or
// -1 when nothing on this track plays.
func (t *Track) PlayingSlotIndex() int {
	for i, s := range t.slots {
		if s.HasClip() && s.clip.IsPlaying() {
			return i
		}
	}
	return -1
}

// Song is the minimal document: tracks, a selected scene and a
// selected track, with change notification for both.
type Song struct {
	Transport *MemTransport

	tracks        []*Track
	selectedScene int
	selectedTrack int

	sceneListeners []func()
	trackListeners []func()
}

func NewSong(transport *MemTransport, tracks ...*Track) *Song {
	return &Song{Transport: transport, tracks: tracks}
}

func (s *Song) NumTracks() int {
	return len(s.tracks)
}

func (s *Song) Track(i int) *Track {
	if i < 0 || i >= len(s.tracks) {
		return nil
	}
	return s.tracks[i]
}

func (s *Song) SelectedTrack() *Track {
	return s.Track(s.selectedTrack)
}

func (s *Song) SelectedScene() int {
	return s.selectedScene
}

func (s *Song) SetSelectedScene(i int) {
	if i < 0 {
		i = 0
	}
	if i == s.selectedScene {
		return
	}
	s.selectedScene = i
	for _, fn := range s.sceneListeners {
		if fn != nil {
			fn()
		}
	}
}

func (s *Song) SetSelectedTrack(i int) {
	if i < 0 || i >= len(s.tracks) || i == s.selectedTrack {
		return
	}
	s.selectedTrack = i
	for _, fn := range s.trackListeners {
		if fn != nil {
			fn()
		}
	}
}

func (s *Song) ObserveSelectedScene(fn func()) (unsubscribe func()) {
	s.sceneListeners = append(s.sceneListeners, fn)
	idx := len(s.sceneListeners) - 1
	return func() { s.sceneListeners[idx] = nil }
}

func (s *Song) ObserveSelectedTrack(fn func()) (unsubscribe func()) {
	s.trackListeners = append(s.trackListeners, fn)
	idx := len(s.trackListeners) - 1
	return func() { s.trackListeners[idx] = nil }
}
