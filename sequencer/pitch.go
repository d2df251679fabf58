package sequencer

import "apcstep/debug"

// PitchSelection tracks which pitches the step editor targets. Driven
// by drum pad selection; more than one pitch means polyphonic writes.
type PitchSelection struct {
	pitches   []uint8
	listeners []func()
}

func NewPitchSelection() *PitchSelection {
	return &PitchSelection{pitches: []uint8{36}}
}

// SetPitch replaces the target pitch set. A bare scalar is a
// one-element set. Setting an equal set is a no-op and fires no
// notification - consumers re-render on every change.
func (p *PitchSelection) SetPitch(pitches ...uint8) {
	if len(pitches) == 0 {
		return
	}
	if equalPitches(p.pitches, pitches) {
		return
	}
	debug.Log("pitch", "changed %v -> %v", p.pitches, pitches)
	p.pitches = append([]uint8(nil), pitches...)
	for _, fn := range p.listeners {
		fn()
	}
}

// Pitches returns the current target set.
func (p *PitchSelection) Pitches() []uint8 {
	return p.pitches
}

// IsPolyphonic reports whether more than one pitch is targeted.
func (p *PitchSelection) IsPolyphonic() bool {
	return len(p.pitches) > 1
}

func (p *PitchSelection) OnChange(fn func()) {
	p.listeners = append(p.listeners, fn)
}

func equalPitches(a, b []uint8) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
