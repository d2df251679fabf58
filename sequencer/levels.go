package sequencer

import (
	"apcstep/debug"
	"apcstep/host"
)

// Levels maps the eight faders onto per-pad levels of the targeted
// kit. The offset cycles between the lower eight pads and the upper
// eight, since there are sixteen pads and eight faders.
type Levels struct {
	target *TargetTrack
	offset int // 0 = pads 0-7, 8 = pads 8-15
}

func NewLevels(target *TargetTrack) *Levels {
	return &Levels{target: target}
}

// OnFader applies a 7-bit fader value to the mapped pad. Faders with
// no mapped pad are ignored.
func (l *Levels) OnFader(index int, value uint8) {
	if index < 0 || index >= 8 {
		return
	}
	kit := l.kit()
	if kit == nil {
		return
	}
	pad := l.offset + index
	level := float64(value) / 127.0
	if kit.SetPadLevel(pad, level) {
		debug.Log("levels", "pad %d level=%.2f", pad, level)
	}
}

// CycleOffset flips between the lower and upper pad rows.
func (l *Levels) CycleOffset() {
	if l.offset == 0 {
		l.offset = 8
	} else {
		l.offset = 0
	}
	debug.Log("levels", "fader offset=%d", l.offset)
}

func (l *Levels) Offset() int {
	return l.offset
}

// PadLevel reads back the level a fader currently addresses.
func (l *Levels) PadLevel(index int) (float64, bool) {
	kit := l.kit()
	if kit == nil || index < 0 || index >= 8 {
		return 0, false
	}
	return kit.PadLevel(l.offset + index)
}

func (l *Levels) kit() *host.Kit {
	track := l.target.Track()
	if track == nil {
		return nil
	}
	return track.Kit
}
