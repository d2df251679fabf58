package sequencer

import (
	"fmt"
	"math"

	"apcstep/debug"
	"apcstep/host"
)

// LoopBoundaryManager keeps a clip's loop length in step with its note
// content: extend when a write lands past the loop end, contract when
// trailing bars empty out. Loop end and end marker always move
// together, and loop length stays a whole, positive number of bars.
type LoopBoundaryManager struct {
	clip func() host.Clip
}

func NewLoopBoundaryManager(clip func() host.Clip) *LoopBoundaryManager {
	return &LoopBoundaryManager{clip: clip}
}

// ExtendTo grows the loop in whole bars until noteEnd fits inside it.
// Returns whether the loop moved.
func (l *LoopBoundaryManager) ExtendTo(noteEnd float64) (bool, error) {
	clip := l.clip()
	if clip == nil {
		return false, host.ErrNoClip
	}
	start, end := clip.LoopBounds()
	delta := noteEnd - end
	if delta <= 0 {
		return false, nil
	}
	bar := clip.BarLength()
	bars := math.Floor(delta/bar) + 1
	newEnd := end + bars*bar
	if err := clip.SetLoopBounds(start, newEnd); err != nil {
		return false, fmt.Errorf("extend loop: %w", err)
	}
	debug.Log("loop", "extended %.2f -> %.2f (%g bars)", end, newEnd, bars)
	return true, nil
}

// Contract removes trailing empty bars one at a time, stopping at the
// first bar that holds a note. The loop never drops below one bar, so
// a loop built purely by extension contracts back to exactly one bar
// once cleared.
func (l *LoopBoundaryManager) Contract() error {
	clip := l.clip()
	if clip == nil {
		return host.ErrNoClip
	}
	start, end := clip.LoopBounds()
	bar := clip.BarLength()

	for end-start > bar {
		lastBarStart := end - bar
		if len(clip.NotesInRange(0, 127, lastBarStart, bar)) > 0 {
			break
		}
		newEnd := lastBarStart
		if err := clip.SetLoopBounds(start, newEnd); err != nil {
			return fmt.Errorf("contract loop: %w", err)
		}
		debug.Log("loop", "contracted %.2f -> %.2f (empty bar)", end, newEnd)
		end = newEnd
	}
	return nil
}
