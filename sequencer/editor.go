package sequencer

import (
	"math"

	"apcstep/debug"
	"apcstep/host"
	"apcstep/skin"
)

// StepEditor converts step-pad presses into note edits on the bound
// clip. A release on a step either adds notes (empty window), rewrites
// their velocity (window holds notes at a different velocity), or
// deletes them (same velocity - a toggle). All operations are no-ops
// while no clip is bound.
type StepEditor struct {
	page     *Page
	velocity *VelocityProvider
	pitches  *PitchSelection
	loop     *LoopBoundaryManager
	clip     func() host.Clip
	grid     host.Grid

	// doubleTime reports whether the double-time modifier is held; an
	// add then writes two back-to-back half-length notes per pitch.
	doubleTime func() bool

	active []bool
}

func NewStepEditor(page *Page, velocity *VelocityProvider, pitches *PitchSelection,
	loop *LoopBoundaryManager, clip func() host.Clip, grid host.Grid, doubleTime func() bool) *StepEditor {
	e := &StepEditor{
		page:       page,
		velocity:   velocity,
		pitches:    pitches,
		loop:       loop,
		clip:       clip,
		grid:       grid,
		doubleTime: doubleTime,
		active:     make([]bool, page.Steps()),
	}
	// Anything that changes how steps should look triggers a full-page
	// redraw: neighboring step colors depend on provider state.
	velocity.OnChange(e.RedrawAll)
	pitches.OnChange(e.RedrawAll)
	page.OnChange(e.RedrawAll)
	return e
}

// OnStepPress marks the step as held. The edit happens on release.
func (e *StepEditor) OnStepPress(index int) {
	if index < 0 || index >= len(e.active) {
		debug.Log("editor", "press on unmapped step %d", index)
		return
	}
	e.active[index] = true
}

// OnStepRelease runs the edit decision for a held step. A release
// without a prior press is ignored (stale releases arrive after page
// or mode switches).
func (e *StepEditor) OnStepRelease(index int) {
	if index < 0 || index >= len(e.active) || !e.active[index] {
		return
	}
	e.active[index] = false

	clip := e.clip()
	if clip == nil {
		debug.Log("editor", "step %d released with no clip - ignored", index)
		return
	}

	if err := e.editStep(clip, index); err != nil {
		debug.Log("editor", "step %d edit failed: %v", index, err)
		return
	}
	e.RedrawAll()
}

func (e *StepEditor) editStep(clip host.Clip, index int) error {
	time := e.page.StepTime(index)
	span := e.page.StepLength()
	existing := e.notesInWindow(clip, time, span)

	if len(existing) == 0 {
		return e.addNotes(clip, time, span)
	}

	current := e.velocity.Velocity()
	if existing[0].Velocity == current {
		// Toggle off: delete everything in the window, then pull in
		// any trailing bars that just emptied.
		for _, pitch := range e.pitches.Pitches() {
			if err := clip.RemoveNotes(pitch, pitch, time, span); err != nil {
				return err
			}
		}
		debug.Log("editor", "step %d deleted (velocity %d matched)", index, current)
		return e.loop.Contract()
	}

	// Velocity differs: rewrite in place, timing untouched.
	for _, n := range existing {
		if err := clip.SetNoteVelocity(n.Pitch, n.Start, current); err != nil {
			return err
		}
	}
	debug.Log("editor", "step %d velocity %d -> %d (%d notes)", index, existing[0].Velocity, current, len(existing))
	return nil
}

// addNotes writes new notes for every target pitch, extending the loop
// first if the write lands past its end. The whole write is issued as
// one AddNotes call.
func (e *StepEditor) addNotes(clip host.Clip, time, span float64) error {
	velocity := e.velocity.Velocity()
	noteEnd := time + span
	if _, err := e.loop.ExtendTo(noteEnd); err != nil {
		return err
	}

	var notes []host.Note
	if e.doubleTime != nil && e.doubleTime() {
		half := span / 2
		for _, pitch := range e.pitches.Pitches() {
			notes = append(notes,
				host.Note{Pitch: pitch, Start: time, Duration: half, Velocity: velocity},
				host.Note{Pitch: pitch, Start: time + half, Duration: half, Velocity: velocity},
			)
		}
	} else {
		for _, pitch := range e.pitches.Pitches() {
			notes = append(notes, host.Note{Pitch: pitch, Start: time, Duration: span, Velocity: velocity})
		}
	}
	if err := clip.AddNotes(notes); err != nil {
		return err
	}
	debug.Log("editor", "added %d note(s) at %.3f vel=%d", len(notes), time, velocity)
	return nil
}

// notesInWindow collects notes starting inside [time, time+span) at
// the target pitches, ordered by start then pitch.
func (e *StepEditor) notesInWindow(clip host.Clip, time, span float64) []host.Note {
	var out []host.Note
	for _, pitch := range e.pitches.Pitches() {
		out = append(out, clip.NotesInRange(pitch, pitch, time, span)...)
	}
	// Per-pitch queries come back sorted; a simple merge keeps the
	// "first note" deterministic under polyphony.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && less(out[j], out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func less(a, b host.Note) bool {
	if a.Start != b.Start {
		return a.Start < b.Start
	}
	return a.Pitch < b.Pitch
}

// StepColor computes the token for one step from clip content. The
// playhead tracker uses this to restore a cell it vacates.
func (e *StepEditor) StepColor(index int) skin.Token {
	clip := e.clip()
	if clip == nil {
		return skin.StepOutOfLoop
	}
	time := e.page.StepTime(index)
	span := e.page.StepLength()
	notes := e.notesInWindow(clip, time, span)

	if len(notes) == 0 {
		_, loopEnd := clip.LoopBounds()
		if time < loopEnd {
			return skin.StepEmpty
		}
		return skin.StepOutOfLoop
	}

	// Two half-length notes filling the window is the double-time
	// shape and gets its own color.
	if len(notes) >= 2 {
		half := span / 2
		if math.Abs(notes[0].Duration-half) < 0.01 && math.Abs(notes[1].Duration-half) < 0.01 {
			return skin.StepDoubleTime
		}
	}

	switch v := notes[0].Velocity; {
	case v >= AccentVelocity:
		return skin.StepAccent
	case v <= SoftVelocity:
		return skin.StepSoft
	default:
		return skin.StepNormal
	}
}

// RedrawAll repaints every visible step.
func (e *StepEditor) RedrawAll() {
	for i := 0; i < e.page.Steps(); i++ {
		e.drawStep(i)
	}
}

func (e *StepEditor) drawStep(index int) {
	col := index % e.page.Width
	row := index / e.page.Width
	btn, ok := e.grid.Button(col, row)
	if !ok {
		debug.Log("editor", "no button for step %d (%d,%d)", index, col, row)
		return
	}
	btn.SetColor(e.StepColor(index))
}

// DrawStep repaints a single step cell.
func (e *StepEditor) DrawStep(index int) {
	if index >= 0 && index < e.page.Steps() {
		e.drawStep(index)
	}
}
