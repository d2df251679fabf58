package sequencer

import (
	"apcstep/debug"
	"apcstep/host"
	"apcstep/skin"
)

// DrumGroup is the 4x4 pad-selector zone. In selection-only mode a pad
// press picks the pitch the step editor targets; in playable mode it
// triggers the kit sound instead. Pad order is bottom-left origin,
// matching how drum racks lay out their pads.
type DrumGroup struct {
	target  *TargetTrack
	pitches *PitchSelection
	grid    host.Grid

	selectionOnly bool
	selected      int // pad index 0-15, bottom-left origin

	// playNote sends a preview note in playable mode; nil disables.
	playNote func(note uint8, velocity uint8)
}

func NewDrumGroup(target *TargetTrack, pitches *PitchSelection, grid host.Grid, playNote func(uint8, uint8)) *DrumGroup {
	g := &DrumGroup{
		target:        target,
		pitches:       pitches,
		grid:          grid,
		selectionOnly: true,
		playNote:      playNote,
	}
	g.syncSelection()
	return g
}

// SetSelectionOnly switches between selecting and playing pads.
func (g *DrumGroup) SetSelectionOnly(enabled bool) {
	if g.selectionOnly == enabled {
		return
	}
	g.selectionOnly = enabled
	debug.Log("drumgroup", "selection-only=%v", enabled)
	g.Redraw()
}

func (g *DrumGroup) SelectionOnly() bool {
	return g.selectionOnly
}

// SelectedPad returns the selected pad index (bottom-left origin).
func (g *DrumGroup) SelectedPad() int {
	return g.selected
}

// OnPadPress handles a pad in grid coordinates (row 0 at top).
func (g *DrumGroup) OnPadPress(col, row int, velocity uint8) {
	pad := g.padIndex(col, row)
	if pad < 0 {
		debug.Log("drumgroup", "unmapped pad (%d,%d)", col, row)
		return
	}
	kit := g.kit()
	if kit == nil {
		debug.Log("drumgroup", "pad %d pressed with no kit", pad)
		return
	}

	if g.selectionOnly {
		g.selected = pad
		g.pitches.SetPitch(kit.Pads[pad].Note)
		debug.Log("drumgroup", "selected pad %d (%s, note %d)", pad, kit.Pads[pad].Name, kit.Pads[pad].Note)
		g.Redraw()
		return
	}

	if g.playNote != nil {
		g.playNote(kit.Pads[pad].Note, velocity)
	}
}

// syncSelection pushes the current pad's pitch into the selection,
// used after a target change when the kit may differ.
func (g *DrumGroup) syncSelection() {
	if kit := g.kit(); kit != nil {
		g.pitches.SetPitch(kit.Pads[g.selected].Note)
	}
}

// OnTargetChanged re-derives the pitch from the (possibly new) kit.
func (g *DrumGroup) OnTargetChanged() {
	g.syncSelection()
	g.Redraw()
}

func (g *DrumGroup) kit() *host.Kit {
	track := g.target.Track()
	if track == nil {
		return nil
	}
	return track.Kit
}

// padIndex maps grid coordinates to a pad index, bottom row first.
func (g *DrumGroup) padIndex(col, row int) int {
	if col < 0 || col >= 4 || row < 0 || row >= 4 {
		return -1
	}
	return (3-row)*4 + col
}

// Redraw paints all sixteen pads: selected white, pads with notes in
// the clip filled, the rest dim. Playable mode gets its own color so
// the mode is visible at a glance.
func (g *DrumGroup) Redraw() {
	kit := g.kit()
	clip := g.target.Clip()
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			btn, ok := g.grid.Button(col, row)
			if !ok {
				continue
			}
			pad := g.padIndex(col, row)
			token := skin.PadEmpty
			switch {
			case kit == nil:
				token = skin.Off
			case g.selectionOnly && pad == g.selected:
				token = skin.PadSelected
			case !g.selectionOnly:
				token = skin.PadPlayable
			case clip != nil && padHasNotes(clip, kit.Pads[pad].Note):
				token = skin.PadFilled
			}
			btn.SetColor(token)
		}
	}
}

func padHasNotes(clip host.Clip, note uint8) bool {
	_, end := clip.LoopBounds()
	return len(clip.NotesInRange(note, note, 0, end)) > 0
}
