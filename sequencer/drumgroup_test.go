package sequencer

import (
	"testing"

	"apcstep/host"
	"apcstep/skin"
)

type drumFixture struct {
	song    *host.Song
	target  *TargetTrack
	pitches *PitchSelection
	grid    *host.MemGrid
	group   *DrumGroup
	played  []uint8
}

func newDrumFixture() *drumFixture {
	f := &drumFixture{
		song:    newSong(1, 4),
		pitches: NewPitchSelection(),
		grid:    host.NewMemGrid(4, 4),
	}
	f.song.Track(0).CreateClip(0, f.song.Transport, 4)
	f.target = NewTargetTrack(f.song)
	f.group = NewDrumGroup(f.target, f.pitches, f.grid, func(note, velocity uint8) {
		f.played = append(f.played, note)
	})
	return f
}

func TestDrumPadIndexBottomLeftOrigin(t *testing.T) {
	f := newDrumFixture()
	tests := []struct {
		col, row int
		want     int
	}{
		{0, 3, 0},  // bottom-left
		{3, 3, 3},  // bottom-right
		{0, 0, 12}, // top-left
		{3, 0, 15}, // top-right
		{1, 2, 5},
	}
	for _, tt := range tests {
		if got := f.group.padIndex(tt.col, tt.row); got != tt.want {
			t.Errorf("padIndex(%d,%d) = %d, want %d", tt.col, tt.row, got, tt.want)
		}
	}
	if got := f.group.padIndex(4, 0); got != -1 {
		t.Errorf("out-of-zone padIndex = %d, want -1", got)
	}
}

func TestDrumSelectionSetsPitch(t *testing.T) {
	f := newDrumFixture()
	kit := f.song.Track(0).Kit

	// Bottom-left pad is the kick by construction.
	f.group.OnPadPress(0, 3, 127)
	if got := f.pitches.Pitches(); len(got) != 1 || got[0] != kit.Pads[0].Note {
		t.Errorf("pitches = %v, want [%d]", got, kit.Pads[0].Note)
	}
	if f.group.SelectedPad() != 0 {
		t.Errorf("SelectedPad() = %d, want 0", f.group.SelectedPad())
	}

	// Pad 5 selects its note.
	f.group.OnPadPress(1, 2, 127)
	if got := f.pitches.Pitches(); got[0] != kit.Pads[5].Note {
		t.Errorf("pitches = %v, want [%d]", got, kit.Pads[5].Note)
	}

	// Selection mode never triggers sounds.
	if len(f.played) != 0 {
		t.Errorf("selection mode played notes: %v", f.played)
	}
}

func TestDrumPlayableMode(t *testing.T) {
	f := newDrumFixture()
	kit := f.song.Track(0).Kit
	f.group.SetSelectionOnly(false)

	before := f.pitches.Pitches()[0]
	f.group.OnPadPress(1, 3, 100)

	if len(f.played) != 1 || f.played[0] != kit.Pads[1].Note {
		t.Errorf("played = %v, want [%d]", f.played, kit.Pads[1].Note)
	}
	if f.pitches.Pitches()[0] != before {
		t.Error("playable mode changed the pitch selection")
	}
}

func TestDrumRedrawTokens(t *testing.T) {
	f := newDrumFixture()
	clip := f.target.MemClip()
	kit := f.song.Track(0).Kit

	// Pad 1 (snare) gets a note in the loop.
	clip.AddNotes([]host.Note{{Pitch: kit.Pads[1].Note, Start: 0, Duration: 0.25, Velocity: 100}})
	f.group.Redraw()

	if got := f.grid.Token(0, 3); got != skin.PadSelected {
		t.Errorf("selected pad = %v, want %v", got, skin.PadSelected)
	}
	if got := f.grid.Token(1, 3); got != skin.PadFilled {
		t.Errorf("pad with notes = %v, want %v", got, skin.PadFilled)
	}
	if got := f.grid.Token(2, 3); got != skin.PadEmpty {
		t.Errorf("empty pad = %v, want %v", got, skin.PadEmpty)
	}

	f.group.SetSelectionOnly(false)
	if got := f.grid.Token(2, 3); got != skin.PadPlayable {
		t.Errorf("playable pad = %v, want %v", got, skin.PadPlayable)
	}
}
