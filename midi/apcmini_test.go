package midi

import (
	"testing"

	"apcstep/skin"
)

func TestDrumNoteMapping(t *testing.T) {
	tests := []struct {
		col, row int
		note     uint8
	}{
		{0, 7, 64},  // bottom-left pad
		{7, 7, 71},  // bottom-right
		{0, 0, 120}, // top-left
		{7, 0, 127}, // top-right
		{2, 4, 90},
	}
	for _, tt := range tests {
		if got := colRowToNote(tt.col, tt.row); got != tt.note {
			t.Errorf("colRowToNote(%d,%d) = %d, want %d", tt.col, tt.row, got, tt.note)
		}
		col, row, ok := noteToColRow(tt.note)
		if !ok || col != tt.col || row != tt.row {
			t.Errorf("noteToColRow(%d) = (%d,%d,%v), want (%d,%d,true)", tt.note, col, row, ok, tt.col, tt.row)
		}
	}
}

func TestDrumNoteMappingRoundTrip(t *testing.T) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			note := colRowToNote(col, row)
			if note < 64 || note > 127 {
				t.Fatalf("note %d for (%d,%d) outside drum range", note, col, row)
			}
			gc, gr, ok := noteToColRow(note)
			if !ok || gc != col || gr != row {
				t.Fatalf("round trip (%d,%d) -> %d -> (%d,%d,%v)", col, row, note, gc, gr, ok)
			}
		}
	}
}

func TestNoteBelowDrumRangeRejected(t *testing.T) {
	if _, _, ok := noteToColRow(63); ok {
		t.Error("note 63 mapped into the drum grid")
	}
}

func TestButtonVelocity(t *testing.T) {
	tests := []struct {
		name  string
		token skin.Token
		want  uint8
	}{
		{"off token", skin.Off, buttonLEDOff},
		{"steady token", skin.PageOn, buttonLEDOn},
		{"pulsing token blinks", skin.PlayOn, buttonLEDBlink},
		{"half brightness still on", skin.PageOff, buttonLEDOn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buttonVelocity(tt.token); got != tt.want {
				t.Errorf("buttonVelocity(%v) = %d, want %d", tt.token, got, tt.want)
			}
		})
	}
}
