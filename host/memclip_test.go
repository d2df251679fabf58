package host

import (
	"errors"
	"testing"
)

func TestNewMemClipSnapsToWholeBars(t *testing.T) {
	tests := []struct {
		name   string
		length float64
		want   float64
	}{
		{"one bar", 4, 4},
		{"partial bar rounds up", 5, 8},
		{"below minimum", 0.5, 4},
		{"two bars exact", 8, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewMemClip(NewMemTransport(120), tt.length)
			if _, end := c.LoopBounds(); end != tt.want {
				t.Errorf("loop end = %v, want %v", end, tt.want)
			}
			if c.EndMarker() != tt.want {
				t.Errorf("end marker = %v, want %v", c.EndMarker(), tt.want)
			}
		})
	}
}

func TestNotesInRangeFiltersAndSorts(t *testing.T) {
	c := NewMemClip(NewMemTransport(120), 4)
	c.AddNotes([]Note{
		{Pitch: 38, Start: 1.0, Duration: 0.25, Velocity: 100},
		{Pitch: 36, Start: 1.0, Duration: 0.25, Velocity: 100},
		{Pitch: 36, Start: 0.5, Duration: 0.25, Velocity: 100},
		{Pitch: 42, Start: 3.0, Duration: 0.25, Velocity: 100},
	})

	got := c.NotesInRange(36, 38, 0.5, 1.0)
	if len(got) != 3 {
		t.Fatalf("got %d notes, want 3", len(got))
	}
	// Ordered by start, then pitch.
	if got[0].Start != 0.5 || got[1].Pitch != 36 || got[2].Pitch != 38 {
		t.Errorf("order = %+v", got)
	}

	// Window end is exclusive.
	if got := c.NotesInRange(36, 36, 0, 0.5); len(got) != 0 {
		t.Errorf("exclusive end violated: %+v", got)
	}
}

func TestRemoveNotesWindow(t *testing.T) {
	c := NewMemClip(NewMemTransport(120), 4)
	c.AddNotes([]Note{
		{Pitch: 36, Start: 0.0, Duration: 0.25, Velocity: 100},
		{Pitch: 36, Start: 1.0, Duration: 0.25, Velocity: 100},
		{Pitch: 38, Start: 1.0, Duration: 0.25, Velocity: 100},
	})

	c.RemoveNotes(36, 36, 1.0, 0.25)

	got := c.AllNotes()
	if len(got) != 2 {
		t.Fatalf("got %d notes, want 2", len(got))
	}
	for _, n := range got {
		if n.Pitch == 36 && n.Start == 1.0 {
			t.Errorf("targeted note survived: %+v", n)
		}
	}
}

func TestSetNoteVelocity(t *testing.T) {
	c := NewMemClip(NewMemTransport(120), 4)
	c.AddNotes([]Note{{Pitch: 36, Start: 1.25, Duration: 0.25, Velocity: 100}})

	c.SetNoteVelocity(36, 1.25, 127)
	if got := c.AllNotes()[0].Velocity; got != 127 {
		t.Errorf("velocity = %d, want 127", got)
	}
}

func TestSetLoopBoundsMovesEndMarker(t *testing.T) {
	c := NewMemClip(NewMemTransport(120), 4)
	c.SetLoopBounds(0, 12)
	if c.EndMarker() != 12 {
		t.Errorf("end marker = %v, want 12", c.EndMarker())
	}
}

func TestPlayingPosition(t *testing.T) {
	transport := NewMemTransport(120)
	c := NewMemClip(transport, 4)

	if _, err := c.PlayingPosition(); !errors.Is(err, ErrNoClip) {
		t.Errorf("stopped clip error = %v, want ErrNoClip", err)
	}

	c.Fire()
	if !transport.IsPlaying() {
		t.Fatal("Fire did not start the transport")
	}
	pos, err := c.PlayingPosition()
	if err != nil {
		t.Fatalf("PlayingPosition: %v", err)
	}
	if pos < 0 || pos >= 4 {
		t.Errorf("position %v outside loop [0,4)", pos)
	}
}

func TestObservePlayingUnsubscribe(t *testing.T) {
	c := NewMemClip(NewMemTransport(120), 4)
	var fired int
	unsub := c.ObservePlaying(func() { fired++ })

	c.Fire()
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}

	unsub()
	c.StopPlaying()
	if fired != 1 {
		t.Errorf("unsubscribed listener fired: %d", fired)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	c := NewMemClip(NewMemTransport(120), 4)
	c.AddNotes([]Note{{Pitch: 36, Start: 0, Duration: 0.25, Velocity: 100}})
	c.SetLoopBounds(0, 8)

	dup := c.Clone()
	dup.AddNotes([]Note{{Pitch: 38, Start: 1, Duration: 0.25, Velocity: 100}})

	if len(c.AllNotes()) != 1 {
		t.Errorf("source gained notes from clone edit")
	}
	if _, end := dup.LoopBounds(); end != 8 {
		t.Errorf("clone loop end = %v, want 8", end)
	}
	if dup.IsPlaying() {
		t.Error("clone starts playing")
	}
}

func TestTempoClamp(t *testing.T) {
	transport := NewMemTransport(120)
	transport.SetTempo(500)
	if transport.Tempo() != 300 {
		t.Errorf("tempo = %v, want clamp to 300", transport.Tempo())
	}
	transport.SetTempo(5)
	if transport.Tempo() != 20 {
		t.Errorf("tempo = %v, want clamp to 20", transport.Tempo())
	}
}
