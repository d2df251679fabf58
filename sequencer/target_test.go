package sequencer

import (
	"testing"

	"apcstep/host"
)

func newSong(numTracks, numSlots int) *host.Song {
	transport := host.NewMemTransport(120)
	tracks := make([]*host.Track, numTracks)
	for i := range tracks {
		tracks[i] = host.NewTrack("Track", numSlots)
	}
	return host.NewSong(transport, tracks...)
}

func TestTargetNoClip(t *testing.T) {
	song := newSong(1, 4)
	target := NewTargetTrack(song)

	if target.Clip() != nil {
		t.Error("Clip() != nil with an empty track")
	}
	if target.Track() != song.Track(0) {
		t.Error("Track() does not follow the selected track")
	}
}

func TestTargetSelectedScenePriority(t *testing.T) {
	song := newSong(1, 4)
	track := song.Track(0)
	slot0, _ := track.CreateClip(0, song.Transport, 4)
	slot1, _ := track.CreateClip(1, song.Transport, 4)
	slot1.Fire()

	target := NewTargetTrack(song)

	// Selected scene 0: its clip wins even though slot 1 plays.
	if target.MemClip() != slot0 {
		t.Errorf("target = %p, want selected-scene clip %p", target.MemClip(), slot0)
	}

	// An empty selected slot falls back to the playing clip.
	song.SetSelectedScene(2)
	if target.MemClip() != slot1 {
		t.Errorf("target = %p, want playing clip %p", target.MemClip(), slot1)
	}

	// Selecting the playing slot directly also binds it.
	song.SetSelectedScene(1)
	if target.MemClip() != slot1 {
		t.Errorf("target = %p, want %p", target.MemClip(), slot1)
	}
}

func TestTargetNotifiesOnChange(t *testing.T) {
	song := newSong(1, 4)
	track := song.Track(0)
	track.CreateClip(0, song.Transport, 4)
	track.CreateClip(1, song.Transport, 4)

	target := NewTargetTrack(song)
	var fired int
	target.OnChange(func() { fired++ })

	song.SetSelectedScene(1)
	if fired != 1 {
		t.Errorf("fired = %d after scene change, want 1", fired)
	}

	// Re-selecting the same clip is not a change.
	target.Retarget()
	if fired != 1 {
		t.Errorf("fired = %d after no-op retarget, want 1", fired)
	}
}

// The playing-status observer must follow the bound clip: the old
// clip's flips go quiet, the new clip's flips notify.
func TestTargetObserverSwap(t *testing.T) {
	song := newSong(1, 4)
	track := song.Track(0)
	slot0, _ := track.CreateClip(0, song.Transport, 4)
	slot1, _ := track.CreateClip(1, song.Transport, 4)

	target := NewTargetTrack(song)
	var fired int
	target.OnChange(func() { fired++ })

	song.SetSelectedScene(1) // rebind: fired = 1
	base := fired

	slot0.Fire() // old clip: no longer observed
	if fired != base {
		t.Errorf("old clip flip notified: fired = %d, want %d", fired, base)
	}

	slot1.Fire() // bound clip: observed
	if fired != base+1 {
		t.Errorf("bound clip flip: fired = %d, want %d", fired, base+1)
	}
}

func TestTargetLock(t *testing.T) {
	song := newSong(2, 4)
	song.Track(0).CreateClip(0, song.Transport, 4)
	song.Track(1).CreateClip(0, song.Transport, 4)

	target := NewTargetTrack(song)
	target.SetLocked(true)

	song.SetSelectedTrack(1)
	if target.Track() != song.Track(0) {
		t.Error("locked target followed the track selection")
	}

	target.SetLocked(false)
	if target.Track() != song.Track(1) {
		t.Error("unlocked target did not catch up with the selection")
	}
}
