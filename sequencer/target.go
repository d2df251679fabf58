package sequencer

import (
	"apcstep/debug"
	"apcstep/host"
)

// TargetTrack resolves which track and clip the surface edits. The
// selected scene's clip wins over the playing clip, so changing scene
// moves the editor even while something else keeps playing. Observers
// on the watched clip are swapped atomically on every retarget: the
// old clip is unsubscribed and the new one subscribed in the same
// update, with no window where both or neither are observed.
type TargetTrack struct {
	song *host.Song

	track *host.Track
	clip  *host.MemClip

	locked      bool
	lockedTrack *host.Track

	unsubPlaying func()
	listeners    []func()
}

func NewTargetTrack(song *host.Song) *TargetTrack {
	t := &TargetTrack{song: song}
	song.ObserveSelectedScene(t.retarget)
	song.ObserveSelectedTrack(t.retarget)
	t.retarget()
	return t
}

// Track returns the targeted track.
func (t *TargetTrack) Track() *host.Track {
	return t.track
}

// Clip returns the target clip as the collaborator interface, nil when
// no clip is bound. Callers must get a true nil interface here, not a
// typed nil.
func (t *TargetTrack) Clip() host.Clip {
	if t.clip == nil {
		return nil
	}
	return t.clip
}

// MemClip returns the concrete target clip for host-side operations
// (fire, clone).
func (t *TargetTrack) MemClip() *host.MemClip {
	return t.clip
}

// SetLocked pins the target to the current track; unlocking follows
// the song's selected track again.
func (t *TargetTrack) SetLocked(locked bool) {
	if t.locked == locked {
		return
	}
	t.locked = locked
	if locked {
		t.lockedTrack = t.track
	} else {
		t.lockedTrack = nil
	}
	t.retarget()
}

func (t *TargetTrack) IsLocked() bool {
	return t.locked
}

// OnChange registers a listener fired when the target clip changes or
// its playing status flips.
func (t *TargetTrack) OnChange(fn func()) {
	t.listeners = append(t.listeners, fn)
}

// Retarget recomputes the target clip. Exposed for host mutations the
// song does not notify about (clip creation in a slot).
func (t *TargetTrack) Retarget() {
	t.retarget()
}

func (t *TargetTrack) retarget() {
	track := t.song.SelectedTrack()
	if t.locked && t.lockedTrack != nil {
		track = t.lockedTrack
	}
	t.track = track

	clip := t.resolveClip(track)
	if clip == t.clip {
		return
	}

	// Swap observers: old clip out, new clip in, same update.
	if t.unsubPlaying != nil {
		t.unsubPlaying()
		t.unsubPlaying = nil
	}
	t.clip = clip
	if clip != nil {
		t.unsubPlaying = clip.ObservePlaying(t.notify)
	}
	debug.Log("target", "clip changed (track=%s, bound=%v)", trackName(track), clip != nil)
	t.notify()
}

// resolveClip prefers the selected scene's clip; only an empty
// selected slot falls back to the track's playing clip.
func (t *TargetTrack) resolveClip(track *host.Track) *host.MemClip {
	if track == nil {
		return nil
	}
	if slot := track.Slot(t.song.SelectedScene()); slot.HasClip() {
		return slot.Clip()
	}
	if i := track.PlayingSlotIndex(); i >= 0 {
		return track.Slot(i).Clip()
	}
	return nil
}

func (t *TargetTrack) notify() {
	for _, fn := range t.listeners {
		fn()
	}
}

func trackName(tr *host.Track) string {
	if tr == nil {
		return "none"
	}
	return tr.Name
}
