package sequencer

import (
	"errors"
	"time"

	"apcstep/debug"
	"apcstep/host"
	"apcstep/sched"
	"apcstep/skin"
)

// PlayheadTracker animates the playing step on the grid. It has two
// states: idle (no polling) and tracking (a repeating scheduler task
// maps the clip position to a page-relative cell). At most one cell is
// highlighted at a time, and leaving tracking always clears it.
type PlayheadTracker struct {
	page      *Page
	editor    *StepEditor
	grid      host.Grid
	transport host.Transport
	clip      func() host.Clip

	task    *sched.Task
	enabled bool
	current int // highlighted step index, -1 when none
}

func NewPlayheadTracker(s *sched.Scheduler, interval time.Duration, page *Page,
	editor *StepEditor, grid host.Grid, transport host.Transport, clip func() host.Clip) *PlayheadTracker {
	p := &PlayheadTracker{
		page:      page,
		editor:    editor,
		grid:      grid,
		transport: transport,
		clip:      clip,
		current:   -1,
	}
	p.task = s.Repeat(interval, p.poll)
	// A killed task must not leave a lit cell behind.
	p.task.SetCleanup(p.clear)
	return p
}

// SetEnabled gates tracking on the component being active (the grid
// may be lent to another mode).
func (p *PlayheadTracker) SetEnabled(enabled bool) {
	p.enabled = enabled
	p.Refresh()
}

// Refresh re-evaluates the tracking conditions. The component calls
// this when the target clip changes or a playing status flips; the
// poll itself also notices conditions going false.
func (p *PlayheadTracker) Refresh() {
	if p.shouldTrack() {
		if !p.task.Running() {
			debug.Log("playhead", "tracking started")
			p.task.Start()
		}
	} else if p.task.Running() {
		debug.Log("playhead", "tracking stopped")
		p.task.Stop() // cleanup clears the drawn cell
	}
}

func (p *PlayheadTracker) shouldTrack() bool {
	if !p.enabled || !p.transport.IsPlaying() {
		return false
	}
	clip := p.clip()
	return clip != nil && clip.IsPlaying()
}

// Tracking reports whether the poll task is live.
func (p *PlayheadTracker) Tracking() bool {
	return p.task.Running()
}

func (p *PlayheadTracker) poll() {
	if !p.shouldTrack() {
		p.task.Stop()
		return
	}
	clip := p.clip()
	pos, err := clip.PlayingPosition()
	if err != nil {
		if !errors.Is(err, host.ErrNoClip) {
			debug.Log("playhead", "position query failed: %v", err)
		}
		// Skip this tick; conditions are re-checked next time.
		return
	}

	step, visible := p.page.StepAt(pos)
	if !visible {
		// Position is on another page: no playhead here, not an error.
		p.setCurrent(-1)
		return
	}
	p.setCurrent(step)
}

// setCurrent moves the highlight: the old cell is restored to its
// note/empty color before the new one lights up.
func (p *PlayheadTracker) setCurrent(step int) {
	if step == p.current {
		return
	}
	if p.current >= 0 {
		p.editor.DrawStep(p.current)
	}
	p.current = step
	if step < 0 {
		return
	}
	col := step % p.page.Width
	row := step / p.page.Width
	if btn, ok := p.grid.Button(col, row); ok {
		btn.SetColor(skin.StepPlayhead)
	}
	debug.LogEvery(16, "playhead", "step=%d", step)
}

func (p *PlayheadTracker) clear() {
	p.setCurrent(-1)
}
