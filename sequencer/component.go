package sequencer

import (
	"time"

	"apcstep/debug"
	"apcstep/host"
	"apcstep/sched"
	"apcstep/skin"
)

// Grid zone geometry on the 8x8 pad surface, row 0 at the top:
// rows 0-3 are the 32 step pads, rows 4-7 cols 0-3 the drum pads,
// rows 4-5 cols 4-7 the control pads.
const (
	GridWidth  = 8
	GridHeight = 8

	StepRows    = 4
	drumZoneRow = 4
)

// Control identifies a control pad, indexed row-major inside the 2x4
// control zone.
type Control int

const (
	CtrlPlay Control = iota
	CtrlModeToggle
	CtrlUp
	CtrlDown
	CtrlAddVariant
	CtrlClearClip
	CtrlAccent
	CtrlSoft
	numControls
)

// Scene button roles (the column of launch buttons beside the grid).
const (
	sceneResolution = iota
	scenePageLeft
	scenePageRight
	sceneDoubleTime
	sceneFaderBank
	sceneLock
)

// DrumStepSequencer is the whole drum-mode surface: step editor,
// drum-pad selector, playhead, control pads and fader levels, all
// bound to the clip the target component resolves.
type DrumStepSequencer struct {
	song      *host.Song
	target    *TargetTrack
	transport host.Transport

	velocity *VelocityProvider
	pitches  *PitchSelection
	page     *Page
	loop     *LoopBoundaryManager
	editor   *StepEditor
	playhead *PlayheadTracker
	drums    *DrumGroup
	levels   *Levels

	grid     host.Grid
	sceneLED func(index int, token skin.Token)

	enabled        bool
	doubleTime     bool
	controlPressed [numControls]bool
	sceneTokens    [8]skin.Token
}

// Options carries the wiring the component cannot derive itself.
type Options struct {
	Song         *host.Song
	Grid         host.Grid // 8x8
	Scheduler    *sched.Scheduler
	PollInterval time.Duration
	// PlayNote previews a kit sound in playable mode; may be nil.
	PlayNote func(note, velocity uint8)
	// SceneLED drives the launch-button LEDs; may be nil.
	SceneLED func(index int, token skin.Token)
	// Velocity levels; zero values keep the defaults.
	NormalVelocity, SoftVelocity, AccentVelocity uint8
}

func New(opts Options) *DrumStepSequencer {
	c := &DrumStepSequencer{
		song:      opts.Song,
		transport: opts.Song.Transport,
		grid:      opts.Grid,
		sceneLED:  opts.SceneLED,
	}

	c.target = NewTargetTrack(opts.Song)
	c.velocity = NewVelocityProvider()
	if opts.NormalVelocity != 0 {
		c.velocity.SetLevels(opts.NormalVelocity, opts.SoftVelocity, opts.AccentVelocity)
	}
	c.pitches = NewPitchSelection()
	c.page = NewPage(GridWidth, StepRows)
	c.loop = NewLoopBoundaryManager(c.target.Clip)

	stepGrid := host.NewSubGrid(opts.Grid, 0, 0, GridWidth, StepRows)
	c.editor = NewStepEditor(c.page, c.velocity, c.pitches, c.loop,
		c.target.Clip, stepGrid, func() bool { return c.doubleTime })

	drumGrid := host.NewSubGrid(opts.Grid, 0, drumZoneRow, 4, 4)
	c.drums = NewDrumGroup(c.target, c.pitches, drumGrid, opts.PlayNote)

	c.levels = NewLevels(c.target)

	poll := opts.PollInterval
	if poll <= 0 {
		poll = 60 * time.Millisecond
	}
	c.playhead = NewPlayheadTracker(opts.Scheduler, poll, c.page, c.editor,
		stepGrid, c.transport, c.target.Clip)

	c.target.OnChange(func() {
		c.drums.OnTargetChanged()
		c.playhead.Refresh()
		if c.enabled {
			c.Redraw()
		}
	})

	return c
}

// SetEnabled activates or deactivates the whole surface, matching the
// host lending the grid to this mode or taking it back.
func (c *DrumStepSequencer) SetEnabled(enabled bool) {
	if c.enabled == enabled {
		return
	}
	c.enabled = enabled
	c.playhead.SetEnabled(enabled)
	if enabled {
		c.Redraw()
	}
	debug.Log("component", "enabled=%v", enabled)
}

// HandlePad routes a grid pad event to its zone. Events arriving while
// disabled are dropped.
func (c *DrumStepSequencer) HandlePad(col, row int, pressed bool, velocity uint8) {
	if !c.enabled {
		return
	}
	switch {
	case row < StepRows:
		index := row*GridWidth + col
		if pressed {
			c.editor.OnStepPress(index)
		} else {
			c.editor.OnStepRelease(index)
		}
	case col < 4:
		if pressed {
			c.drums.OnPadPress(col, row-drumZoneRow, velocity)
		}
	case row < drumZoneRow+2:
		c.handleControl(Control((row-drumZoneRow)*4+(col-4)), pressed)
	default:
		debug.Log("component", "unmapped pad (%d,%d)", col, row)
	}
}

// HandleControl taps a control pad (press then release), used by the
// keyboard frontend where holds make no sense.
func (c *DrumStepSequencer) HandleControl(ctrl Control) {
	if !c.enabled {
		return
	}
	c.handleControl(ctrl, true)
	c.handleControl(ctrl, false)
}

// SetAccentHeld and SetSoftHeld expose the momentary velocity pads as
// toggles for the keyboard frontend.
func (c *DrumStepSequencer) SetAccentHeld(held bool) {
	if c.enabled {
		c.handleControl(CtrlAccent, held)
	}
}

func (c *DrumStepSequencer) SetSoftHeld(held bool) {
	if c.enabled {
		c.handleControl(CtrlSoft, held)
	}
}

func (c *DrumStepSequencer) handleControl(ctrl Control, pressed bool) {
	if ctrl < 0 || ctrl >= numControls {
		return
	}
	c.controlPressed[ctrl] = pressed

	switch ctrl {
	case CtrlPlay:
		if pressed {
			c.togglePlay()
		}
	case CtrlModeToggle:
		if pressed {
			// Button ON means playable, OFF means selection-only.
			c.drums.SetSelectionOnly(!c.drums.SelectionOnly())
		}
	case CtrlUp:
		if pressed {
			c.navigateSlot(-1)
		}
	case CtrlDown:
		if pressed {
			c.navigateSlot(1)
		}
	case CtrlAddVariant:
		if pressed {
			c.addVariant()
		}
	case CtrlClearClip:
		if pressed {
			c.clearClip()
		}
	case CtrlAccent:
		c.velocity.SetAccentPressed(pressed)
	case CtrlSoft:
		c.velocity.SetSoftPressed(pressed)
	}
	c.drawControls()
}

// HandleScene routes a launch-button press.
func (c *DrumStepSequencer) HandleScene(index int, pressed bool) {
	if !c.enabled {
		return
	}
	switch index {
	case sceneResolution:
		if pressed {
			c.page.CycleResolution()
		}
	case scenePageLeft:
		if pressed {
			c.page.Move(-1)
		}
	case scenePageRight:
		if pressed {
			c.page.Move(1)
		}
	case sceneDoubleTime:
		if c.doubleTime != pressed {
			c.doubleTime = pressed
			c.editor.RedrawAll()
		}
	case sceneFaderBank:
		if pressed {
			c.levels.CycleOffset()
		}
	case sceneLock:
		if pressed {
			c.target.SetLocked(!c.target.IsLocked())
		}
	}
	c.drawScenes()
}

// HandleFader routes a track fader to the level component.
func (c *DrumStepSequencer) HandleFader(index int, value uint8) {
	if !c.enabled {
		return
	}
	c.levels.OnFader(index, value)
}

func (c *DrumStepSequencer) togglePlay() {
	clip := c.target.MemClip()
	if clip == nil {
		debug.Log("component", "play pressed with no clip")
		return
	}
	if clip.IsPlaying() {
		clip.StopPlaying()
		if !c.anyClipPlaying() {
			c.song.Transport.Stop()
		}
	} else {
		clip.Fire()
	}
	c.playhead.Refresh()
	c.drawControls()
}

func (c *DrumStepSequencer) anyClipPlaying() bool {
	for i := 0; i < c.song.NumTracks(); i++ {
		if c.song.Track(i).PlayingSlotIndex() >= 0 {
			return true
		}
	}
	return false
}

// navigateSlot moves the selected scene up or down, creating a one-bar
// empty clip when the destination slot is empty.
func (c *DrumStepSequencer) navigateSlot(direction int) {
	track := c.target.Track()
	if track == nil {
		return
	}
	next := c.song.SelectedScene() + direction
	if next < 0 || next >= track.NumSlots() {
		debug.Log("component", "slot navigation out of bounds (%d)", next)
		return
	}
	if !track.Slot(next).HasClip() {
		if _, err := track.CreateClip(next, c.song.Transport, 4); err != nil {
			debug.Log("component", "create clip in slot %d failed: %v", next, err)
			return
		}
		debug.Log("component", "created empty clip in slot %d", next)
	}
	c.song.SetSelectedScene(next)
}

// addVariant duplicates the target clip into the next free slot and
// moves there.
func (c *DrumStepSequencer) addVariant() {
	track := c.target.Track()
	if track == nil || c.target.MemClip() == nil {
		return
	}
	dst, err := track.DuplicateSlot(c.song.SelectedScene())
	if err != nil {
		debug.Log("component", "add variant failed: %v", err)
		return
	}
	debug.Log("component", "variant created in slot %d", dst)
	c.song.SetSelectedScene(dst)
}

// clearClip removes every note, then contracts the loop back down.
func (c *DrumStepSequencer) clearClip() {
	clip := c.target.Clip()
	if clip == nil {
		return
	}
	_, end := clip.LoopBounds()
	if err := clip.RemoveNotes(0, 127, 0, end+clip.BarLength()); err != nil {
		debug.Log("component", "clear clip failed: %v", err)
		return
	}
	if err := c.loop.Contract(); err != nil {
		debug.Log("component", "contract after clear failed: %v", err)
	}
	c.editor.RedrawAll()
	c.drums.Redraw()
}

// Redraw repaints the whole surface.
func (c *DrumStepSequencer) Redraw() {
	c.editor.RedrawAll()
	c.drums.Redraw()
	c.drawControls()
	c.drawScenes()
}

func (c *DrumStepSequencer) drawControls() {
	clip := c.target.MemClip()
	tokens := [numControls]skin.Token{}

	tokens[CtrlPlay] = skin.PlayOff
	if clip != nil && clip.IsPlaying() {
		tokens[CtrlPlay] = skin.PlayOn
	}
	tokens[CtrlModeToggle] = skin.ModeToggleOff
	if !c.drums.SelectionOnly() {
		tokens[CtrlModeToggle] = skin.ModeToggleOn
	}
	tokens[CtrlUp] = directional(c.controlPressed[CtrlUp])
	tokens[CtrlDown] = directional(c.controlPressed[CtrlDown])
	tokens[CtrlAddVariant] = onOff(c.controlPressed[CtrlAddVariant], skin.AddVariantOn, skin.AddVariantOff)
	tokens[CtrlClearClip] = onOff(c.controlPressed[CtrlClearClip], skin.ClearClipOn, skin.ClearClipOff)
	tokens[CtrlAccent] = onOff(c.controlPressed[CtrlAccent], skin.AccentOn, skin.AccentOff)
	tokens[CtrlSoft] = onOff(c.controlPressed[CtrlSoft], skin.SoftOn, skin.SoftOff)

	for i, token := range tokens {
		col := 4 + i%4
		row := drumZoneRow + i/4
		if btn, ok := c.grid.Button(col, row); ok {
			btn.SetColor(token)
		}
	}
}

func (c *DrumStepSequencer) drawScenes() {
	c.setScene(sceneResolution, skin.ResolutionOff)
	c.setScene(scenePageLeft, onOff(c.page.Index() > 0, skin.PageOn, skin.PageOff))
	c.setScene(scenePageRight, skin.PageOff)
	c.setScene(sceneDoubleTime, onOff(c.doubleTime, skin.DoubleTimeOn, skin.DoubleTimeOff))
	c.setScene(sceneFaderBank, onOff(c.levels.Offset() > 0, skin.PageOn, skin.PageOff))
	c.setScene(sceneLock, onOff(c.target.IsLocked(), skin.ModeToggleOn, skin.ModeToggleOff))
}

// setScene records the launch-button color for the terminal mirror and
// forwards it to the hardware LED when one is wired.
func (c *DrumStepSequencer) setScene(index int, token skin.Token) {
	c.sceneTokens[index] = token
	if c.sceneLED != nil {
		c.sceneLED(index, token)
	}
}

func directional(pressed bool) skin.Token {
	return onOff(pressed, skin.DirectionalOn, skin.DirectionalOff)
}

func onOff(on bool, yes, no skin.Token) skin.Token {
	if on {
		return yes
	}
	return no
}

// Accessors for the terminal mirror.

func (c *DrumStepSequencer) Page() *Page                { return c.page }
func (c *DrumStepSequencer) Scenes() [8]skin.Token      { return c.sceneTokens }
func (c *DrumStepSequencer) Target() *TargetTrack       { return c.target }
func (c *DrumStepSequencer) Velocity() uint8            { return c.velocity.Velocity() }
func (c *DrumStepSequencer) DoubleTime() bool           { return c.doubleTime }
func (c *DrumStepSequencer) DrumGroup() *DrumGroup      { return c.drums }
func (c *DrumStepSequencer) Playhead() *PlayheadTracker { return c.playhead }
func (c *DrumStepSequencer) LevelsComponent() *Levels   { return c.levels }
