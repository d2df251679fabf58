package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"apcstep/host"
	"apcstep/midi"
	"apcstep/sched"
	"apcstep/sequencer"
	"apcstep/skin"
	"apcstep/widgets"
)

// Model mirrors the pad surface in the terminal and drives it from the
// keyboard when no hardware is attached. Mutations go through the
// scheduler so the sequencer stays single threaded; the view reads the
// shared framebuffer directly. Device events arrive via Program.Send
// from the wiring in main.
type Model struct {
	Seq   *sequencer.DrumStepSequencer
	Sched *sched.Scheduler
	Grid  *host.MemGrid
	Song  *host.Song

	cursorCol int
	cursorRow int

	accentHeld bool
	softHeld   bool

	controllerID string
	quitting     bool
}

type UpdateMsg struct{}

type DeviceEventMsg midi.DeviceEvent

func NewModel(seq *sequencer.DrumStepSequencer, s *sched.Scheduler, grid *host.MemGrid,
	song *host.Song) Model {
	return Model{
		Seq:   seq,
		Sched: s,
		Grid:  grid,
		Song:  song,
	}
}

func ListenForUpdates(grid *host.MemGrid) tea.Cmd {
	return func() tea.Msg {
		<-grid.Updates()
		return UpdateMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForUpdates(m.Grid)
}

// do hands an action to the sequencer goroutine.
func (m Model) do(fn func()) {
	m.Sched.Do(fn)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case UpdateMsg:
		return m, ListenForUpdates(m.Grid)

	case DeviceEventMsg:
		event := midi.DeviceEvent(msg)
		if event.Type == midi.DeviceConnected {
			m.controllerID = event.ID
		} else if m.controllerID == event.ID {
			m.controllerID = ""
		}
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	seq := m.Seq
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "h", "left":
		if m.cursorCol > 0 {
			m.cursorCol--
		}
	case "l", "right":
		if m.cursorCol < sequencer.GridWidth-1 {
			m.cursorCol++
		}
	case "k", "up":
		if m.cursorRow > 0 {
			m.cursorRow--
		}
	case "j", "down":
		if m.cursorRow < sequencer.GridHeight-1 {
			m.cursorRow++
		}

	case " ", "space":
		col, row := m.cursorCol, m.cursorRow
		m.do(func() {
			seq.HandlePad(col, row, true, 127)
			seq.HandlePad(col, row, false, 0)
		})

	case "p":
		m.do(func() { seq.HandleControl(sequencer.CtrlPlay) })
	case "m":
		m.do(func() { seq.HandleControl(sequencer.CtrlModeToggle) })
	case "c":
		m.do(func() { seq.HandleControl(sequencer.CtrlClearClip) })
	case "v":
		m.do(func() { seq.HandleControl(sequencer.CtrlAddVariant) })
	case "K":
		m.do(func() { seq.HandleControl(sequencer.CtrlUp) })
	case "J":
		m.do(func() { seq.HandleControl(sequencer.CtrlDown) })

	case "a":
		m.accentHeld = !m.accentHeld
		held := m.accentHeld
		m.do(func() { seq.SetAccentHeld(held) })
	case "s":
		m.softHeld = !m.softHeld
		held := m.softHeld
		m.do(func() { seq.SetSoftHeld(held) })

	case "r":
		m.do(func() { seq.HandleScene(0, true) })
	case "[":
		m.do(func() { seq.HandleScene(1, true) })
	case "]":
		m.do(func() { seq.HandleScene(2, true) })
	case "d":
		m.do(func() {
			on := !seq.DoubleTime()
			seq.HandleScene(3, on)
		})
	case "f":
		m.do(func() { seq.HandleScene(4, true) })
	case "L":
		m.do(func() { seq.HandleScene(5, true) })

	case "+", "=":
		m.do(func() { m.Song.Transport.SetTempo(m.Song.Transport.Tempo() + 5) })
	case "-", "_":
		m.do(func() { m.Song.Transport.SetTempo(m.Song.Transport.Tempo() - 5) })
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#ff9e64"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89"))

	playState := "STOP"
	if m.Song.Transport.IsPlaying() {
		playState = "PLAY"
	}
	deviceStatus := ""
	if m.controllerID != "" {
		deviceStatus = "  APC:on"
	}

	page := m.Seq.Page()
	header := headerStyle.Render(fmt.Sprintf("apcstep  %s  %3.0fbpm  %s  page:%d%s",
		playState, m.Song.Transport.Tempo(), page.Resolution(), page.Index(), deviceStatus))

	flags := []string{}
	if m.Seq.DoubleTime() {
		flags = append(flags, "x2")
	}
	if m.accentHeld {
		flags = append(flags, "accent")
	}
	if m.softHeld {
		flags = append(flags, "soft")
	}
	if m.Seq.Target().IsLocked() {
		flags = append(flags, "locked")
	}
	velSwatch := widgets.RenderPad(skin.Shade(
		skin.Lookup(skin.StepNormal).RGB, float64(m.Seq.Velocity())/127))
	status := fmt.Sprintf("%s vel:%d  %s", velSwatch, m.Seq.Velocity(), strings.Join(flags, " "))

	surface := lipgloss.JoinHorizontal(lipgloss.Top,
		widgets.RenderGrid(m.Grid, m.cursorCol, m.cursorRow),
		"  ",
		widgets.RenderSceneColumn(m.Seq.Scenes()))

	levels := m.Seq.LevelsComponent()
	var padLevels [8]float64
	for i := range padLevels {
		padLevels[i], _ = levels.PadLevel(i)
	}

	legend := widgets.RenderLegendItem(skin.StepAccent, "accent", "127") +
		widgets.RenderLegendItem(skin.StepSoft, "soft", "60") +
		widgets.RenderLegendItem(skin.StepDoubleTime, "x2", "half steps")

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(surface)
	out.WriteString("\n\n")
	out.WriteString(dimStyle.Render(widgets.RenderLevels(padLevels, levels.Offset())))
	out.WriteString("\n")
	out.WriteString(dimStyle.Render(status))
	out.WriteString("\n")
	out.WriteString(legend)
	out.WriteString("\n")
	out.WriteString(dimStyle.Render("hjkl:cursor space:pad p:play m:mode r:res [/]:page d:x2 a/s:vel c:clear v:variant K/J:slot q:quit"))
	return out.String()
}
