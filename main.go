package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"apcstep/config"
	"apcstep/debug"
	"apcstep/host"
	"apcstep/midi"
	"apcstep/sched"
	"apcstep/sequencer"
	"apcstep/skin"
	"apcstep/tui"
)

func main() {
	debugFlag := flag.Bool("debug", false, "write a debug log to ~/.config/apcstep/debug.log")
	synthPort := flag.String("synth", "", "MIDI output port for drum notes (substring match)")
	flag.Parse()

	if *debugFlag {
		debug.Enable()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("config: %v\n", err)
		os.Exit(1)
	}

	// In-memory song: one drum track with eight clip slots, a one-bar
	// clip ready in the first.
	transport := host.NewMemTransport(float64(cfg.Tempo))
	track := host.NewTrack("Drums", 8)
	song := host.NewSong(transport, track)
	if _, err := track.CreateClip(0, transport, 4); err != nil {
		fmt.Printf("create clip: %v\n", err)
		os.Exit(1)
	}

	// Optional external synth for pad previews.
	var noteOut *midi.NoteOut
	if *synthPort != "" {
		noteOut, err = midi.OpenNoteOut(*synthPort, 9)
		if err != nil {
			fmt.Printf("synth: %v\n", err)
		}
	}

	// The mirror framebuffer is always first in the tee; hardware joins
	// when it connects.
	mirror := host.NewMemGrid(sequencer.GridWidth, sequencer.GridHeight)
	surface := host.NewTee(mirror)

	scheduler := sched.New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go scheduler.Run(ctx)

	// Current hardware, touched only on the scheduler goroutine.
	var apc *midi.APCMiniController
	var apcGrid *midi.PadGrid

	seq := sequencer.New(sequencer.Options{
		Song:         song,
		Grid:         surface,
		Scheduler:    scheduler,
		PollInterval: time.Duration(cfg.PlayheadPollMs) * time.Millisecond,
		PlayNote: func(note, velocity uint8) {
			if noteOut != nil {
				noteOut.PlayNote(note, velocity, 150*time.Millisecond)
			}
		},
		SceneLED: func(index int, token skin.Token) {
			if apc != nil {
				apc.SetSceneColor(index, token)
			}
		},
		NormalVelocity: cfg.Velocity.Normal,
		SoftVelocity:   cfg.Velocity.Soft,
		AccentVelocity: cfg.Velocity.Accent,
	})
	scheduler.Do(func() { seq.SetEnabled(true) })

	portMatch := "apc mini"
	if len(cfg.Controllers) > 0 {
		portMatch = cfg.Controllers[0].PortName
	}
	deviceMgr := midi.NewDeviceManager(portMatch)
	go deviceMgr.Run(ctx)

	m := tui.NewModel(seq, scheduler, mirror, song)
	p := tea.NewProgram(m, tea.WithAltScreen())

	// Forward device events: wire hardware on the scheduler goroutine,
	// tell the TUI about connection status.
	go func() {
		for ev := range deviceMgr.Events() {
			ev := ev
			switch ev.Type {
			case midi.DeviceConnected:
				ctrl, ok := ev.Controller.(*midi.APCMiniController)
				if !ok {
					break
				}
				if cc := cfg.FindController(ev.ID); cc != nil && !cc.AutoConnect {
					debug.Log("main", "not auto-connecting %q", ev.ID)
					break
				}
				scheduler.Do(func() {
					apc = ctrl
					apcGrid = midi.NewPadGrid(ctrl)
					surface.Add(apcGrid)
					seq.Redraw()
				})
				go pumpEvents(scheduler, seq, song, ctrl)
			case midi.DeviceDisconnected:
				scheduler.Do(func() {
					if apc != nil && apc.ID() == ev.ID {
						surface.Remove(apcGrid)
						apc = nil
						apcGrid = nil
					}
				})
			}
			p.Send(tui.DeviceEventMsg(ev))
		}
	}()

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// pumpEvents funnels one controller's gestures onto the scheduler.
func pumpEvents(scheduler *sched.Scheduler, seq *sequencer.DrumStepSequencer,
	song *host.Song, ctrl *midi.APCMiniController) {
	for ev := range ctrl.Events() {
		ev := ev
		scheduler.Do(func() {
			switch ev.Kind {
			case midi.EventPad:
				seq.HandlePad(ev.Col, ev.Row, ev.Pressed, ev.Velocity)
			case midi.EventScene:
				seq.HandleScene(ev.Index, ev.Pressed)
			case midi.EventFader:
				seq.HandleFader(ev.Index, ev.Value)
			case midi.EventTrackButton:
				if ev.Pressed {
					song.SetSelectedTrack(ev.Index)
				}
			}
		})
	}
}
