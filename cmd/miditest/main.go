package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "detect":
		detectAPC()
	case "drummode":
		testDrumMode()
	case "leds":
		testLEDs()
	default:
		usage()
	}
}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list      - List all MIDI ports")
	fmt.Println("  detect    - Find APC mini mk2")
	fmt.Println("  drummode  - Switch the pads to drum mode")
	fmt.Println("  leds      - Test LED control")
}

func listPorts() {
	fmt.Println("=== MIDI Input Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	type result struct {
		ins  []drivers.In
		outs []drivers.Out
	}
	ch := make(chan result, 1)
	go func() {
		ins := midi.GetInPorts()
		outs := midi.GetOutPorts()
		ch <- result{ins: ins, outs: outs}
	}()

	select {
	case r := <-ch:
		for i, p := range r.ins {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
		fmt.Println("\n=== MIDI Output Ports ===")
		for i, p := range r.outs {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
	case <-time.After(3 * time.Second):
		fmt.Println("\nTIMEOUT! MIDI backend is hung.")
	}
}

func detectAPC() {
	fmt.Println("Looking for APC mini mk2...")

	ins := midi.GetInPorts()
	outs := midi.GetOutPorts()

	var inIdx, outIdx = -1, -1

	for i, p := range ins {
		if strings.Contains(strings.ToLower(p.String()), "apc mini") {
			fmt.Printf("Found input: %d: %s\n", i, p.String())
			inIdx = i
		}
	}

	for i, p := range outs {
		if strings.Contains(strings.ToLower(p.String()), "apc mini") {
			fmt.Printf("Found output: %d: %s\n", i, p.String())
			outIdx = i
		}
	}

	if inIdx >= 0 && outIdx >= 0 {
		fmt.Println("\nAPC mini mk2 detected!")
	} else {
		fmt.Println("\nAPC mini mk2 not found")
	}
}

func findOut() drivers.Out {
	for _, p := range midi.GetOutPorts() {
		if strings.Contains(strings.ToLower(p.String()), "apc mini") {
			return p
		}
	}
	return nil
}

func testDrumMode() {
	outPort := findOut()
	if outPort == nil {
		fmt.Println("No APC mini found")
		return
	}
	fmt.Printf("Using output: %s\n", outPort.String())

	send, err := midi.SendTo(outPort)
	if err != nil {
		fmt.Printf("Error opening port: %v\n", err)
		return
	}

	// Pad mode SysEx: F0 47 7F 4F 62 00 01 <mode> F7, mode 1 = drum
	fmt.Println("Sending: drum pad mode")
	if err := send(midi.SysEx([]byte{0x47, 0x7F, 0x4F, 0x62, 0x00, 0x01, 0x01})); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println("Done! Grid should now send notes 64-127 on channel 9")
}

func testLEDs() {
	outPort := findOut()
	if outPort == nil {
		fmt.Println("No APC mini found")
		return
	}

	send, err := midi.SendTo(outPort)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	send(midi.SysEx([]byte{0x47, 0x7F, 0x4F, 0x62, 0x00, 0x01, 0x01}))
	time.Sleep(100 * time.Millisecond)

	fmt.Println("Lighting up diagonal (green)...")

	// Drum-mode notes: 64 bottom-left, ascending row-major upward
	for i := 0; i < 8; i++ {
		note := uint8(64 + i*8 + i)
		send(midi.NoteOn(6, note, 21)) // full brightness, palette green
		time.Sleep(100 * time.Millisecond)
	}

	fmt.Println("Press Enter to clear...")
	fmt.Scanln()

	for note := 64; note <= 127; note++ {
		send(midi.NoteOn(0, uint8(note), 0))
	}

	fmt.Println("Done!")
}
