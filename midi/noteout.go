package midi

import (
	"fmt"
	"strings"
	"time"

	"apcstep/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// NoteOut sends drum notes to an external synth port, used for pad
// previews in playable mode and for clip playback.
type NoteOut struct {
	port    string
	send    func(msg gomidi.Message) error
	channel uint8
}

// OpenNoteOut opens the first output port whose name contains match.
func OpenNoteOut(match string, channel uint8) (*NoteOut, error) {
	match = strings.ToLower(match)
	for _, op := range gomidi.GetOutPorts() {
		if !strings.Contains(strings.ToLower(op.String()), match) {
			continue
		}
		send, err := gomidi.SendTo(op)
		if err != nil {
			return nil, fmt.Errorf("open output %q: %w", op.String(), err)
		}
		debug.Log("noteout", "opened %q", op.String())
		return &NoteOut{port: op.String(), send: send, channel: channel}, nil
	}
	return nil, fmt.Errorf("no output port matching %q", match)
}

func (n *NoteOut) Port() string {
	return n.port
}

// PlayNote fires a short note; the note-off follows after duration.
func (n *NoteOut) PlayNote(note, velocity uint8, duration time.Duration) {
	if n == nil || n.send == nil {
		return
	}
	n.send(gomidi.NoteOn(n.channel, note, velocity))
	time.AfterFunc(duration, func() {
		n.send(gomidi.NoteOff(n.channel, note))
	})
}
