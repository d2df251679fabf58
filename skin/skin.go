// Package skin maps symbolic color tokens to concrete LED colors.
// Components talk in tokens ("NoteEditor.StepAccent"); the controller
// binding resolves them to a palette velocity plus a behavior channel,
// and the terminal mirror resolves them to RGB.
package skin

// Token names a color role. Unknown tokens resolve to off.
type Token string

const (
	Off Token = ""

	StepEmpty      Token = "NoteEditor.StepEmpty"
	StepOutOfLoop  Token = "NoteEditor.StepOutOfLoop"
	StepNormal     Token = "NoteEditor.StepNormal"
	StepSoft       Token = "NoteEditor.StepSoft"
	StepAccent     Token = "NoteEditor.StepAccent"
	StepDoubleTime Token = "NoteEditor.StepDoubleTime"
	StepPlayhead   Token = "NoteEditor.Playhead"

	PadEmpty    Token = "DrumGroup.PadEmpty"
	PadFilled   Token = "DrumGroup.PadFilled"
	PadSelected Token = "DrumGroup.PadSelected"
	PadPlayable Token = "DrumGroup.PadPlayable"

	PlayOff        Token = "Sequencer.PlayOff"
	PlayOn         Token = "Sequencer.PlayOn"
	ModeToggleOff  Token = "Sequencer.ModeToggleOff"
	ModeToggleOn   Token = "Sequencer.ModeToggleOn"
	DirectionalOff Token = "Sequencer.DirectionalOff"
	DirectionalOn  Token = "Sequencer.DirectionalOn"
	AddVariantOff  Token = "Sequencer.AddVariantOff"
	AddVariantOn   Token = "Sequencer.AddVariantOn"
	ClearClipOff   Token = "Sequencer.ClearClipOff"
	ClearClipOn    Token = "Sequencer.ClearClipOn"
	DoubleTimeOff  Token = "Sequencer.DoubleTimeOff"
	DoubleTimeOn   Token = "Sequencer.DoubleTimeOn"
	AccentOff      Token = "Sequencer.VelocityAccentOff"
	AccentOn       Token = "Sequencer.VelocityAccentOn"
	SoftOff        Token = "Sequencer.VelocitySoftOff"
	SoftOn         Token = "Sequencer.VelocitySoftOn"
	ResolutionOff  Token = "Sequencer.ResolutionOff"
	ResolutionOn   Token = "Sequencer.ResolutionOn"
	PageOff        Token = "Sequencer.PageOff"
	PageOn         Token = "Sequencer.PageOn"
)

// LED behavior channels for RGB pads. Sending the same palette entry on
// a different channel selects brightness, pulse or blink behavior.
const (
	ChannelHalf  uint8 = 1
	ChannelFull  uint8 = 6
	ChannelPulse uint8 = 10
	ChannelBlink uint8 = 14
)

// Color is a resolved LED color: a palette velocity, the behavior
// channel to send it on, and an RGB approximation for the terminal
// mirror.
type Color struct {
	Velocity uint8
	Channel  uint8
	RGB      [3]uint8
}

// Device palette entries (velocity values of the pad color table).
const (
	velBlack  uint8 = 0
	velWhite  uint8 = 3
	velRed    uint8 = 5
	velAmber  uint8 = 9
	velGreen  uint8 = 21
	velCyan   uint8 = 33
	velBlue   uint8 = 45
	velGrey   uint8 = 70
	velPurple uint8 = 81
	velYellow uint8 = 97
)

var colors = map[Token]Color{
	StepEmpty:      {velGrey, ChannelHalf, [3]uint8{40, 40, 40}},
	StepOutOfLoop:  {velBlack, ChannelFull, [3]uint8{0, 0, 0}},
	StepNormal:     {velWhite, ChannelFull, [3]uint8{255, 255, 255}},
	StepSoft:       {velYellow, ChannelHalf, [3]uint8{180, 180, 60}},
	StepAccent:     {velAmber, ChannelFull, [3]uint8{255, 150, 30}},
	StepDoubleTime: {velBlue, ChannelFull, [3]uint8{0, 100, 255}},
	StepPlayhead:   {velGreen, ChannelPulse, [3]uint8{0, 255, 0}},

	PadEmpty:    {velGrey, ChannelHalf, [3]uint8{50, 50, 50}},
	PadFilled:   {velPurple, ChannelFull, [3]uint8{150, 0, 200}},
	PadSelected: {velWhite, ChannelFull, [3]uint8{255, 255, 255}},
	PadPlayable: {velCyan, ChannelFull, [3]uint8{0, 200, 200}},

	PlayOff:        {velGreen, ChannelHalf, [3]uint8{0, 90, 0}},
	PlayOn:         {velGreen, ChannelPulse, [3]uint8{0, 255, 0}},
	ModeToggleOff:  {velCyan, ChannelHalf, [3]uint8{0, 80, 80}},
	ModeToggleOn:   {velCyan, ChannelFull, [3]uint8{0, 200, 200}},
	DirectionalOff: {velGrey, ChannelHalf, [3]uint8{60, 60, 60}},
	DirectionalOn:  {velWhite, ChannelFull, [3]uint8{255, 255, 255}},
	AddVariantOff:  {velPurple, ChannelHalf, [3]uint8{70, 0, 90}},
	AddVariantOn:   {velPurple, ChannelFull, [3]uint8{150, 0, 200}},
	ClearClipOff:   {velRed, ChannelHalf, [3]uint8{90, 0, 0}},
	ClearClipOn:    {velRed, ChannelFull, [3]uint8{255, 0, 0}},
	DoubleTimeOff:  {velBlue, ChannelHalf, [3]uint8{0, 40, 100}},
	DoubleTimeOn:   {velBlue, ChannelFull, [3]uint8{0, 100, 255}},
	AccentOff:      {velAmber, ChannelHalf, [3]uint8{100, 60, 10}},
	AccentOn:       {velAmber, ChannelFull, [3]uint8{255, 150, 30}},
	SoftOff:        {velYellow, ChannelHalf, [3]uint8{80, 80, 25}},
	SoftOn:         {velYellow, ChannelFull, [3]uint8{220, 220, 70}},
	ResolutionOff:  {velCyan, ChannelHalf, [3]uint8{0, 80, 80}},
	ResolutionOn:   {velCyan, ChannelFull, [3]uint8{0, 200, 200}},
	PageOff:        {velGrey, ChannelHalf, [3]uint8{60, 60, 60}},
	PageOn:         {velWhite, ChannelFull, [3]uint8{255, 255, 255}},
}

// Lookup resolves a token. Unknown tokens come back as off/black.
func Lookup(t Token) Color {
	if c, ok := colors[t]; ok {
		return c
	}
	return Color{velBlack, ChannelFull, [3]uint8{0, 0, 0}}
}

// Shade linearly darkens an RGB value by t in [0,1]; used by the
// terminal mirror for velocity shading.
func Shade(c [3]uint8, t float64) [3]uint8 {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return [3]uint8{
		uint8(float64(c[0]) * t),
		uint8(float64(c[1]) * t),
		uint8(float64(c[2]) * t),
	}
}
