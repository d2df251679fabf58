package sequencer

// Resolution is the musical duration of one grid column, in beats
// (quarter notes). Exactly one resolution is active at a time.
type Resolution int

const (
	Res4th Resolution = iota
	Res4thTriplet
	Res8th
	Res8thTriplet
	Res16th
	Res16thTriplet
	Res32nd
	numResolutions
)

// DefaultResolution matches the surface's power-on state: 1/16 steps,
// two bars per 32-step page in 4/4.
const DefaultResolution = Res16th

var resolutionNames = [numResolutions]string{
	"1/4", "1/4t", "1/8", "1/8t", "1/16", "1/16t", "1/32",
}

var stepLengths = [numResolutions]float64{
	1.0,
	2.0 / 3.0,
	0.5,
	1.0 / 3.0,
	0.25,
	1.0 / 6.0,
	0.125,
}

func (r Resolution) String() string {
	if r < 0 || r >= numResolutions {
		return "?"
	}
	return resolutionNames[r]
}

// StepLength returns the beat length of one grid column.
func (r Resolution) StepLength() float64 {
	if r < 0 || r >= numResolutions {
		return stepLengths[DefaultResolution]
	}
	return stepLengths[r]
}

// Next cycles to the following resolution, wrapping.
func (r Resolution) Next() Resolution {
	return (r + 1) % numResolutions
}

// Page is the window of the clip's time axis currently mapped onto the
// step grid: a start offset plus grid dimensions times the active
// resolution. Pagination moves in whole-page increments, clamped at
// zero; pages never overlap.
type Page struct {
	Width  int
	Height int

	resolution Resolution
	pageTime   float64

	listeners []func()
}

func NewPage(width, height int) *Page {
	return &Page{Width: width, Height: height, resolution: DefaultResolution}
}

func (p *Page) Resolution() Resolution {
	return p.resolution
}

// CycleResolution advances to the next grid resolution and rewinds to
// the first page, since step indices mean different times now.
func (p *Page) CycleResolution() {
	p.resolution = p.resolution.Next()
	p.pageTime = 0
	p.notify()
}

// StepLength is the beat length of one step at the active resolution.
func (p *Page) StepLength() float64 {
	return p.resolution.StepLength()
}

// Steps is the number of steps one page shows.
func (p *Page) Steps() int {
	return p.Width * p.Height
}

// Span is the beat length one page covers.
func (p *Page) Span() float64 {
	return float64(p.Steps()) * p.StepLength()
}

// Time returns the page start offset in clip beats.
func (p *Page) Time() float64 {
	return p.pageTime
}

// StepTime converts a page-relative step index to absolute clip time.
func (p *Page) StepTime(index int) float64 {
	return p.pageTime + float64(index)*p.StepLength()
}

// StepAt maps an absolute clip time onto this page, returning the step
// index and whether it is visible here.
func (p *Page) StepAt(time float64) (int, bool) {
	idx := int((time - p.pageTime) / p.StepLength())
	if time < p.pageTime || idx < 0 || idx >= p.Steps() {
		return -1, false
	}
	return idx, true
}

// Move shifts the window by delta whole pages, clamped at zero.
func (p *Page) Move(delta int) {
	t := p.pageTime + float64(delta)*p.Span()
	if t < 0 {
		t = 0
	}
	if t != p.pageTime {
		p.pageTime = t
		p.notify()
	}
}

// Index returns which page of the clip is visible.
func (p *Page) Index() int {
	return int(p.pageTime / p.Span())
}

func (p *Page) OnChange(fn func()) {
	p.listeners = append(p.listeners, fn)
}

func (p *Page) notify() {
	for _, fn := range p.listeners {
		fn()
	}
}
