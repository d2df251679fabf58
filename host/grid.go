package host

import "apcstep/skin"

// MemGrid is a token framebuffer implementing Grid. It backs the
// terminal mirror and the tests, and feeds hardware through Tee.
type MemGrid struct {
	w, h   int
	cells  []skin.Token
	notify chan struct{}
}

func NewMemGrid(w, h int) *MemGrid {
	return &MemGrid{
		w:      w,
		h:      h,
		cells:  make([]skin.Token, w*h),
		notify: make(chan struct{}, 1),
	}
}

// Updates signals after a cell actually changed; coalesced, so one
// receive may cover many writes.
func (g *MemGrid) Updates() <-chan struct{} {
	return g.notify
}

func (g *MemGrid) Width() int  { return g.w }
func (g *MemGrid) Height() int { return g.h }

func (g *MemGrid) Button(col, row int) (ButtonHandle, bool) {
	if col < 0 || col >= g.w || row < 0 || row >= g.h {
		return nil, false
	}
	return memButton{g: g, idx: row*g.w + col}, true
}

// Token reads back the token drawn at (col, row).
func (g *MemGrid) Token(col, row int) skin.Token {
	if col < 0 || col >= g.w || row < 0 || row >= g.h {
		return skin.Off
	}
	return g.cells[row*g.w+col]
}

type memButton struct {
	g   *MemGrid
	idx int
}

func (b memButton) SetColor(token skin.Token) {
	if b.g.cells[b.idx] == token {
		return
	}
	b.g.cells[b.idx] = token
	select {
	case b.g.notify <- struct{}{}:
	default:
	}
}

// SubGrid exposes a rectangle of a parent grid as a grid of its own,
// so a component only sees the zone it owns.
type SubGrid struct {
	parent Grid
	x, y   int
	w, h   int
}

func NewSubGrid(parent Grid, x, y, w, h int) *SubGrid {
	return &SubGrid{parent: parent, x: x, y: y, w: w, h: h}
}

func (g *SubGrid) Width() int  { return g.w }
func (g *SubGrid) Height() int { return g.h }

func (g *SubGrid) Button(col, row int) (ButtonHandle, bool) {
	if col < 0 || col >= g.w || row < 0 || row >= g.h {
		return nil, false
	}
	return g.parent.Button(g.x+col, g.y+row)
}

// Tee broadcasts draws to several grids (terminal mirror plus
// hardware). Dimensions come from the first grid.
type Tee struct {
	grids []Grid
}

func NewTee(grids ...Grid) *Tee {
	return &Tee{grids: grids}
}

// Add attaches another sink, used when hardware hot-plugs. Call from
// the scheduler goroutine only.
func (t *Tee) Add(g Grid) {
	t.grids = append(t.grids, g)
}

// Remove detaches a sink added earlier.
func (t *Tee) Remove(g Grid) {
	for i, have := range t.grids {
		if have == g {
			t.grids = append(t.grids[:i], t.grids[i+1:]...)
			return
		}
	}
}

func (t *Tee) Width() int {
	if len(t.grids) == 0 {
		return 0
	}
	return t.grids[0].Width()
}

func (t *Tee) Height() int {
	if len(t.grids) == 0 {
		return 0
	}
	return t.grids[0].Height()
}

func (t *Tee) Button(col, row int) (ButtonHandle, bool) {
	var handles []ButtonHandle
	for _, g := range t.grids {
		if h, ok := g.Button(col, row); ok {
			handles = append(handles, h)
		}
	}
	if len(handles) == 0 {
		return nil, false
	}
	return teeButton(handles), true
}

type teeButton []ButtonHandle

func (b teeButton) SetColor(token skin.Token) {
	for _, h := range b {
		h.SetColor(token)
	}
}
