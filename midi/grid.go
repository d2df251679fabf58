package midi

import (
	"apcstep/host"
	"apcstep/skin"
)

// PadGrid adapts an APCMiniController to the grid interface the
// sequencer components draw on. Handles are stateless; the controller
// dedups redundant sends.
type PadGrid struct {
	c *APCMiniController
}

func NewPadGrid(c *APCMiniController) *PadGrid {
	return &PadGrid{c: c}
}

func (g *PadGrid) Width() int  { return 8 }
func (g *PadGrid) Height() int { return 8 }

func (g *PadGrid) Button(col, row int) (host.ButtonHandle, bool) {
	if col < 0 || col >= 8 || row < 0 || row >= 8 {
		return nil, false
	}
	return padHandle{g.c, col, row}, true
}

type padHandle struct {
	c        *APCMiniController
	col, row int
}

func (h padHandle) SetColor(token skin.Token) {
	h.c.SetPadColor(h.col, h.row, token)
}
