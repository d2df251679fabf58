package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"apcstep/host"
	"apcstep/skin"
)

var cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#c0caf5"))

// RenderPad renders a single colored pad
func RenderPad(color [3]uint8) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(rgbToHex(color)))
	return style.Render("■")
}

// RenderGrid renders the mirror of the pad surface, row 0 at the top
// like the hardware faces the player. The cell at (cursorCol,
// cursorRow) is bracketed; pass coordinates off the grid for no
// cursor.
func RenderGrid(grid *host.MemGrid, cursorCol, cursorRow int) string {
	var lines []string
	for row := 0; row < grid.Height(); row++ {
		var line strings.Builder
		for col := 0; col < grid.Width(); col++ {
			pad := RenderPad(skin.Lookup(grid.Token(col, row)).RGB)
			if col == cursorCol && row == cursorRow {
				line.WriteString(cursorStyle.Render("[") + pad + cursorStyle.Render("]"))
			} else {
				line.WriteString(" " + pad + " ")
			}
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// RenderSceneColumn renders the launch-button column beside the grid.
func RenderSceneColumn(tokens [8]skin.Token) string {
	var lines []string
	for _, t := range tokens {
		lines = append(lines, RenderPad(skin.Lookup(t).RGB))
	}
	return strings.Join(lines, "\n")
}

// RenderLegendItem renders a single legend item: "■ Name - description"
func RenderLegendItem(token skin.Token, name, desc string) string {
	return fmt.Sprintf("  %s %s - %s", RenderPad(skin.Lookup(token).RGB), name, desc)
}

// RenderLevels renders the eight fader bars as a one-line meter, each
// block shaded by its level.
func RenderLevels(levels [8]float64, offset int) string {
	blocks := []rune(" ▁▂▃▄▅▆▇█")
	base := skin.Lookup(skin.StepAccent).RGB
	var out strings.Builder
	out.WriteString(fmt.Sprintf("pads %2d-%2d ", offset, offset+7))
	for _, l := range levels {
		i := int(l * float64(len(blocks)-1))
		if i < 0 {
			i = 0
		}
		if i >= len(blocks) {
			i = len(blocks) - 1
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(rgbToHex(skin.Shade(base, 0.3+0.7*l))))
		out.WriteString(style.Render(string(blocks[i])))
	}
	return out.String()
}

func rgbToHex(c [3]uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}
