package widgets

import (
	"strings"
	"testing"

	"apcstep/host"
	"apcstep/skin"
)

func TestRenderGridMarksCursor(t *testing.T) {
	grid := host.NewMemGrid(4, 2)
	if btn, ok := grid.Button(1, 0); ok {
		btn.SetColor(skin.StepNormal)
	}

	out := RenderGrid(grid, 1, 0)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "[") || !strings.Contains(lines[0], "]") {
		t.Errorf("cursor row %q lacks brackets", lines[0])
	}
	if strings.Contains(lines[1], "[") {
		t.Errorf("non-cursor row %q has brackets", lines[1])
	}
}

func TestRenderGridWithoutCursor(t *testing.T) {
	grid := host.NewMemGrid(4, 2)
	out := RenderGrid(grid, -1, -1)
	if strings.Contains(out, "[") || strings.Contains(out, "]") {
		t.Errorf("output %q has cursor brackets", out)
	}
}

func TestRenderSceneColumn(t *testing.T) {
	var tokens [8]skin.Token
	tokens[3] = skin.DoubleTimeOn

	out := RenderSceneColumn(tokens)
	lines := strings.Split(out, "\n")
	if len(lines) != 8 {
		t.Fatalf("got %d lines, want 8", len(lines))
	}
	for i, line := range lines {
		if !strings.Contains(line, "■") {
			t.Errorf("line %d %q has no pad glyph", i, line)
		}
	}
}

func TestRenderLevels(t *testing.T) {
	levels := [8]float64{0, 1, 0.5, 0, 0, 0, 0, 0}

	out := RenderLevels(levels, 0)
	if !strings.HasPrefix(out, "pads  0- 7 ") {
		t.Errorf("output %q lacks pad range prefix", out)
	}
	if !strings.Contains(out, "█") {
		t.Errorf("full level missing from %q", out)
	}

	upper := RenderLevels(levels, 8)
	if !strings.HasPrefix(upper, "pads  8-15 ") {
		t.Errorf("output %q lacks upper pad range prefix", upper)
	}
}

func TestRenderLegendItem(t *testing.T) {
	out := RenderLegendItem(skin.StepAccent, "accent", "127")
	if !strings.Contains(out, "■") || !strings.Contains(out, "accent - 127") {
		t.Errorf("legend item = %q", out)
	}
}
