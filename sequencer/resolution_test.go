package sequencer

import (
	"math"
	"testing"
)

func TestResolutionStepLength(t *testing.T) {
	tests := []struct {
		res  Resolution
		want float64
	}{
		{Res4th, 1.0},
		{Res4thTriplet, 2.0 / 3.0},
		{Res8th, 0.5},
		{Res8thTriplet, 1.0 / 3.0},
		{Res16th, 0.25},
		{Res16thTriplet, 1.0 / 6.0},
		{Res32nd, 0.125},
	}
	for _, tt := range tests {
		t.Run(tt.res.String(), func(t *testing.T) {
			if got := tt.res.StepLength(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("StepLength() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolutionNextWraps(t *testing.T) {
	r := DefaultResolution
	seen := map[Resolution]bool{}
	for i := 0; i < int(numResolutions); i++ {
		if seen[r] {
			t.Fatalf("resolution %v repeated before full cycle", r)
		}
		seen[r] = true
		r = r.Next()
	}
	if r != DefaultResolution {
		t.Errorf("full cycle ended at %v, want %v", r, DefaultResolution)
	}
}

func TestPageStepTime(t *testing.T) {
	p := NewPage(8, 4)

	// 1/16 default: step 5 on page 0 sits at beat 1.25.
	if got := p.StepTime(5); got != 1.25 {
		t.Errorf("StepTime(5) = %v, want 1.25", got)
	}

	p.Move(1)
	if p.Time() != 8.0 {
		t.Fatalf("page 1 time = %v, want 8.0", p.Time())
	}
	if got := p.StepTime(5); got != 9.25 {
		t.Errorf("StepTime(5) on page 1 = %v, want 9.25", got)
	}
}

func TestPageStepAt(t *testing.T) {
	p := NewPage(8, 4)

	tests := []struct {
		name    string
		time    float64
		want    int
		visible bool
	}{
		{"page start", 0.0, 0, true},
		{"inside step", 1.3, 5, true},
		{"last step", 7.99, 31, true},
		{"next page", 8.0, -1, false},
		{"before page", -0.1, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, visible := p.StepAt(tt.time)
			if got != tt.want || visible != tt.visible {
				t.Errorf("StepAt(%v) = (%d, %v), want (%d, %v)", tt.time, got, visible, tt.want, tt.visible)
			}
		})
	}
}

func TestPageMoveClampsAtZero(t *testing.T) {
	p := NewPage(8, 4)
	var fired int
	p.OnChange(func() { fired++ })

	p.Move(-1)
	if p.Time() != 0 || fired != 0 {
		t.Errorf("move below zero: time=%v fired=%d", p.Time(), fired)
	}

	p.Move(2)
	if p.Index() != 2 || fired != 1 {
		t.Errorf("after Move(2): index=%d fired=%d", p.Index(), fired)
	}
}

func TestCycleResolutionRewindsPage(t *testing.T) {
	p := NewPage(8, 4)
	p.Move(3)

	p.CycleResolution()
	if p.Resolution() != Res16thTriplet {
		t.Errorf("Resolution() = %v, want %v", p.Resolution(), Res16thTriplet)
	}
	if p.Time() != 0 {
		t.Errorf("page time = %v after resolution change, want 0", p.Time())
	}
}
