package sequencer

import "testing"

func TestVelocityProviderModifiers(t *testing.T) {
	tests := []struct {
		name   string
		accent bool
		soft   bool
		want   uint8
	}{
		{"neither held", false, false, NormalVelocity},
		{"soft held", false, true, SoftVelocity},
		{"accent held", true, false, AccentVelocity},
		{"accent wins over soft", true, true, AccentVelocity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVelocityProvider()
			v.SetAccentPressed(tt.accent)
			v.SetSoftPressed(tt.soft)
			if got := v.Velocity(); got != tt.want {
				t.Errorf("Velocity() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestVelocityProviderNotifiesOnChangeOnly(t *testing.T) {
	v := NewVelocityProvider()
	var fired int
	v.OnChange(func() { fired++ })

	v.SetAccentPressed(true)
	if fired != 1 {
		t.Fatalf("after accent press: fired = %d, want 1", fired)
	}

	// Same state again: no recompute, no notification.
	v.SetAccentPressed(true)
	if fired != 1 {
		t.Errorf("repeated press notified: fired = %d, want 1", fired)
	}

	// Soft under accent: effective velocity unchanged, so no event.
	v.SetSoftPressed(true)
	if fired != 1 {
		t.Errorf("soft under accent notified: fired = %d, want 1", fired)
	}

	// Releasing accent drops to soft.
	v.SetAccentPressed(false)
	if fired != 2 {
		t.Errorf("after accent release: fired = %d, want 2", fired)
	}
	if v.Velocity() != SoftVelocity {
		t.Errorf("Velocity() = %d, want %d", v.Velocity(), SoftVelocity)
	}
}

func TestVelocityProviderSetLevels(t *testing.T) {
	v := NewVelocityProvider()
	v.SetLevels(90, 40, 120)

	if v.Velocity() != 90 {
		t.Errorf("normal level = %d, want 90", v.Velocity())
	}
	v.SetAccentPressed(true)
	if v.Velocity() != 120 {
		t.Errorf("accent level = %d, want 120", v.Velocity())
	}
}

func TestPitchSelection(t *testing.T) {
	p := NewPitchSelection()
	if got := p.Pitches(); len(got) != 1 || got[0] != 36 {
		t.Fatalf("default pitches = %v, want [36]", got)
	}

	var fired int
	p.OnChange(func() { fired++ })

	p.SetPitch(38)
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}

	// Equal set suppresses the event.
	p.SetPitch(38)
	if fired != 1 {
		t.Errorf("equal set notified: fired = %d, want 1", fired)
	}

	// Empty call is ignored.
	p.SetPitch()
	if fired != 1 || len(p.Pitches()) != 1 {
		t.Errorf("empty SetPitch changed state: %v", p.Pitches())
	}

	p.SetPitch(36, 38, 42)
	if !p.IsPolyphonic() {
		t.Error("IsPolyphonic() = false after multi-pitch set")
	}
	if fired != 2 {
		t.Errorf("fired = %d, want 2", fired)
	}
}
