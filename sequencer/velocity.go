package sequencer

import "apcstep/debug"

// Default step velocity levels. Accent and soft are held-modifier
// velocities; normal applies when neither modifier is down.
const (
	NormalVelocity uint8 = 100
	SoftVelocity   uint8 = 60
	AccentVelocity uint8 = 127
)

// VelocityProvider derives the velocity for the next note write from
// the accent/soft modifier buttons. Accent wins when both are held.
type VelocityProvider struct {
	normal, soft, accent uint8

	accentPressed bool
	softPressed   bool
	velocity      uint8

	listeners []func()
}

func NewVelocityProvider() *VelocityProvider {
	return &VelocityProvider{
		normal:   NormalVelocity,
		soft:     SoftVelocity,
		accent:   AccentVelocity,
		velocity: NormalVelocity,
	}
}

// SetLevels overrides the three velocity levels (from config).
func (v *VelocityProvider) SetLevels(normal, soft, accent uint8) {
	v.normal, v.soft, v.accent = normal, soft, accent
	v.update()
}

// SetAccentPressed records the accent button state. Recompute and
// notification fire only when the flag actually changes.
func (v *VelocityProvider) SetAccentPressed(pressed bool) {
	if v.accentPressed == pressed {
		return
	}
	v.accentPressed = pressed
	v.update()
	debug.Log("velocity", "accent=%v velocity=%d", pressed, v.velocity)
}

// SetSoftPressed records the soft button state, same change-only rule.
func (v *VelocityProvider) SetSoftPressed(pressed bool) {
	if v.softPressed == pressed {
		return
	}
	v.softPressed = pressed
	v.update()
	debug.Log("velocity", "soft=%v velocity=%d", pressed, v.velocity)
}

func (v *VelocityProvider) update() {
	old := v.velocity
	switch {
	case v.accentPressed:
		v.velocity = v.accent
	case v.softPressed:
		v.velocity = v.soft
	default:
		v.velocity = v.normal
	}
	if v.velocity != old {
		for _, fn := range v.listeners {
			fn()
		}
	}
}

// Velocity returns the velocity the next note write will use.
func (v *VelocityProvider) Velocity() uint8 {
	return v.velocity
}

// OnChange registers a listener fired when the effective velocity
// changes. The note editor re-renders on this, so no-op recomputes must
// never reach it.
func (v *VelocityProvider) OnChange(fn func()) {
	v.listeners = append(v.listeners, fn)
}
