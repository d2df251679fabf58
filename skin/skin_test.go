package skin

import "testing"

func TestLookupUnknownToken(t *testing.T) {
	c := Lookup(Token("NoSuch.Token"))
	if c.Velocity != 0 || c.RGB != [3]uint8{0, 0, 0} {
		t.Errorf("unknown token = %+v, want off/black", c)
	}
}

func TestShade(t *testing.T) {
	base := [3]uint8{200, 100, 50}
	tests := []struct {
		name string
		t    float64
		want [3]uint8
	}{
		{"identity", 1, [3]uint8{200, 100, 50}},
		{"black", 0, [3]uint8{0, 0, 0}},
		{"half", 0.5, [3]uint8{100, 50, 25}},
		{"clamped low", -2, [3]uint8{0, 0, 0}},
		{"clamped high", 3, [3]uint8{200, 100, 50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Shade(base, tt.t); got != tt.want {
				t.Errorf("Shade(%v, %v) = %v, want %v", base, tt.t, got, tt.want)
			}
		})
	}
}
