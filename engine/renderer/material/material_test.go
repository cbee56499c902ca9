package material

import "testing"

func TestNewMaterialDefaultsToOpaque(t *testing.T) {
	m := NewMaterial(WithName("default"))

	if got := m.BlendMode(); got != BlendModeOpaque {
		t.Errorf("BlendMode() = %v, want BlendModeOpaque", got)
	}
	if got := m.AlphaThreshold(); got != 0.5 {
		t.Errorf("AlphaThreshold() = %v, want 0.5", got)
	}
}

func TestWithBlendModeAndAlphaThreshold(t *testing.T) {
	m := NewMaterial(
		WithName("foliage"),
		WithBlendMode(BlendModeAlphaClip),
		WithAlphaThreshold(0.3),
	)

	if got := m.BlendMode(); got != BlendModeAlphaClip {
		t.Errorf("BlendMode() = %v, want BlendModeAlphaClip", got)
	}
	if got := m.AlphaThreshold(); got != 0.3 {
		t.Errorf("AlphaThreshold() = %v, want 0.3", got)
	}
}
