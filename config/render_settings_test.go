package config

import "testing"

func TestNewRenderSettingsDefaults(t *testing.T) {
	s := NewRenderSettings()

	if s.MSAA != MSAAModeOff {
		t.Errorf("MSAA = %v, want MSAAModeOff", s.MSAA)
	}
	if s.CascadeCount != 1 {
		t.Errorf("CascadeCount = %d, want 1", s.CascadeCount)
	}
	if s.CascadeSplits != nil {
		t.Errorf("CascadeSplits = %v, want nil", s.CascadeSplits)
	}
	if s.InverseGamma != float32(1.0/2.2) {
		t.Errorf("InverseGamma = %v, want 1/2.2", s.InverseGamma)
	}
}

func TestRenderSettingsClampsCascadeCount(t *testing.T) {
	s := NewRenderSettings(WithCascades(10, nil))
	if s.CascadeCount != 4 {
		t.Errorf("CascadeCount = %d, want clamped to 4", s.CascadeCount)
	}

	s = NewRenderSettings(WithCascades(0, nil))
	if s.CascadeCount != 1 {
		t.Errorf("CascadeCount = %d, want clamped to 1", s.CascadeCount)
	}
}

func TestRenderSettingsClampsSSAOSampleCount(t *testing.T) {
	s := NewRenderSettings(WithSSAO(true, SSAOParams{SampleCount: 1000}))
	if s.SSAO.SampleCount != 64 {
		t.Errorf("SSAO.SampleCount = %d, want clamped to 64", s.SSAO.SampleCount)
	}

	s = NewRenderSettings(WithSSAO(true, SSAOParams{SampleCount: -5}))
	if s.SSAO.SampleCount != 1 {
		t.Errorf("SSAO.SampleCount = %d, want clamped to 1", s.SSAO.SampleCount)
	}
}

func TestRenderSettingsClampsSyncIntervalAndShadowDistance(t *testing.T) {
	s := NewRenderSettings(WithSyncInterval(99), WithShadowDistance(-10))
	if s.SyncInterval != 4 {
		t.Errorf("SyncInterval = %d, want clamped to 4", s.SyncInterval)
	}
	if s.ShadowDistance != 0 {
		t.Errorf("ShadowDistance = %v, want clamped to 0", s.ShadowDistance)
	}
}

func TestWithGammaRejectsNonPositive(t *testing.T) {
	s := NewRenderSettings(WithGamma(0))
	if s.InverseGamma != float32(1.0/2.2) {
		t.Errorf("InverseGamma = %v, want fallback 1/2.2 for gamma <= 0", s.InverseGamma)
	}

	s = NewRenderSettings(WithGamma(2.0))
	if s.InverseGamma != 0.5 {
		t.Errorf("InverseGamma = %v, want 1/2.0 = 0.5", s.InverseGamma)
	}
}

func TestCloneIsIndependentOfSource(t *testing.T) {
	s := NewRenderSettings(WithCascades(4, []float32{0.1, 0.3, 0.6}))
	clone := s.Clone()

	clone.CascadeSplits[0] = 0.9
	if s.CascadeSplits[0] == 0.9 {
		t.Fatal("mutating the clone's CascadeSplits mutated the source's backing array")
	}

	s.CascadeCount = 2
	if clone.CascadeCount == 2 {
		t.Fatal("mutating the source after Clone mutated the already-taken clone")
	}
}

func TestCloneNilCascadeSplitsStaysNil(t *testing.T) {
	s := NewRenderSettings()
	clone := s.Clone()
	if clone.CascadeSplits != nil {
		t.Errorf("CascadeSplits = %v, want nil when source has none", clone.CascadeSplits)
	}
}
