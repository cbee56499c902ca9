package light

import "testing"

func TestNewLightDefaultsToSceneShadowBias(t *testing.T) {
	l := NewLight(LightTypePoint)

	if got := l.ShadowDepthBias(); got != 0 {
		t.Errorf("ShadowDepthBias() = %v, want 0 (defer to scene default)", got)
	}
	if got := l.ShadowNormalBias(); got != 0 {
		t.Errorf("ShadowNormalBias() = %v, want 0 (defer to scene default)", got)
	}
	if got := l.ShadowNearPlane(); got != 0.1 {
		t.Errorf("ShadowNearPlane() = %v, want 0.1", got)
	}
}

func TestWithShadowParamsOverridesSceneDefault(t *testing.T) {
	l := NewLight(LightTypeSpot, WithShadowParams(0.05, 0.002, 4.0, 10.0))

	if got := l.ShadowNearPlane(); got != 0.05 {
		t.Errorf("ShadowNearPlane() = %v, want 0.05", got)
	}
	if got := l.ShadowDepthBias(); got != 0.002 {
		t.Errorf("ShadowDepthBias() = %v, want 0.002", got)
	}
	if got := l.ShadowNormalBias(); got != 4.0 {
		t.Errorf("ShadowNormalBias() = %v, want 4.0", got)
	}
	if got := l.ShadowExtension(); got != 10.0 {
		t.Errorf("ShadowExtension() = %v, want 10.0", got)
	}
}

func TestSetShadowParamsMutatesExistingLight(t *testing.T) {
	l := NewLight(LightTypeDirectional)
	l.SetShadowParams(0.2, 0.003, 2.5, 20.0)

	if got := l.ShadowDepthBias(); got != 0.003 {
		t.Errorf("ShadowDepthBias() = %v, want 0.003", got)
	}
	if got := l.ShadowExtension(); got != 20.0 {
		t.Errorf("ShadowExtension() = %v, want 20.0", got)
	}
}
