package shadow

import "testing"

func TestCascadeSplitBoundariesLength(t *testing.T) {
	splits := []float32{0.1, 0.3, 0.6}
	boundaries := CascadeSplitBoundaries(0.1, 1000, 200, 4, splits)

	if got, want := len(boundaries), 5; got != want {
		t.Fatalf("len(boundaries) = %d, want %d (cascadeCount+1)", got, want)
	}
	if boundaries[0] != 0.1 {
		t.Errorf("boundaries[0] = %v, want near = 0.1", boundaries[0])
	}
	if boundaries[4] != 200 {
		t.Errorf("boundaries[4] = %v, want effectiveFar = min(far, shadowDistance) = 200", boundaries[4])
	}
}

func TestCascadeSplitBoundariesClampsToShadowDistance(t *testing.T) {
	boundaries := CascadeSplitBoundaries(0, 1000, 5000, 1, nil)
	if got := boundaries[1]; got != 1000 {
		t.Errorf("boundaries[1] = %v, want far (1000) since shadowDistance (5000) exceeds it", got)
	}
}

func TestCascadeSplitBoundariesMonotonic(t *testing.T) {
	splits := []float32{0.2, 0.5, 0.8}
	boundaries := CascadeSplitBoundaries(0, 100, 100, 4, splits)
	for i := 1; i < len(boundaries); i++ {
		if boundaries[i] <= boundaries[i-1] {
			t.Fatalf("boundaries not strictly increasing: boundaries[%d]=%v <= boundaries[%d]=%v", i, boundaries[i], i-1, boundaries[i-1])
		}
	}
}

func TestValidateCascadeSplitsRejectsWrongLength(t *testing.T) {
	if err := ValidateCascadeSplits(4, []float32{0.3, 0.6}); err == nil {
		t.Fatal("expected error for splits length mismatch (cascadeCount-1 required)")
	}
}

func TestValidateCascadeSplitsRejectsOutOfRange(t *testing.T) {
	if err := ValidateCascadeSplits(2, []float32{1.2}); err == nil {
		t.Fatal("expected error for split outside (0, 1)")
	}
	if err := ValidateCascadeSplits(2, []float32{0}); err == nil {
		t.Fatal("expected error for split == 0")
	}
}

func TestValidateCascadeSplitsRejectsNonIncreasing(t *testing.T) {
	if err := ValidateCascadeSplits(3, []float32{0.5, 0.4}); err == nil {
		t.Fatal("expected error for non-strictly-increasing splits")
	}
}

func TestValidateCascadeSplitsRejectsCascadeCountOutOfRange(t *testing.T) {
	if err := ValidateCascadeSplits(0, nil); err == nil {
		t.Fatal("expected error for cascadeCount < 1")
	}
	if err := ValidateCascadeSplits(MaxCascadeCount+1, make([]float32, MaxCascadeCount)); err == nil {
		t.Fatal("expected error for cascadeCount > MaxCascadeCount")
	}
}

func TestValidateCascadeSplitsAcceptsValid(t *testing.T) {
	if err := ValidateCascadeSplits(4, []float32{0.1, 0.3, 0.6}); err != nil {
		t.Errorf("unexpected error for valid splits: %v", err)
	}
}

func identity() []float32 {
	return []float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func TestFrustumSliceCornersIdentityIsNDCCube(t *testing.T) {
	corners := FrustumSliceCorners(identity())
	want := [8][3]float32{
		{-1, -1, 0}, {1, -1, 0}, {-1, 1, 0}, {1, 1, 0},
		{-1, -1, 1}, {1, -1, 1}, {-1, 1, 1}, {1, 1, 1},
	}
	if corners != want {
		t.Errorf("FrustumSliceCorners(identity) = %v, want %v", corners, want)
	}
}

func TestFitCascadeProducesFiniteResult(t *testing.T) {
	corners := [8][3]float32{
		{-10, -10, -10}, {10, -10, -10}, {-10, 10, -10}, {10, 10, -10},
		{-10, -10, 10}, {10, -10, 10}, {-10, 10, 10}, {10, 10, 10},
	}
	lightDir := [3]float32{0, -1, 0}

	cascade := FitCascade(corners, lightDir, 50, 1024, DefaultBBoxNearOffset)

	if cascade.HalfExtent <= 0 {
		t.Errorf("HalfExtent = %v, want > 0", cascade.HalfExtent)
	}
	if cascade.SplitFar != 50 {
		t.Errorf("SplitFar = %v, want 50", cascade.SplitFar)
	}
	for i, v := range cascade.LightVP {
		if v != v { // NaN check
			t.Fatalf("LightVP[%d] is NaN", i)
		}
	}
}

func TestFitCascadeSwapsUpVectorWhenLightIsVertical(t *testing.T) {
	corners := [8][3]float32{
		{-1, -1, -1}, {1, -1, -1}, {-1, 1, -1}, {1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {-1, 1, 1}, {1, 1, 1},
	}
	// Straight-down light direction would make the default up vector
	// parallel with the view direction; FitCascade must not produce a
	// degenerate (NaN) view matrix in this case.
	lightDir := [3]float32{0, -1, 0}

	cascade := FitCascade(corners, lightDir, 10, 512, DefaultBBoxNearOffset)
	for i, v := range cascade.LightVP {
		if v != v {
			t.Fatalf("LightVP[%d] is NaN with vertical light direction", i)
		}
	}
}
