package animator

import (
	"math"
	"testing"

	"github.com/kestrel-games/scenerender/engine/model"
)

func TestBracketKeyframesClampsOutsideRange(t *testing.T) {
	times := []float32{1, 2, 3}

	if lo, hi, frac := bracketKeyframes(times, 0); lo != 0 || hi != 0 || frac != 0 {
		t.Errorf("before range: got (%d, %d, %v), want (0, 0, 0)", lo, hi, frac)
	}
	if lo, hi, frac := bracketKeyframes(times, 10); lo != 2 || hi != 2 || frac != 0 {
		t.Errorf("after range: got (%d, %d, %v), want (2, 2, 0)", lo, hi, frac)
	}
}

func TestBracketKeyframesInterpolatesMidpoint(t *testing.T) {
	times := []float32{0, 2}
	lo, hi, frac := bracketKeyframes(times, 1)
	if lo != 0 || hi != 1 || frac != 0.5 {
		t.Errorf("got (%d, %d, %v), want (0, 1, 0.5)", lo, hi, frac)
	}
}

func TestSampleAnimationLerpsTranslation(t *testing.T) {
	channel := model.AnimationChannel{
		PositionKeys: []model.VectorKeyframe{
			{Time: 0, Value: [3]float32{0, 0, 0}},
			{Time: 1, Value: [3]float32{10, 0, 0}},
		},
	}

	got := SampleAnimation(channel, 0.5)
	if got.Translation[0] != 5 {
		t.Errorf("Translation.X = %v, want 5", got.Translation[0])
	}
}

func TestSampleAnimationDefaultsMissingTracksToIdentity(t *testing.T) {
	channel := model.AnimationChannel{}
	got := SampleAnimation(channel, 0.5)

	if got.Rotation != ([4]float32{0, 0, 0, 1}) {
		t.Errorf("Rotation = %v, want identity quaternion", got.Rotation)
	}
	if got.Scale != ([3]float32{1, 1, 1}) {
		t.Errorf("Scale = %v, want (1,1,1)", got.Scale)
	}
	if got.Translation != ([3]float32{0, 0, 0}) {
		t.Errorf("Translation = %v, want zero", got.Translation)
	}
}

func TestSampleAnimationSlerpsRotationShortestArc(t *testing.T) {
	half := float32(math.Pi / 4)
	channel := model.AnimationChannel{
		RotationKeys: []model.QuaternionKeyframe{
			{Time: 0, Value: [4]float32{0, 0, 0, 1}},
			{Time: 1, Value: [4]float32{0, float32(math.Sin(float64(half))), 0, float32(math.Cos(float64(half)))}},
		},
	}

	got := SampleAnimation(channel, 0.5)
	lenSq := got.Rotation[0]*got.Rotation[0] + got.Rotation[1]*got.Rotation[1] +
		got.Rotation[2]*got.Rotation[2] + got.Rotation[3]*got.Rotation[3]
	if diff := lenSq - 1; diff > 1e-4 || diff < -1e-4 {
		t.Errorf("interpolated quaternion length^2 = %v, want ~1", lenSq)
	}
}

func TestComposeBoneMatrixMultipliesWorldByOffset(t *testing.T) {
	identity := [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	translate := identity
	translate[12] = 5

	got := ComposeBoneMatrix(translate, identity)
	if got != translate {
		t.Errorf("ComposeBoneMatrix(T, I) = %v, want %v", got, translate)
	}
}

func TestComposeLocalTransformIdentityYieldsIdentityMatrix(t *testing.T) {
	t1 := model.Transform{Rotation: [4]float32{0, 0, 0, 1}, Scale: [3]float32{1, 1, 1}}
	got := ComposeLocalTransform(t1)
	want := [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	if got != want {
		t.Errorf("ComposeLocalTransform(identity) = %v, want %v", got, want)
	}
}
