package animator

import (
	"sort"

	"github.com/kestrel-games/scenerender/common"
	"github.com/kestrel-games/scenerender/engine/model"
)

// SampleAnimation evaluates channel at timeSec, bracketing the surrounding
// keyframe pair on each of the translation/rotation/scale tracks independently
// (tracks may carry different keyframe counts) and interpolating between them:
// linear for translation and scale, shortest-arc spherical for rotation.
// A track with zero keys holds its Transform field at the identity value;
// a track with one key holds that key's value for all time.
func SampleAnimation(channel model.AnimationChannel, timeSec float32) model.Transform {
	t := model.Transform{
		Rotation: [4]float32{0, 0, 0, 1},
		Scale:    [3]float32{1, 1, 1},
	}

	if v, ok := sampleVectorTrack(channel.PositionKeys, timeSec); ok {
		t.Translation = v
	}
	if v, ok := sampleVectorTrack(channel.ScaleKeys, timeSec); ok {
		t.Scale = v
	}
	if q, ok := sampleQuaternionTrack(channel.RotationKeys, timeSec); ok {
		t.Rotation = q
	}

	return t
}

// bracketKeyframes returns the indices of the two keyframes surrounding
// timeSec and the normalized blend factor between them. Clamps to the first
// or last keyframe outside the track's time range.
func bracketKeyframes(times []float32, timeSec float32) (lo, hi int, frac float32) {
	n := len(times)
	if n == 0 {
		return 0, 0, 0
	}
	if n == 1 || timeSec <= times[0] {
		return 0, 0, 0
	}
	if timeSec >= times[n-1] {
		return n - 1, n - 1, 0
	}

	// times is sorted ascending; find the first keyframe strictly after timeSec.
	hi = sort.Search(n, func(i int) bool { return times[i] > timeSec })
	lo = hi - 1

	span := times[hi] - times[lo]
	if span <= 0 {
		return lo, hi, 0
	}
	return lo, hi, (timeSec - times[lo]) / span
}

func sampleVectorTrack(keys []model.VectorKeyframe, timeSec float32) ([3]float32, bool) {
	if len(keys) == 0 {
		return [3]float32{}, false
	}
	times := vectorKeyTimes(keys)
	lo, hi, frac := bracketKeyframes(times, timeSec)
	if lo == hi {
		return keys[lo].Value, true
	}
	return common.LerpVec3(keys[lo].Value, keys[hi].Value, frac), true
}

func sampleQuaternionTrack(keys []model.QuaternionKeyframe, timeSec float32) ([4]float32, bool) {
	if len(keys) == 0 {
		return [4]float32{}, false
	}
	times := quaternionKeyTimes(keys)
	lo, hi, frac := bracketKeyframes(times, timeSec)
	if lo == hi {
		return keys[lo].Value, true
	}
	return common.SlerpQuat(keys[lo].Value, keys[hi].Value, frac), true
}

func vectorKeyTimes(keys []model.VectorKeyframe) []float32 {
	times := make([]float32, len(keys))
	for i, k := range keys {
		times[i] = k.Time
	}
	return times
}

func quaternionKeyTimes(keys []model.QuaternionKeyframe) []float32 {
	times := make([]float32, len(keys))
	for i, k := range keys {
		times[i] = k.Time
	}
	return times
}

// ComposeBoneMatrix builds the skinning matrix for one bone: the bone's
// current node-space world transform times its bind-pose offset matrix,
// matching node_world[b.node] * b.offset.
func ComposeBoneMatrix(nodeWorld, offset [16]float32) [16]float32 {
	var out [16]float32
	common.Mul4(out[:], nodeWorld[:], offset[:])
	return out
}

// ComposeLocalTransform builds a bone's local transform matrix (translation *
// rotation * scale) from a sampled Transform, the form node_world is built
// from by walking the skeleton hierarchy parent-to-child.
func ComposeLocalTransform(t model.Transform) [16]float32 {
	var rot [16]float32
	common.QuatToMat4(rot[:], t.Rotation)

	var out [16]float32
	out[0] = rot[0] * t.Scale[0]
	out[1] = rot[1] * t.Scale[0]
	out[2] = rot[2] * t.Scale[0]
	out[3] = rot[3]
	out[4] = rot[4] * t.Scale[1]
	out[5] = rot[5] * t.Scale[1]
	out[6] = rot[6] * t.Scale[1]
	out[7] = rot[7]
	out[8] = rot[8] * t.Scale[2]
	out[9] = rot[9] * t.Scale[2]
	out[10] = rot[10] * t.Scale[2]
	out[11] = rot[11]
	out[12] = t.Translation[0]
	out[13] = t.Translation[1]
	out[14] = t.Translation[2]
	out[15] = 1

	return out
}
