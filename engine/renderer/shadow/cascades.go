// Package shadow implements the cascaded directional shadow map array and the
// punctual light shadow atlas (§A.4.4), replacing the Forward+ tile-light
// scheme this codebase's teacher used for its own (non-cascaded) lighting.
package shadow

import (
	"fmt"

	"github.com/kestrel-games/scenerender/common"
)

// DefaultBBoxNearOffset is pulled back from the fitted AABB's near plane so
// casters standing just behind the visible frustum slice still contribute to
// the shadow map (§A.4.4.1).
const DefaultBBoxNearOffset float32 = 50.0

// CascadeSplitBoundaries computes the near/far boundaries, in view-space Z,
// of each cascade given the camera's near/far planes and the configured
// normalized splits. The returned slice has length cascadeCount+1:
// boundaries[0] == near, boundaries[cascadeCount] == effectiveFar, and
// boundaries[i] for 0<i<cascadeCount is near + splits[i-1]*(effectiveFar-near).
//
// effectiveFar is min(far, shadowDistance). splits must have length
// cascadeCount-1 and be strictly increasing in (0,1); this is validated by
// ValidateCascadeSplits and not re-checked here.
func CascadeSplitBoundaries(near, far, shadowDistance float32, cascadeCount int, splits []float32) []float32 {
	effectiveFar := far
	if shadowDistance < far {
		effectiveFar = shadowDistance
	}

	boundaries := make([]float32, cascadeCount+1)
	boundaries[0] = near
	boundaries[cascadeCount] = effectiveFar
	for i := 1; i < cascadeCount; i++ {
		boundaries[i] = near + splits[i-1]*(effectiveFar-near)
	}
	return boundaries
}

// ValidateCascadeSplits checks the invariant from §A.3.1/§A.8 invariant 6:
// splits must have length cascadeCount-1 and be strictly increasing values
// in the open interval (0, 1).
func ValidateCascadeSplits(cascadeCount int, splits []float32) error {
	if cascadeCount < 1 || cascadeCount > MaxCascadeCount {
		return fmt.Errorf("cascade count %d out of range [1, %d]", cascadeCount, MaxCascadeCount)
	}
	if len(splits) != cascadeCount-1 {
		return fmt.Errorf("expected %d cascade splits, got %d", cascadeCount-1, len(splits))
	}
	prev := float32(0)
	for i, s := range splits {
		if s <= 0 || s >= 1 {
			return fmt.Errorf("cascade split %d = %f is not in (0, 1)", i, s)
		}
		if s <= prev {
			return fmt.Errorf("cascade splits must be strictly increasing; split %d = %f <= split %d = %f", i, s, i-1, prev)
		}
		prev = s
	}
	return nil
}

// FrustumSliceCorners computes the 8 world-space corners of the camera
// frustum slice between view-space depths nearZ and farZ, given the camera's
// inverse view-projection matrix built from a projection using [nearZ,
// farZ] and the camera's view matrix. invViewProj must be the inverse of
// (projection(nearZ, farZ) * view).
func FrustumSliceCorners(invViewProj []float32) [8][3]float32 {
	// NDC corners for a reverse-Z or standard clip volume are the same cube
	// [-1,1]x[-1,1]x[0,1] in WebGPU's clip space; reverse-Z only changes
	// which scalar (0 or 1) corresponds to near vs far, not the corner set.
	ndc := [8][3]float32{
		{-1, -1, 0}, {1, -1, 0}, {-1, 1, 0}, {1, 1, 0},
		{-1, -1, 1}, {1, -1, 1}, {-1, 1, 1}, {1, 1, 1},
	}

	var corners [8][3]float32
	for i, n := range ndc {
		x := invViewProj[0]*n[0] + invViewProj[4]*n[1] + invViewProj[8]*n[2] + invViewProj[12]
		y := invViewProj[1]*n[0] + invViewProj[5]*n[1] + invViewProj[9]*n[2] + invViewProj[13]
		z := invViewProj[2]*n[0] + invViewProj[6]*n[1] + invViewProj[10]*n[2] + invViewProj[14]
		w := invViewProj[3]*n[0] + invViewProj[7]*n[1] + invViewProj[11]*n[2] + invViewProj[15]
		if w != 0 {
			x, y, z = x/w, y/w, z/w
		}
		corners[i] = [3]float32{x, y, z}
	}
	return corners
}

// Cascade holds the computed fit and light-view-projection for one cascade
// slice, ready to marshal into a GPUCascadeData record.
type Cascade struct {
	LightVP    [16]float32
	SplitFar   float32 // view-space far boundary this cascade covers
	HalfExtent float32 // orthographic half-extent in world units
	Center     [3]float32
}

// FitCascade computes the light-view orthographic projection for one cascade
// slice (§A.4.4.1): fit a sphere around the slice's 8 world-space corners,
// build an orthographic box in light-view space sized to that sphere, pull
// the near plane back by bboxNearOffset, and texel-snap the light-view
// origin to kill shimmering as the camera moves.
func FitCascade(corners [8][3]float32, lightDir [3]float32, splitFar float32, resolution int, bboxNearOffset float32) Cascade {
	center, radius := common.FitSphere(corners)

	upX, upY, upZ := float32(0), float32(1), float32(0)
	if absF32(lightDir[1]) > 0.99 {
		upX, upY, upZ = 1, 0, 0
	}

	eyeX := center[0] - lightDir[0]*(radius*2+bboxNearOffset)
	eyeY := center[1] - lightDir[1]*(radius*2+bboxNearOffset)
	eyeZ := center[2] - lightDir[2]*(radius*2+bboxNearOffset)

	var view [16]float32
	common.LookAt(view[:], eyeX, eyeY, eyeZ, center[0], center[1], center[2], upX, upY, upZ)

	// Texel-snap: round the light-view-space X/Y origin to the nearest
	// texel so the projection only moves in whole-texel increments as the
	// camera (and therefore the fitted sphere center) moves; this is what
	// kills shimmering on static geometry.
	texelSize := (radius * 2) / float32(resolution)
	view[12] = float32(int(view[12]/texelSize)) * texelSize
	view[13] = float32(int(view[13]/texelSize)) * texelSize

	var proj [16]float32
	near := -radius*2 - bboxNearOffset
	far := radius * 2
	common.OrthoReverseZ(proj[:], -radius, radius, -radius, radius, 0, far-near)

	var vp [16]float32
	common.Mul4(vp[:], proj[:], view[:])

	return Cascade{
		LightVP:    vp,
		SplitFar:   splitFar,
		HalfExtent: radius,
		Center:     center,
	}
}

func absF32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
