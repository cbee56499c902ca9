package common

import (
	"math"
)

// Plane represents a plane in 3D space using the equation: ax + by + cz + d = 0
// where (a, b, c) is the normal and d is the distance from origin.
type Plane struct {
	Normal   [3]float32
	Distance float32
}

// Frustum represents the six planes of a view frustum for culling.
// Planes are oriented so that positive half-space is inside the frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumPlane indices for clarity
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// ExtractFrustumFromMatrix extracts frustum planes from a view-projection matrix.
// The matrix should be the combined View * Projection matrix.
// Uses the Gribb/Hartmann method for plane extraction.
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - viewProj: 16 float32 values representing the view-projection matrix (column-major)
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes
func ExtractFrustumFromMatrix(viewProj []float32) Frustum {
	var f Frustum

	// For column-major matrix M, element M[row][col] is at index col*4 + row
	// So M[i][j] = viewProj[j*4 + i]

	// Left plane: row3 + row0
	f.Planes[FrustumLeft].Normal[0] = viewProj[3] + viewProj[0]  // m[0][3] + m[0][0]
	f.Planes[FrustumLeft].Normal[1] = viewProj[7] + viewProj[4]  // m[1][3] + m[1][0]
	f.Planes[FrustumLeft].Normal[2] = viewProj[11] + viewProj[8] // m[2][3] + m[2][0]
	f.Planes[FrustumLeft].Distance = viewProj[15] + viewProj[12] // m[3][3] + m[3][0]

	// Right plane: row3 - row0
	f.Planes[FrustumRight].Normal[0] = viewProj[3] - viewProj[0]
	f.Planes[FrustumRight].Normal[1] = viewProj[7] - viewProj[4]
	f.Planes[FrustumRight].Normal[2] = viewProj[11] - viewProj[8]
	f.Planes[FrustumRight].Distance = viewProj[15] - viewProj[12]

	// Bottom plane: row3 + row1
	f.Planes[FrustumBottom].Normal[0] = viewProj[3] + viewProj[1]
	f.Planes[FrustumBottom].Normal[1] = viewProj[7] + viewProj[5]
	f.Planes[FrustumBottom].Normal[2] = viewProj[11] + viewProj[9]
	f.Planes[FrustumBottom].Distance = viewProj[15] + viewProj[13]

	// Top plane: row3 - row1
	f.Planes[FrustumTop].Normal[0] = viewProj[3] - viewProj[1]
	f.Planes[FrustumTop].Normal[1] = viewProj[7] - viewProj[5]
	f.Planes[FrustumTop].Normal[2] = viewProj[11] - viewProj[9]
	f.Planes[FrustumTop].Distance = viewProj[15] - viewProj[13]

	// Near plane: row3 + row2
	f.Planes[FrustumNear].Normal[0] = viewProj[3] + viewProj[2]
	f.Planes[FrustumNear].Normal[1] = viewProj[7] + viewProj[6]
	f.Planes[FrustumNear].Normal[2] = viewProj[11] + viewProj[10]
	f.Planes[FrustumNear].Distance = viewProj[15] + viewProj[14]

	// Far plane: row3 - row2
	f.Planes[FrustumFar].Normal[0] = viewProj[3] - viewProj[2]
	f.Planes[FrustumFar].Normal[1] = viewProj[7] - viewProj[6]
	f.Planes[FrustumFar].Normal[2] = viewProj[11] - viewProj[10]
	f.Planes[FrustumFar].Distance = viewProj[15] - viewProj[14]

	// Normalize all planes
	for i := range f.Planes {
		f.normalizePlane(i)
	}

	return f
}

// normalizePlane normalizes a frustum plane so that the normal has unit length.
func (f *Frustum) normalizePlane(index int) {
	p := &f.Planes[index]
	length := float32(math.Sqrt(float64(
		p.Normal[0]*p.Normal[0] +
			p.Normal[1]*p.Normal[1] +
			p.Normal[2]*p.Normal[2],
	)))

	if length > 0 {
		invLen := 1.0 / length
		p.Normal[0] *= invLen
		p.Normal[1] *= invLen
		p.Normal[2] *= invLen
		p.Distance *= invLen
	}
}

// signedDistance returns the signed distance from point to plane, positive
// when point is on the inside (positive) half-space.
func (p Plane) signedDistance(point [3]float32) float32 {
	return p.Normal[0]*point[0] + p.Normal[1]*point[1] + p.Normal[2]*point[2] + p.Distance
}

// SphereIntersects reports whether a bounding sphere is at least partially
// inside the frustum. A sphere entirely behind any single plane is culled.
func (f Frustum) SphereIntersects(center [3]float32, radius float32) bool {
	for _, p := range f.Planes {
		if p.signedDistance(center) < -radius {
			return false
		}
	}
	return true
}

// AABBIntersects reports whether an axis-aligned bounding box (given as
// world-space min/max corners) is at least partially inside the frustum.
// Uses the standard "positive vertex" test: for each plane, the corner most
// aligned with the plane normal is tested; if even that corner is outside,
// the whole box is outside.
func (f Frustum) AABBIntersects(min, max [3]float32) bool {
	for _, p := range f.Planes {
		var pos [3]float32
		for i := 0; i < 3; i++ {
			if p.Normal[i] >= 0 {
				pos[i] = max[i]
			} else {
				pos[i] = min[i]
			}
		}
		if p.signedDistance(pos) < 0 {
			return false
		}
	}
	return true
}

// FitSphere computes a bounding sphere center and radius for a set of points
// using the centroid as the center. This is sufficient for cascade
// frustum-slice fitting (§4.4.1): it need not be the true minimal-enclosing
// sphere, only a stable, deterministic one that fully contains the corners.
func FitSphere(corners [8][3]float32) (center [3]float32, radius float32) {
	for _, c := range corners {
		center[0] += c[0]
		center[1] += c[1]
		center[2] += c[2]
	}
	center[0] /= 8
	center[1] /= 8
	center[2] /= 8

	for _, c := range corners {
		dx := c[0] - center[0]
		dy := c[1] - center[1]
		dz := c[2] - center[2]
		d := float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
		if d > radius {
			radius = d
		}
	}
	return center, radius
}

// TransformAABB transforms an axis-aligned bounding box by a column-major 4x4
// matrix, recomputing a new AABB from the 8 transformed corners. Used to move
// a mesh-local AABB into world space for culling (§4.3).
func TransformAABB(m []float32, min, max [3]float32) (newMin, newMax [3]float32) {
	corners := AABBCorners(min, max)
	for i, c := range corners {
		tx := m[0]*c[0] + m[4]*c[1] + m[8]*c[2] + m[12]
		ty := m[1]*c[0] + m[5]*c[1] + m[9]*c[2] + m[13]
		tz := m[2]*c[0] + m[6]*c[1] + m[10]*c[2] + m[14]
		if i == 0 {
			newMin = [3]float32{tx, ty, tz}
			newMax = newMin
			continue
		}
		if tx < newMin[0] {
			newMin[0] = tx
		}
		if ty < newMin[1] {
			newMin[1] = ty
		}
		if tz < newMin[2] {
			newMin[2] = tz
		}
		if tx > newMax[0] {
			newMax[0] = tx
		}
		if ty > newMax[1] {
			newMax[1] = ty
		}
		if tz > newMax[2] {
			newMax[2] = tz
		}
	}
	return newMin, newMax
}

// AABBCorners expands a min/max box into its 8 corner points.
func AABBCorners(min, max [3]float32) [8][3]float32 {
	return [8][3]float32{
		{min[0], min[1], min[2]},
		{max[0], min[1], min[2]},
		{min[0], max[1], min[2]},
		{max[0], max[1], min[2]},
		{min[0], min[1], max[2]},
		{max[0], min[1], max[2]},
		{min[0], max[1], max[2]},
		{max[0], max[1], max[2]},
	}
}
