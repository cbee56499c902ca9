// Package culling implements the frustum-based visibility tests the render
// thread runs once per active camera every frame: which lights illuminate
// the view, and which (instance, submesh) pairs need a draw call.
//
// Every function here is a plain, stateless function over FramePacket
// slices — no hidden cache, no persistent culling object — so results are
// fully determined by the frustum and packet contents passed in.
package culling

import (
	"math"
	"sort"

	"github.com/kestrel-games/scenerender/common"
	"github.com/kestrel-games/scenerender/engine/light"
	"github.com/kestrel-games/scenerender/engine/renderer/framepacket"
)

// CullLights returns the indices of lights in lights that are visible to
// frustum, sorted ascending. Directional lights are always visible (they
// have no position). Point lights are tested as a bounding sphere of
// radius Range. Spot lights are tested as the bounding sphere of their cone,
// then refined against a second sphere anchored at the light
// position with radius Range — a light failing either sphere test cannot
// illuminate anything inside the frustum.
func CullLights(frustum common.Frustum, lights []framepacket.LightData) []int {
	visible := make([]int, 0, len(lights))
	for i, l := range lights {
		if lightVisible(frustum, l) {
			visible = append(visible, i)
		}
	}
	sort.Ints(visible)
	return visible
}

func lightVisible(frustum common.Frustum, l framepacket.LightData) bool {
	switch l.Type {
	case light.LightTypeDirectional:
		return true
	case light.LightTypePoint:
		return frustum.SphereIntersects(l.Position, l.Range)
	case light.LightTypeSpot:
		center, radius := spotBoundingSphere(l.Position, l.Direction, l.Range, l.OuterCone)
		if !frustum.SphereIntersects(center, radius) {
			return false
		}
		return frustum.SphereIntersects(l.Position, l.Range)
	default:
		return false
	}
}

// spotBoundingSphere computes a sphere enclosing a spotlight's
// cone, centered on the cone axis at half its range. outerCosine is the
// cosine of the cone's outer half-angle, matching LightData.OuterCone.
func spotBoundingSphere(position, direction [3]float32, rangeVal, outerCosine float32) (center [3]float32, radius float32) {
	half := rangeVal / 2
	center = [3]float32{
		position[0] + direction[0]*half,
		position[1] + direction[1]*half,
		position[2] + direction[2]*half,
	}

	outerCosine = clamp(outerCosine, -1, 1)
	tanOuter := float32(math.Sqrt(float64(1-outerCosine*outerCosine))) / outerCosine
	baseRadius := rangeVal * tanOuter
	radius = float32(math.Sqrt(float64(half*half + baseRadius*baseRadius)))
	return center, radius
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// VisibleInstance names one surviving (instance, submesh) draw after
// culling. SubmeshLocalIdx is carried alongside InstanceIdx so a caller can
// sort or batch draws by submesh without re-indexing into Instances.
type VisibleInstance struct {
	InstanceIdx     int
	SubmeshLocalIdx int
}

// CullStaticSubmeshInstances tests every instance's submesh against frustum
// and returns the surviving (instance, submesh) pairs sorted by
// (InstanceIdx, SubmeshLocalIdx). Each instance is tested twice: first its
// owning mesh's overall AABB (a coarse, cheap reject shared by every
// submesh of that mesh), then, only on a pass, its own tighter per-submesh
// AABB — matching the two-level mesh-then-submesh test.
func CullStaticSubmeshInstances(frustum common.Frustum, meshes []framepacket.MeshData, submeshes []framepacket.SubmeshData, instances []framepacket.InstanceData) []VisibleInstance {
	visible := make([]VisibleInstance, 0, len(instances))

	for idx, inst := range instances {
		sub := submeshes[inst.SubmeshLocalIdx]
		mesh := meshes[sub.MeshLocalIdx]

		meshMin, meshMax := common.TransformAABB(inst.LocalToWorldMtx[:], mesh.BoundsMin, mesh.BoundsMax)
		if !frustum.AABBIntersects(meshMin, meshMax) {
			continue
		}

		subMin, subMax := common.TransformAABB(inst.LocalToWorldMtx[:], sub.BoundsMin, sub.BoundsMax)
		if !frustum.AABBIntersects(subMin, subMax) {
			continue
		}

		visible = append(visible, VisibleInstance{InstanceIdx: idx, SubmeshLocalIdx: inst.SubmeshLocalIdx})
	}

	sort.Slice(visible, func(i, j int) bool {
		if visible[i].InstanceIdx != visible[j].InstanceIdx {
			return visible[i].InstanceIdx < visible[j].InstanceIdx
		}
		return visible[i].SubmeshLocalIdx < visible[j].SubmeshLocalIdx
	})

	return visible
}
