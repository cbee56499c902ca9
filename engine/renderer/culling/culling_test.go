package culling

import (
	"testing"

	"github.com/kestrel-games/scenerender/common"
	"github.com/kestrel-games/scenerender/engine/light"
	"github.com/kestrel-games/scenerender/engine/renderer/framepacket"
)

func identityFrustum(t *testing.T) common.Frustum {
	t.Helper()
	var proj, view, viewProj [16]float32
	common.Perspective(proj[:], 1.0, 1.0, 0.1, 100)
	common.LookAt(view[:], 0, 0, 5, 0, 0, 0, 0, 1, 0)
	common.Mul4(viewProj[:], proj[:], view[:])
	return common.ExtractFrustumFromMatrix(viewProj[:])
}

func TestCullLightsDirectionalAlwaysVisible(t *testing.T) {
	frustum := identityFrustum(t)
	lights := []framepacket.LightData{
		{Type: light.LightTypeDirectional, Position: [3]float32{1e6, 1e6, 1e6}},
	}

	got := CullLights(frustum, lights)
	if len(got) != 1 || got[0] != 0 {
		t.Fatalf("CullLights() = %v, want [0]", got)
	}
}

func TestCullLightsPointInAndOutOfRange(t *testing.T) {
	frustum := identityFrustum(t)
	lights := []framepacket.LightData{
		{Type: light.LightTypePoint, Position: [3]float32{0, 0, 0}, Range: 5}, // inside frustum
		{Type: light.LightTypePoint, Position: [3]float32{1e6, 1e6, 1e6}, Range: 1}, // far away, out
	}

	got := CullLights(frustum, lights)
	if len(got) != 1 || got[0] != 0 {
		t.Fatalf("CullLights() = %v, want [0]", got)
	}
}

func TestCullLightsSpotFacingAwayIsCulled(t *testing.T) {
	frustum := identityFrustum(t)
	lights := []framepacket.LightData{
		{
			Type:      light.LightTypeSpot,
			Position:  [3]float32{0, 0, -1000},
			Direction: [3]float32{0, 0, -1}, // pointing away from the frustum, entirely out of range
			Range:     10,
			OuterCone: 0.8,
		},
	}

	got := CullLights(frustum, lights)
	if len(got) != 0 {
		t.Fatalf("CullLights() = %v, want none visible", got)
	}
}

func TestCullStaticSubmeshInstancesRejectsInstanceOutsideFrustum(t *testing.T) {
	frustum := identityFrustum(t)

	meshes := []framepacket.MeshData{
		{BoundsMin: [3]float32{-1, -1, -1}, BoundsMax: [3]float32{1, 1, 1}},
	}
	submeshes := []framepacket.SubmeshData{
		{MeshLocalIdx: 0, BoundsMin: [3]float32{-1, -1, -1}, BoundsMax: [3]float32{1, 1, 1}},
	}

	identity := [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	farAway := identity
	farAway[12], farAway[13], farAway[14] = 1e6, 1e6, 1e6

	instances := []framepacket.InstanceData{
		{SubmeshLocalIdx: 0, LocalToWorldMtx: identity}, // at origin, inside frustum
		{SubmeshLocalIdx: 0, LocalToWorldMtx: farAway},  // far outside
	}

	got := CullStaticSubmeshInstances(frustum, meshes, submeshes, instances)
	if len(got) != 1 || got[0].InstanceIdx != 0 {
		t.Fatalf("CullStaticSubmeshInstances() = %+v, want only instance 0", got)
	}
}

func TestCullStaticSubmeshInstancesSortedByInstanceThenSubmesh(t *testing.T) {
	frustum := identityFrustum(t)

	meshes := []framepacket.MeshData{
		{BoundsMin: [3]float32{-1, -1, -1}, BoundsMax: [3]float32{1, 1, 1}},
	}
	submeshes := []framepacket.SubmeshData{
		{MeshLocalIdx: 0, BoundsMin: [3]float32{-1, -1, -1}, BoundsMax: [3]float32{1, 1, 1}},
		{MeshLocalIdx: 0, BoundsMin: [3]float32{-1, -1, -1}, BoundsMax: [3]float32{1, 1, 1}},
	}

	identity := [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	instances := []framepacket.InstanceData{
		{SubmeshLocalIdx: 1, LocalToWorldMtx: identity},
		{SubmeshLocalIdx: 0, LocalToWorldMtx: identity},
	}

	got := CullStaticSubmeshInstances(frustum, meshes, submeshes, instances)
	if len(got) != 2 {
		t.Fatalf("got %d visible instances, want 2", len(got))
	}
	if got[0].InstanceIdx != 0 || got[1].InstanceIdx != 1 {
		t.Fatalf("CullStaticSubmeshInstances() not sorted by InstanceIdx: %+v", got)
	}
}
