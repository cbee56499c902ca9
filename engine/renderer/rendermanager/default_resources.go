package rendermanager

import (
	"encoding/binary"
	"math"

	"github.com/kestrel-games/scenerender/common"
	"github.com/kestrel-games/scenerender/engine/model"
	bgp "github.com/kestrel-games/scenerender/engine/renderer/bind_group_provider"
	"github.com/kestrel-games/scenerender/engine/renderer/material"
)

func indicesToBytes(indices []uint32) []byte {
	out := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(out[i*4:], idx)
	}
	return out
}

func buildDefaultMaterial() material.Material {
	return material.NewMaterial(
		material.WithName("default"),
		material.WithBaseColor([4]float32{0.8, 0.8, 0.8, 1.0}),
		material.WithMetallic(0.0),
		material.WithRoughness(0.9),
		material.WithPipelineKey("Default"),
	)
}

// buildCubeMesh generates a unit cube with outward normals and per-face
// tangents, usable directly as a lit mesh.
func buildCubeMesh() model.Model {
	type face struct {
		positions [4][3]float32
		normal    [3]float32
		tangent   [4]float32
	}

	faces := []face{
		{positions: [4][3]float32{{0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}, {0.5, -0.5, 0.5}}, normal: [3]float32{1, 0, 0}, tangent: [4]float32{0, 0, 1, 1}},
		{positions: [4][3]float32{{-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5}, {-0.5, -0.5, -0.5}}, normal: [3]float32{-1, 0, 0}, tangent: [4]float32{0, 0, -1, 1}},
		{positions: [4][3]float32{{-0.5, 0.5, -0.5}, {-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}}, normal: [3]float32{0, 1, 0}, tangent: [4]float32{1, 0, 0, 1}},
		{positions: [4][3]float32{{-0.5, -0.5, 0.5}, {-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}}, normal: [3]float32{0, -1, 0}, tangent: [4]float32{1, 0, 0, 1}},
		{positions: [4][3]float32{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}}, normal: [3]float32{0, 0, 1}, tangent: [4]float32{1, 0, 0, 1}},
		{positions: [4][3]float32{{0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}}, normal: [3]float32{0, 0, -1}, tangent: [4]float32{-1, 0, 0, 1}},
	}
	uvs := [4][2]float32{{0, 1}, {0, 0}, {1, 0}, {1, 1}}

	vertices := make([]model.GPUVertex, 0, 24)
	for _, f := range faces {
		for i, pos := range f.positions {
			vertices = append(vertices, model.GPUVertex{
				Position: pos,
				Normal:   f.normal,
				TexCoord: uvs[i],
				Color:    [4]float32{1, 1, 1, 1},
				Tangent:  f.tangent,
			})
		}
	}

	indices := make([]uint32, 0, 36)
	for fi := range 6 {
		base := uint32(fi * 4)
		indices = append(indices, base+0, base+1, base+2, base+0, base+2, base+3)
	}

	return model.NewModel(
		model.WithName("DefaultCube"),
		model.WithMeshProvider(bgp.NewBindGroupProvider("default_cube_mesh")),
		model.WithVertexData(common.SliceToBytes(vertices)),
		model.WithIndexData(indicesToBytes(indices)),
		model.WithIndexCount(len(indices)),
		model.WithIndexFormat(model.IndexFormatUint32),
		model.WithBoundingRadius(float32(math.Sqrt(0.75))),
		model.WithRenderMaterials(buildDefaultMaterial()),
		model.WithMaterialSlotNames("default"),
		model.WithSubmeshes(model.Submesh{
			FirstIndex:   0,
			IndexCount:   uint32(len(indices)),
			MaterialSlot: 0,
			BoundsMin:    [3]float32{-0.5, -0.5, -0.5},
			BoundsMax:    [3]float32{0.5, 0.5, 0.5},
		}),
		model.WithBounds([3]float32{-0.5, -0.5, -0.5}, [3]float32{0.5, 0.5, 0.5}),
	)
}

// buildPlaneMesh generates a single-quad XZ plane of the given half-extent,
// normal facing +Y.
func buildPlaneMesh(halfExtent float32) model.Model {
	vertices := []model.GPUVertex{
		{Position: [3]float32{-halfExtent, 0, -halfExtent}, Normal: [3]float32{0, 1, 0}, TexCoord: [2]float32{0, 0}, Color: [4]float32{1, 1, 1, 1}, Tangent: [4]float32{1, 0, 0, 1}},
		{Position: [3]float32{halfExtent, 0, -halfExtent}, Normal: [3]float32{0, 1, 0}, TexCoord: [2]float32{1, 0}, Color: [4]float32{1, 1, 1, 1}, Tangent: [4]float32{1, 0, 0, 1}},
		{Position: [3]float32{halfExtent, 0, halfExtent}, Normal: [3]float32{0, 1, 0}, TexCoord: [2]float32{1, 1}, Color: [4]float32{1, 1, 1, 1}, Tangent: [4]float32{1, 0, 0, 1}},
		{Position: [3]float32{-halfExtent, 0, halfExtent}, Normal: [3]float32{0, 1, 0}, TexCoord: [2]float32{0, 1}, Color: [4]float32{1, 1, 1, 1}, Tangent: [4]float32{1, 0, 0, 1}},
	}
	indices := []uint32{0, 1, 2, 0, 2, 3}

	boundsMin := [3]float32{-halfExtent, 0, -halfExtent}
	boundsMax := [3]float32{halfExtent, 0, halfExtent}

	return model.NewModel(
		model.WithName("DefaultPlane"),
		model.WithMeshProvider(bgp.NewBindGroupProvider("default_plane_mesh")),
		model.WithVertexData(common.SliceToBytes(vertices)),
		model.WithIndexData(indicesToBytes(indices)),
		model.WithIndexCount(len(indices)),
		model.WithIndexFormat(model.IndexFormatUint32),
		model.WithBoundingRadius(halfExtent*float32(math.Sqrt2)),
		model.WithRenderMaterials(buildDefaultMaterial()),
		model.WithMaterialSlotNames("default"),
		model.WithSubmeshes(model.Submesh{
			FirstIndex:   0,
			IndexCount:   uint32(len(indices)),
			MaterialSlot: 0,
			BoundsMin:    boundsMin,
			BoundsMax:    boundsMax,
		}),
		model.WithBounds(boundsMin, boundsMax),
	)
}

// buildSphereMesh generates a UV sphere of the given radius, latitude ring
// count, and longitude segment count.
func buildSphereMesh(radius float32, rings, segments int) model.Model {
	var vertices []model.GPUVertex
	for r := 0; r <= rings; r++ {
		phi := math.Pi * float64(r) / float64(rings)
		y := float32(math.Cos(phi)) * radius
		ringRadius := float32(math.Sin(phi)) * radius

		for s := 0; s <= segments; s++ {
			theta := 2.0 * math.Pi * float64(s) / float64(segments)
			x := ringRadius * float32(math.Cos(theta))
			z := ringRadius * float32(math.Sin(theta))

			nx := float32(math.Sin(phi) * math.Cos(theta))
			ny := float32(math.Cos(phi))
			nz := float32(math.Sin(phi) * math.Sin(theta))

			tx := float32(-math.Sin(theta))
			tz := float32(math.Cos(theta))

			vertices = append(vertices, model.GPUVertex{
				Position: [3]float32{x, y, z},
				Normal:   [3]float32{nx, ny, nz},
				TexCoord: [2]float32{float32(s) / float32(segments), float32(r) / float32(rings)},
				Color:    [4]float32{1, 1, 1, 1},
				Tangent:  [4]float32{tx, 0, tz, 1},
			})
		}
	}

	var indices []uint32
	stride := segments + 1
	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			a := uint32(r*stride + s)
			b := uint32(r*stride + s + 1)
			c := uint32((r+1)*stride + s)
			d := uint32((r+1)*stride + s + 1)
			indices = append(indices, a, c, b, b, c, d)
		}
	}

	boundsMin := [3]float32{-radius, -radius, -radius}
	boundsMax := [3]float32{radius, radius, radius}

	return model.NewModel(
		model.WithName("DefaultSphere"),
		model.WithMeshProvider(bgp.NewBindGroupProvider("default_sphere_mesh")),
		model.WithVertexData(common.SliceToBytes(vertices)),
		model.WithIndexData(indicesToBytes(indices)),
		model.WithIndexCount(len(indices)),
		model.WithIndexFormat(model.IndexFormatUint32),
		model.WithBoundingRadius(radius),
		model.WithRenderMaterials(buildDefaultMaterial()),
		model.WithMaterialSlotNames("default"),
		model.WithSubmeshes(model.Submesh{
			FirstIndex:   0,
			IndexCount:   uint32(len(indices)),
			MaterialSlot: 0,
			BoundsMin:    boundsMin,
			BoundsMax:    boundsMax,
		}),
		model.WithBounds(boundsMin, boundsMax),
	)
}
