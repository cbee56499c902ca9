package shadow

import (
	"sort"

	"github.com/cogentcore/webgpu/wgpu"
)

// atlasTierSizes is the cell count per quadtree tier, outermost (largest
// cells) to innermost (smallest): the 4 quadrants at level 0 are subdivided
// into 1, 2, 4, 8 cells respectively, giving 15 cells total across 4 size
// tiers (§A.4.4, ported from the original engine's fixed {1,2,4,8} cell
// pools).
var atlasTierSizes = [4]int{1, 2, 4, 8}

// DefaultAtlasSize is the default width/height in texels of the punctual
// shadow atlas texture.
const DefaultAtlasSize = 4096

// Cell is one allocation unit of the atlas: a square sub-rectangle at a
// given tier. Rect is in atlas-normalized [0,1] (u, v, width, height).
type Cell struct {
	Tier       int // 0 = largest (1 cell covers a whole quadrant), 3 = smallest (8 cells)
	Index      int // index within this tier, 0-based, filled left-to-right then top-to-bottom
	Rect       [4]float32
	LightIndex int  // -1 if unoccupied this frame
	CubeFace   int  // 0-5 for point lights, 0 for spot lights
	Occupied   bool
}

// PunctualShadowAtlas is a single square depth texture partitioned into a
// 2-level quadtree of Cells (§A.4.4.2).
type PunctualShadowAtlas struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
	size    uint32
	format  wgpu.TextureFormat

	cells [4][]Cell // cells[tier]
}

// NewPunctualShadowAtlas creates the backing depth texture and the fixed
// {1,2,4,8} cell layout.
func NewPunctualShadowAtlas(device *wgpu.Device, depthFormat wgpu.TextureFormat, size uint32) (*PunctualShadowAtlas, error) {
	tex, err := device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "punctual_shadow_atlas",
		Size: wgpu.Extent3D{
			Width:              size,
			Height:             size,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        depthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, err
	}

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, err
	}

	a := &PunctualShadowAtlas{texture: tex, view: view, size: size, format: depthFormat}
	a.buildCells()
	return a, nil
}

// buildCells lays out the quadtree: quadrant q in [0,3] occupies one quarter
// of the atlas; within quadrant q, tier q is subdivided into
// atlasTierSizes[q] cells filled left-to-right then top-to-bottom.
func (a *PunctualShadowAtlas) buildCells() {
	quadrantOrigins := [4][2]float32{{0, 0}, {0.5, 0}, {0, 0.5}, {0.5, 0.5}}

	for tier := 0; tier < 4; tier++ {
		count := atlasTierSizes[tier]
		perRow := 1
		for perRow*perRow < count {
			perRow++
		}
		cellSize := 0.5 / float32(perRow)

		cells := make([]Cell, count)
		qx, qy := quadrantOrigins[tier][0], quadrantOrigins[tier][1]
		for i := 0; i < count; i++ {
			row := i / perRow
			col := i % perRow
			cells[i] = Cell{
				Tier:       tier,
				Index:      i,
				Rect:       [4]float32{qx + float32(col)*cellSize, qy + float32(row)*cellSize, cellSize, cellSize},
				LightIndex: -1,
			}
		}
		a.cells[tier] = cells
	}
}

// Reset clears all cell occupancy for a new frame's allocation pass.
func (a *PunctualShadowAtlas) Reset() {
	for tier := range a.cells {
		for i := range a.cells[tier] {
			a.cells[tier][i].Occupied = false
			a.cells[tier][i].LightIndex = -1
		}
	}
}

// CandidateLight is one shadow-casting visible point/spot light considered
// for atlas allocation this frame (§A.4.4.2).
type CandidateLight struct {
	LightIndex     int
	BoundingRadius float32 // light's bounding-sphere radius (range, for point/spot)
	CameraDistance float32
	CubeFaceCount  int // 6 for point lights, 1 for spot lights
}

// AllocationResult records which atlas cells a light was assigned, in cube
// face order. Empty if the light did not fit (§A.4.4.2 step 4: it still
// lights the scene, just without a shadow).
type AllocationResult struct {
	LightIndex int
	Cells      []CellAssignment
}

// CellAssignment pairs an allocated cell with the cube face it represents
// (always 0 for spot lights).
type CellAssignment struct {
	Tier     int
	Index    int
	Rect     [4]float32
	CubeFace int
}

// importanceScale tunes how aggressively lights are pushed toward larger
// cells; see SPEC_FULL.md Part A.9 "Open questions" — this constant is the
// implementer-pinned value the spec explicitly calls out as needing golden
// images to finalize.
const importanceScale = 4.0

// Importance computes the screen-space importance metric used to pick a
// cell tier (§A.4.4.2 step 1): the ratio of bounding-sphere radius to camera
// distance, clamped to [0, 1] and scaled.
func Importance(boundingRadius, cameraDistance float32) float32 {
	if cameraDistance <= 0 {
		return 1
	}
	v := (boundingRadius / cameraDistance) * importanceScale
	if v > 1 {
		v = 1
	}
	if v < 0 {
		v = 0
	}
	return v
}

// Allocate assigns atlas cells to candidate lights, highest importance
// first, per §A.4.4.2: each light is assigned to the smallest tier whose
// cell size is still ≥ the light's importance threshold, filling cells
// left-to-right then top-to-bottom within a tier; a light needing multiple
// cube faces claims that many cells in the same tier. Lights that don't fit
// (tier capacity exhausted, or requested face count unavailable) are
// dropped and reported via the second return value.
func (a *PunctualShadowAtlas) Allocate(candidates []CandidateLight) (allocated []AllocationResult, dropped []int) {
	a.Reset()

	sorted := append([]CandidateLight(nil), candidates...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Importance(sorted[i].BoundingRadius, sorted[i].CameraDistance) > Importance(sorted[j].BoundingRadius, sorted[j].CameraDistance)
	})

	for _, c := range sorted {
		importance := Importance(c.BoundingRadius, c.CameraDistance)
		tier := tierForImportance(importance)

		faces := c.CubeFaceCount
		if faces < 1 {
			faces = 1
		}
		if faces > MaxPerLightShadowMapCount {
			faces = MaxPerLightShadowMapCount
		}

		assigned, ok := a.tryAllocateInTier(tier, c.LightIndex, faces)
		if !ok {
			// Fall back to progressively smaller tiers before giving up.
			for t := tier + 1; t < 4 && !ok; t++ {
				assigned, ok = a.tryAllocateInTier(t, c.LightIndex, faces)
			}
		}
		if !ok {
			dropped = append(dropped, c.LightIndex)
			continue
		}
		allocated = append(allocated, AllocationResult{LightIndex: c.LightIndex, Cells: assigned})
	}
	return allocated, dropped
}

// tierForImportance maps an importance value in [0,1] to the smallest tier
// (largest cells) whose cell size is still large enough: importance close
// to 1 wants tier 0 (largest), importance close to 0 is content with tier 3
// (smallest).
func tierForImportance(importance float32) int {
	switch {
	case importance >= 0.75:
		return 0
	case importance >= 0.5:
		return 1
	case importance >= 0.25:
		return 2
	default:
		return 3
	}
}

func (a *PunctualShadowAtlas) tryAllocateInTier(tier, lightIndex, faces int) ([]CellAssignment, bool) {
	if tier < 0 || tier > 3 {
		return nil, false
	}
	free := make([]int, 0, len(a.cells[tier]))
	for i, c := range a.cells[tier] {
		if !c.Occupied {
			free = append(free, i)
		}
	}
	if len(free) < faces {
		return nil, false
	}

	assignments := make([]CellAssignment, faces)
	for face := 0; face < faces; face++ {
		idx := free[face]
		a.cells[tier][idx].Occupied = true
		a.cells[tier][idx].LightIndex = lightIndex
		a.cells[tier][idx].CubeFace = face
		assignments[face] = CellAssignment{
			Tier:     tier,
			Index:    idx,
			Rect:     a.cells[tier][idx].Rect,
			CubeFace: face,
		}
	}
	return assignments, true
}

// TotalCells returns the total number of allocation units across all tiers
// (15, per the fixed {1,2,4,8} layout).
func (a *PunctualShadowAtlas) TotalCells() int {
	total := 0
	for _, cells := range a.cells {
		total += len(cells)
	}
	return total
}

// View returns the full atlas texture view, bound for sampling by the
// opaque pass.
func (a *PunctualShadowAtlas) View() *wgpu.TextureView { return a.view }

// Size returns the atlas texture's width/height in texels.
func (a *PunctualShadowAtlas) Size() uint32 { return a.size }

// Release frees the underlying GPU texture and view.
func (a *PunctualShadowAtlas) Release() {
	if a.view != nil {
		a.view.Release()
	}
	if a.texture != nil {
		a.texture.Release()
	}
}
