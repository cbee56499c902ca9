package shadow

import (
	_ "embed"
	"encoding/binary"
	"math"
)

// MaxCascadeCount is the fixed slice count of the DirectionalShadowMapArray
// texture, pinned by the shared shader-interop definition (§A.6.3).
const MaxCascadeCount = 4

// MaxPerLightShadowMapCount is the maximum number of atlas cells a single
// punctual light may occupy: up to 6 for a point light (one per cube face),
// 1 for a spot light.
const MaxPerLightShadowMapCount = 6

// GPUCascadeDataSource is the canonical WGSL definition of the CascadeData
// struct. Matches GPUCascadeData layout exactly (96 bytes, std430 aligned).
//
//go:embed assets/cascade_data.wgsl
var GPUCascadeDataSource string

// GPUCascadeData is the GPU-aligned per-cascade record written into the
// cascade storage buffer consumed by the shadow and opaque passes.
// Matches the WGSL CascadeData struct layout exactly (see
// GPUCascadeDataSource). Size: 96 bytes.
//
// Layout:
//
//	mat4x4<f32> light_vp        (64 bytes, offset  0)
//	f32         split_far       ( 4 bytes, offset 64): view-space far boundary of this cascade
//	f32         texel_size      ( 4 bytes, offset 68): cascade ortho width / cascade resolution, world units per texel at this cascade's scale
//	f32         bias            ( 4 bytes, offset 72)
//	f32         normal_bias     ( 4 bytes, offset 76)
//	vec3<f32>   _pad            (12 bytes, offset 80)
//	f32         _pad2           ( 4 bytes, offset 92)
type GPUCascadeData struct {
	LightVP    [16]float32
	SplitFar   float32
	TexelSize  float32
	Bias       float32
	NormalBias float32
}

// Size returns the marshaled size of GPUCascadeData in bytes, including
// trailing padding to a 16-byte-aligned 96-byte stride.
func (c *GPUCascadeData) Size() int {
	return 96
}

// Marshal serializes GPUCascadeData into a 96-byte little-endian buffer.
func (c *GPUCascadeData) Marshal() []byte {
	buf := make([]byte, 96)
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(c.LightVP[i]))
	}
	binary.LittleEndian.PutUint32(buf[64:68], math.Float32bits(c.SplitFar))
	binary.LittleEndian.PutUint32(buf[68:72], math.Float32bits(c.TexelSize))
	binary.LittleEndian.PutUint32(buf[72:76], math.Float32bits(c.Bias))
	binary.LittleEndian.PutUint32(buf[76:80], math.Float32bits(c.NormalBias))
	return buf
}

// GPUAtlasCellDataSource is the canonical WGSL definition of the
// AtlasCellData struct. Matches GPUAtlasCellData layout exactly (96 bytes).
//
//go:embed assets/atlas_cell_data.wgsl
var GPUAtlasCellDataSource string

// GPUAtlasCellData is the GPU-aligned per-cell record for the punctual
// shadow atlas, one per occupied cell, indexed by the light's assigned cell
// index (§A.4.4.2/§A.4.4.3).
//
// Layout:
//
//	mat4x4<f32> light_vp    (64 bytes, offset  0)
//	vec4<f32>   rect        (16 bytes, offset 64): atlas-space (u, v, width, height) in [0, 1]
//	f32         bias        ( 4 bytes, offset 80)
//	f32         normal_bias ( 4 bytes, offset 84)
//	u32         light_index ( 4 bytes, offset 88)
//	u32         valid       ( 4 bytes, offset 92): 1 if this cell is occupied this frame
type GPUAtlasCellData struct {
	LightVP    [16]float32
	Rect       [4]float32
	Bias       float32
	NormalBias float32
	LightIndex uint32
	Valid      uint32
}

// Size returns the marshaled size of GPUAtlasCellData in bytes.
func (c *GPUAtlasCellData) Size() int {
	return 96
}

// Marshal serializes GPUAtlasCellData into a 96-byte little-endian buffer.
func (c *GPUAtlasCellData) Marshal() []byte {
	buf := make([]byte, 96)
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(c.LightVP[i]))
	}
	off := 64
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(c.Rect[i]))
		off += 4
	}
	binary.LittleEndian.PutUint32(buf[80:84], math.Float32bits(c.Bias))
	binary.LittleEndian.PutUint32(buf[84:88], math.Float32bits(c.NormalBias))
	binary.LittleEndian.PutUint32(buf[88:92], c.LightIndex)
	binary.LittleEndian.PutUint32(buf[92:96], c.Valid)
	return buf
}
