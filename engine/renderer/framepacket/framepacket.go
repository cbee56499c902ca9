// Package framepacket holds the position-independent snapshot of scene state
// that the game thread hands to the render thread once per frame.
//
// A FramePacket never stores live pointers into game-thread state: every
// cross-reference is a local index into one of the packet's own slices, so
// the packet is safe to read from the render thread while the game thread is
// already extracting the next one. Ring holds the fixed N=2 packets this
// module cycles through and enforces that a slot is only reused once its
// prior occupant's GPU work has retired.
package framepacket

import (
	"github.com/kestrel-games/scenerender/config"
	"github.com/kestrel-games/scenerender/engine/camera"
	"github.com/kestrel-games/scenerender/engine/light"
	"github.com/kestrel-games/scenerender/engine/model"
)

// IndexFormat mirrors the GPU index buffer element width for a mesh.
type IndexFormat int

const (
	IndexFormatUint16 IndexFormat = iota
	IndexFormatUint32
)

// LightData is the extracted, GPU-relevant snapshot of one registered light.
type LightData struct {
	Color     [3]float32
	Intensity float32

	Direction [3]float32
	Position  [3]float32

	Type      light.LightType
	Range     float32
	InnerCone float32
	OuterCone float32

	CastsShadow      bool
	ShadowNearPlane  float32
	ShadowDepthBias  float32
	ShadowNormalBias float32
	// ShadowExtension pushes the far cascade boundary out beyond the camera's
	// own far plane for lights that want shadows to reach further than the
	// visible frustum (e.g. long shadows at grazing sun angles).
	ShadowExtension float32

	// LocalToWorldNoScale is the light's world transform with scale divided
	// out, needed to derive an unskewed direction/position pair from a
	// transform component without re-deriving it from the game-thread object.
	LocalToWorldNoScale [16]float32
}

// MeshData is the extracted, immutable-after-upload geometry a submesh
// references. Buffer fields are local indices into FramePacket.Buffers.
type MeshData struct {
	PosBufLocalIdx  int
	NormBufLocalIdx int
	TanBufLocalIdx  int
	UVBufLocalIdx   int
	IdxBufLocalIdx  int
	VertexCount     int
	BoundsMin       [3]float32
	BoundsMax       [3]float32
	IndexFormat     IndexFormat
}

// SubmeshData is one draw range within a mesh, with its own material slot and
// tight AABB for per-submesh culling.
type SubmeshData struct {
	MeshLocalIdx     int
	BaseVertex       int32
	FirstIndex       uint32
	IndexCount       uint32
	MaterialLocalIdx uint32
	BoundsMin        [3]float32
	BoundsMax        [3]float32
}

// InstanceData places one submesh in the world. A StaticMeshComponent with
// three submeshes produces three InstanceData entries sharing a transform.
type InstanceData struct {
	SubmeshLocalIdx int
	LocalToWorldMtx [16]float32
}

// CameraData is the extracted per-camera view/projection state for one
// active render view this frame.
type CameraData struct {
	Position [3]float32
	Right    [3]float32
	Up       [3]float32
	Forward  [3]float32

	NearPlane float32
	FarPlane  float32

	Type        camera.ProjectionType
	FovVertical float32
	OrthoSize   float32

	// Viewport is the normalized (x, y, width, height) rect this camera
	// renders into.
	Viewport [4]float32

	// RenderTargetLocalIdx indexes FramePacket.RenderTargets; it names the
	// camera's override target, or the main swap-chain-backed target if the
	// camera has none of its own.
	RenderTargetLocalIdx int
}

// NodeAnimationData locates one animated skeleton node's keyframe ranges
// within the packet's flat keyframe arrays.
type NodeAnimationData struct {
	PosKeyBeginLocalIdx int
	PosKeyCount         int

	RotKeyBeginLocalIdx int
	RotKeyCount         int

	ScaleKeyBeginLocalIdx int
	ScaleKeyCount         int

	// NodeIdx is the node's index within its own skeleton, before being
	// offset by SkinnedMeshData.SkeletonBeginLocalIdx.
	NodeIdx int
}

// SkeletonNodeData is one bind-pose node in a flattened skeleton hierarchy.
type SkeletonNodeData struct {
	Transform [16]float32
	// ParentIdx is relative to the skeleton's own node range (add
	// SkinnedMeshData.SkeletonBeginLocalIdx to resolve it); -1 marks a root.
	ParentIdx int32
}

// BoneData pairs a skeleton node with the inverse-bind matrix that maps mesh
// space into that bone's space.
type BoneData struct {
	OffsetMtx [16]float32
	// SkeletonNodeIdx is relative to the skeleton's own node range.
	SkeletonNodeIdx int
}

// SkinnedMeshData is the extracted state of one SkinnedMeshComponent: which
// mesh it skins, which animation it's currently sampling, and where its
// per-frame bone matrices land.
type SkinnedMeshData struct {
	MeshDataLocalIdx int

	// OriginalVertexBufLocalIdx, OriginalNormalBufLocalIdx, and
	// OriginalTangentBufLocalIdx point at the pre-skin attribute buffers the
	// skinning compute pass reads from; the referenced MeshData's own
	// buffers hold the post-skin output the rest of the pipeline draws from.
	OriginalVertexBufLocalIdx   int
	OriginalNormalBufLocalIdx   int
	OriginalTangentBufLocalIdx int
	BoneWeightBufLocalIdx       int
	BoneIndexBufLocalIdx        int
	BoneMatrixBufLocalIdx       int

	CurAnimationTime float32

	NodeAnimBeginLocalIdx int
	NodeAnimCount         int

	SkeletonBeginLocalIdx int
	SkeletonSize          int

	BoneBeginLocalIdx int
	BoneCount         int
}

// LineGizmoVertex is one vertex of a debug line-list draw, colored by index
// into FramePacket.GizmoColors rather than carrying its own RGBA.
type LineGizmoVertex struct {
	Position [3]float32
	ColorIdx uint32
}

// FramePacket is the render thread's entire view of one frame's scene state.
// Every slice is cleared (not reallocated) by reset so steady-state frames
// reuse last frame's backing arrays.
type FramePacket struct {
	// Buffers and Textures are shared-ownership GPU resource handles kept
	// alive for the duration this packet is in flight; the concrete handle
	// type is left to the caller (buffer/texture pointers, bind group
	// providers, whatever the render manager hands out) since this package
	// has no GPU dependency of its own.
	Buffers  []any
	Textures []any

	Lights    []LightData
	Meshes    []MeshData
	Submeshes []SubmeshData
	Instances []InstanceData
	Cameras   []CameraData

	// RenderTargets are shared-ownership render target handles referenced by
	// CameraData.RenderTargetLocalIdx.
	RenderTargets []any

	PositionKeys []model.VectorKeyframe
	RotationKeys []model.QuaternionKeyframe
	ScalingKeys  []model.VectorKeyframe

	NodeAnimations []NodeAnimationData
	SkeletonNodes  []SkeletonNodeData
	Bones          []BoneData
	SkinnedMeshes  []SkinnedMeshData

	GizmoColors       [][4]float32
	LineGizmoVertices []LineGizmoVertex

	// Settings is a snapshot taken at extraction time (config.RenderSettings
	// is otherwise mutated live by the host application).
	Settings config.RenderSettings
}

// reset clears every slice to length zero without discarding its backing
// array, and zeroes the settings snapshot. Called once per Ring.Acquire.
func (p *FramePacket) reset() {
	p.Buffers = p.Buffers[:0]
	p.Textures = p.Textures[:0]
	p.Lights = p.Lights[:0]
	p.Meshes = p.Meshes[:0]
	p.Submeshes = p.Submeshes[:0]
	p.Instances = p.Instances[:0]
	p.Cameras = p.Cameras[:0]
	p.RenderTargets = p.RenderTargets[:0]
	p.PositionKeys = p.PositionKeys[:0]
	p.RotationKeys = p.RotationKeys[:0]
	p.ScalingKeys = p.ScalingKeys[:0]
	p.NodeAnimations = p.NodeAnimations[:0]
	p.SkeletonNodes = p.SkeletonNodes[:0]
	p.Bones = p.Bones[:0]
	p.SkinnedMeshes = p.SkinnedMeshes[:0]
	p.GizmoColors = p.GizmoColors[:0]
	p.LineGizmoVertices = p.LineGizmoVertices[:0]
	p.Settings = config.RenderSettings{}
}

// KeepAlive records a GPU resource handle (a buffer, texture, render target,
// bind group provider, ...) referenced by this frame so it is not released
// until the packet's retirement fence signals, even if the game-thread
// object that owns it is unregistered mid-flight.
func (p *FramePacket) KeepAlive(handle any) {
	p.Buffers = append(p.Buffers, handle)
}

// AddLight appends a light and returns its local index.
func (p *FramePacket) AddLight(l LightData) int {
	p.Lights = append(p.Lights, l)
	return len(p.Lights) - 1
}

// AddMesh appends a mesh and returns its local index, resolving repeated
// references to the same game-thread Mesh to the same local index is the
// extraction loop's responsibility, not this method's.
func (p *FramePacket) AddMesh(m MeshData) int {
	p.Meshes = append(p.Meshes, m)
	return len(p.Meshes) - 1
}

// AddSubmesh appends a submesh and returns its local index.
func (p *FramePacket) AddSubmesh(s SubmeshData) int {
	p.Submeshes = append(p.Submeshes, s)
	return len(p.Submeshes) - 1
}

// AddInstance appends an instance and returns its local index.
func (p *FramePacket) AddInstance(i InstanceData) int {
	p.Instances = append(p.Instances, i)
	return len(p.Instances) - 1
}

// AddCamera appends a camera and returns its local index.
func (p *FramePacket) AddCamera(c CameraData) int {
	p.Cameras = append(p.Cameras, c)
	return len(p.Cameras) - 1
}
