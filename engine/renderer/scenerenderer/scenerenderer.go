// Package scenerenderer implements the two-phase extract/render contract:
// ExtractCurrentState snapshots a Scene's game-thread state into a
// FramePacket, and SceneRenderer.Render consumes that packet to cull what
// the frame actually needs before delegating to the scene's own GPU-resident
// shadow and draw pipeline.
//
// The live scene already drives its opaque draws and skinning through GPU
// compute (per-instance indirect args written by a frustum-culling compute
// pass, see scene.PrepareCompute), so this package does not re-submit that
// work. What it adds is the CPU-side visibility pass the GPU path has no
// equivalent for: deciding which punctual lights are even worth the cost of
// a shadow atlas cell this frame, and producing a position-independent
// snapshot of scene state for the FramePacket ring the render thread
// otherwise never touches.
package scenerenderer

import (
	"errors"
	"log/slog"
	"math"
	"sync/atomic"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/kestrel-games/scenerender/common"
	"github.com/kestrel-games/scenerender/config"
	"github.com/kestrel-games/scenerender/engine/camera"
	"github.com/kestrel-games/scenerender/engine/game_object"
	"github.com/kestrel-games/scenerender/engine/light"
	"github.com/kestrel-games/scenerender/engine/model"
	"github.com/kestrel-games/scenerender/engine/renderer/culling"
	"github.com/kestrel-games/scenerender/engine/renderer/framepacket"
	"github.com/kestrel-games/scenerender/engine/renderer/rendermanager"
	"github.com/kestrel-games/scenerender/engine/scene"
	"github.com/kestrel-games/scenerender/internal/enginelog"
	"github.com/kestrel-games/scenerender/rendererr"
)

var pkgLogger atomic.Pointer[slog.Logger]

type loggerSubscriber struct{}

func (loggerSubscriber) SetLogger(l *slog.Logger) { pkgLogger.Store(l) }

func init() {
	enginelog.Subscribe(loggerSubscriber{})
}

var errNoCamera = errors.New("scene has no active camera")

// referenceTargetWidth/Height size the transient render targets requested
// for settings-gated passes (pre-pass, SSAO). The live Scene has no
// swap-chain extent accessor of its own, so this package uses a fixed
// reference resolution until a real one is threaded through; a viewport-
// relative pass would need that plumbing before it could crop correctly.
const (
	referenceTargetWidth  = 1920
	referenceTargetHeight = 1080
)

// doneFence is an already-signaled framepacket.Fence. The render thread in
// this module is still single-goroutine and synchronous end to end (see
// engine.handleRender), so a packet's GPU work is always complete by the
// time Render returns; a real async fence belongs to whichever future
// change pipelines frame N+1's extraction against frame N's GPU submission.
type doneFence struct{}

func (doneFence) Signaled() bool { return true }
func (doneFence) Wait()          {}

// SceneRenderer owns the FramePacket ring and RenderManager for one
// renderer, and runs the extract-cull-shadow sequence once per scene per
// frame.
type SceneRenderer struct {
	ring *framepacket.Ring
	rm   rendermanager.RenderManager

	// lastLights mirrors the order lights were appended to the most recently
	// extracted packet, so Render can map a culled light index back to the
	// live light.Light it came from without re-walking the scene.
	lastLights []light.Light
}

// NewSceneRenderer constructs a SceneRenderer backed by rm.
func NewSceneRenderer(rm rendermanager.RenderManager) *SceneRenderer {
	return &SceneRenderer{ring: framepacket.NewRing(), rm: rm}
}

// ExtractCurrentState walks s's current lights, camera, and objects into a
// FramePacket acquired from the ring, blocking if necessary until the
// packet's prior occupant has retired. The returned function must be called
// with the fence covering this frame's GPU work once it has been submitted.
func (sr *SceneRenderer) ExtractCurrentState(s scene.Scene) (*framepacket.FramePacket, func(framepacket.Fence)) {
	pkt, retire := sr.ring.Acquire()

	lights := s.Lights()
	sr.lastLights = lights
	for _, l := range lights {
		pkt.AddLight(extractLight(l))
	}

	if cam := s.Camera(); cam != nil {
		pkt.AddCamera(extractCamera(cam))
	}

	extractObjects(pkt, s.Objects())

	pkt.Settings = s.Settings()

	return pkt, retire
}

func extractLight(l light.Light) framepacket.LightData {
	return framepacket.LightData{
		Color:            l.Color(),
		Intensity:        l.Intensity(),
		Direction:        l.Direction(),
		Position:         l.Position(),
		Type:             l.Type(),
		Range:            l.Range(),
		InnerCone:        l.InnerCone(),
		OuterCone:        l.OuterCone(),
		CastsShadow:      l.CastsShadows(),
		ShadowNearPlane:  l.ShadowNearPlane(),
		ShadowDepthBias:  l.ShadowDepthBias(),
		ShadowNormalBias: l.ShadowNormalBias(),
		ShadowExtension:  l.ShadowExtension(),
	}
}

func extractCamera(cam camera.Camera) framepacket.CameraData {
	pos, right, up, forward := cameraAxes(cam)

	return framepacket.CameraData{
		Position:             pos,
		Right:                right,
		Up:                   up,
		Forward:              forward,
		NearPlane:            cam.Near(),
		FarPlane:             cam.Far(),
		Type:                 cam.Type(),
		FovVertical:          cam.Fov(),
		OrthoSize:            cam.OrthoSize(),
		Viewport:             cam.Viewport(),
		RenderTargetLocalIdx: 0,
	}
}

// cameraAxes derives the world-space position and right/up/forward basis a
// camera's controller implies, mirroring common.LookAt's own axis
// convention (forward is center-eye normalized, pointing from the eye toward
// the target; LookAt stores its negation as the view's z axis).
func cameraAxes(cam camera.Camera) (pos, right, up, forward [3]float32) {
	ctrl := cam.Controller()
	if ctrl == nil {
		ux, uy, uz := cam.Up()
		return [3]float32{}, [3]float32{1, 0, 0}, [3]float32{ux, uy, uz}, [3]float32{0, 0, -1}
	}

	ex, ey, ez := ctrl.Position()
	tx, ty, tz := ctrl.Target()
	wux, wuy, wuz := cam.Up()

	fwd := normalizeVec3([3]float32{tx - ex, ty - ey, tz - ez})
	rt := normalizeVec3(crossVec3(fwd, [3]float32{wux, wuy, wuz}))
	upv := crossVec3(rt, fwd)

	return [3]float32{ex, ey, ez}, rt, upv, fwd
}

func crossVec3(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func normalizeVec3(v [3]float32) [3]float32 {
	lenSq := v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
	if lenSq == 0 {
		return v
	}
	inv := float32(1.0 / math.Sqrt(float64(lenSq)))
	return [3]float32{v[0] * inv, v[1] * inv, v[2] * inv}
}

// meshEntry records where one distinct model.Model's mesh and submeshes
// landed in the packet, so every instance of that model reuses the same
// local indices instead of re-adding identical geometry per object.
type meshEntry struct {
	submeshLocalIdx []int
}

func extractObjects(pkt *framepacket.FramePacket, objects []game_object.GameObject) {
	cache := make(map[model.Model]meshEntry)

	for _, obj := range objects {
		if !obj.Enabled() {
			continue
		}
		mdl := obj.Model()
		if mdl == nil {
			continue
		}

		entry, ok := cache[mdl]
		if !ok {
			entry = meshEntry{submeshLocalIdx: addModelGeometry(pkt, mdl)}
			cache[mdl] = entry
		}

		pos, scale, rot, _ := obj.TransformData()
		var world [16]float32
		common.BuildModelMatrix(world[:], pos[0], pos[1], pos[2], rot[0], rot[1], rot[2], scale[0], scale[1], scale[2])

		for _, subIdx := range entry.submeshLocalIdx {
			pkt.AddInstance(framepacket.InstanceData{SubmeshLocalIdx: subIdx, LocalToWorldMtx: world})
		}
	}
}

// addModelGeometry adds one MeshData and one SubmeshData per mdl.Submeshes()
// entry, returning their local indices. Falls back to a single submesh
// spanning the whole mesh when mdl carries no submesh table.
func addModelGeometry(pkt *framepacket.FramePacket, mdl model.Model) []int {
	boundsMin, boundsMax := mdl.Bounds()

	// The live mesh provider bundles every GPU buffer a mesh needs (position,
	// normal, tangent, UV, index) behind a single BindGroupProvider rather
	// than exposing them as separate handles, so all five buffer slots below
	// reference the same kept-alive handle.
	bufIdx := len(pkt.Buffers)
	pkt.KeepAlive(mdl.MeshProvider())

	meshLocalIdx := pkt.AddMesh(framepacket.MeshData{
		PosBufLocalIdx:  bufIdx,
		NormBufLocalIdx: bufIdx,
		TanBufLocalIdx:  bufIdx,
		UVBufLocalIdx:   bufIdx,
		IdxBufLocalIdx:  bufIdx,
		BoundsMin:       boundsMin,
		BoundsMax:       boundsMax,
		IndexFormat:     framepacket.IndexFormat(mdl.IndexFormat()),
	})

	submeshes := mdl.Submeshes()
	if len(submeshes) == 0 {
		return []int{pkt.AddSubmesh(framepacket.SubmeshData{
			MeshLocalIdx: meshLocalIdx,
			IndexCount:   uint32(mdl.IndexCount()),
			BoundsMin:    boundsMin,
			BoundsMax:    boundsMax,
		})}
	}

	idxs := make([]int, len(submeshes))
	for i, sub := range submeshes {
		idxs[i] = pkt.AddSubmesh(framepacket.SubmeshData{
			MeshLocalIdx:     meshLocalIdx,
			BaseVertex:       sub.BaseVertex,
			FirstIndex:       sub.FirstIndex,
			IndexCount:       sub.IndexCount,
			MaterialLocalIdx: uint32(sub.MaterialSlot),
			BoundsMin:        sub.BoundsMin,
			BoundsMax:        sub.BoundsMax,
		})
	}
	return idxs
}

// Render extracts s's current state, culls it against the active camera's
// frustum, narrows the scene's shadow casters to punctual lights actually
// visible this frame, and delegates the GPU-resident shadow work to the
// scene itself (PrepareShadows). Draw calls are not issued here; the
// engine's render loop issues them afterwards.
func (sr *SceneRenderer) Render(s scene.Scene) error {
	cam := s.Camera()
	if cam == nil {
		return rendererr.NewValidation("scene-renderer", errNoCamera)
	}

	pkt, retire := sr.ExtractCurrentState(s)

	vp := cam.ViewProjectionMatrix()
	frustum := common.ExtractFrustumFromMatrix(vp[:])

	visibleLights := culling.CullLights(frustum, pkt.Lights)
	visibleSet := make(map[int]bool, len(visibleLights))
	for _, idx := range visibleLights {
		visibleSet[idx] = true
	}

	restore := sr.hideCulledShadowCasters(visibleSet)
	s.PrepareShadows()
	restore()

	visibleInstances := culling.CullStaticSubmeshInstances(frustum, pkt.Meshes, pkt.Submeshes, pkt.Instances)
	pkgLogger.Load().Debug("frame culled",
		"lights_total", len(pkt.Lights), "lights_visible", len(visibleLights),
		"instances_total", len(pkt.Instances), "instances_visible", len(visibleInstances))

	sr.rm.BeginNewFrame()
	sr.requestSettingsGatedTargets(pkt.Settings, len(visibleInstances) > 0)
	for _, buf := range pkt.Buffers {
		sr.rm.KeepAliveWhileInUse(buf)
	}

	retire(doneFence{})

	return nil
}

// hideCulledShadowCasters temporarily disables shadow casting on punctual
// lights absent from visibleSet (indexed as they were appended to the
// packet, i.e. the same order as sr.lastLights) so PrepareShadows skips
// rendering an atlas cell nothing in the frustum could see. Directional
// lights are left untouched: CullLights always reports them visible, and
// their single cascade array covers the whole frustum rather than one
// light's local footprint.
func (sr *SceneRenderer) hideCulledShadowCasters(visibleSet map[int]bool) func() {
	var hidden []light.Light
	for i, l := range sr.lastLights {
		if visibleSet[i] {
			continue
		}
		switch l.Type() {
		case light.LightTypePoint, light.LightTypeSpot:
			if l.CastsShadows() {
				l.SetCastsShadows(false)
				hidden = append(hidden, l)
			}
		}
	}

	return func() {
		for _, l := range hidden {
			l.SetCastsShadows(true)
		}
	}
}

// requestSettingsGatedTargets pulls a pooled scratch render target for
// every main-pass stage the scene's settings have enabled, so the transient
// pool ages and evicts them like any other resource even though the stages
// themselves (depth-normal pre-pass, SSAO) are not yet implemented. hasWork
// skips the request entirely for an empty frame.
func (sr *SceneRenderer) requestSettingsGatedTargets(settings config.RenderSettings, hasWork bool) {
	if !hasWork {
		return
	}

	if settings.DepthNormalPrePass {
		sr.acquireScratchTarget(wgpu.TextureFormatRGBA16Float)
	}
	if settings.SSAOEnabled {
		sr.acquireScratchTarget(wgpu.TextureFormatR32Float)
	}
}

func (sr *SceneRenderer) acquireScratchTarget(format wgpu.TextureFormat) {
	target, err := sr.rm.GetTemporaryRenderTarget(rendermanager.RenderTargetDesc{
		Width:       referenceTargetWidth,
		Height:      referenceTargetHeight,
		ColorFormat: format,
		SampleCount: 1,
	})
	if err != nil {
		pkgLogger.Load().Error("scratch render target unavailable", "error", err, "format", format)
		return
	}
	sr.rm.KeepAliveWhileInUse(target)
}
