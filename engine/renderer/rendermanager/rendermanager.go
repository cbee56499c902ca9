// Package rendermanager owns the render thread's GPU-adjacent bookkeeping
// that doesn't belong to any one scene: a pool of transient render targets
// reused across frames, a frame index and command encoder source, the
// default cube/plane/sphere/material resources every scene can fall back
// on, and a keep-alive list that pins GPU handles referenced by in-flight
// frame packets until their fence retires.
package rendermanager

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/kestrel-games/scenerender/engine/model"
	"github.com/kestrel-games/scenerender/engine/renderer/framepacket"
	"github.com/kestrel-games/scenerender/engine/renderer/material"
	"github.com/kestrel-games/scenerender/internal/enginelog"
	"github.com/kestrel-games/scenerender/rendererr"
)

// pkgLogger holds this package's subscribed logger, refreshed whenever
// enginelog.SetLogger is called. Silent (nop) until then.
var pkgLogger atomic.Pointer[slog.Logger]

type loggerSubscriber struct{}

func (loggerSubscriber) SetLogger(l *slog.Logger) { pkgLogger.Store(l) }

func init() {
	enginelog.Subscribe(loggerSubscriber{})
}

// MaxFramesInFlight bounds how many frames' worth of GPU work can be
// in-flight at once, matching framepacket.Count.
const MaxFramesInFlight = framepacket.Count

// maxTempRenderTargetAge is how many BeginNewFrame calls a pooled render
// target may go unused before it is released.
const maxTempRenderTargetAge = 10

// RenderManager is the render thread's per-application (not per-scene)
// resource manager: default meshes and materials, a transient render target
// pool, buffer/texture upload helpers, and the keep-alive list that defers
// releasing GPU handles still referenced by an in-flight FramePacket.
type RenderManager interface {
	// BeginNewFrame advances the frame index, ages the render target pool,
	// and evicts targets that have gone unused past maxTempRenderTargetAge.
	BeginNewFrame()

	// CurrentFrameIndex returns the current frame's slot, in
	// [0, MaxFramesInFlight).
	CurrentFrameIndex() int

	// AcquireCommandList returns a fresh command encoder for this frame's
	// render thread work.
	AcquireCommandList() (*wgpu.CommandEncoder, error)

	// GetTemporaryRenderTarget returns a pooled render target matching desc,
	// creating one if the pool holds none free. The caller must not retain
	// the pointer past the frame it was acquired in without re-requesting it
	// next frame, since the pool may reuse it once its age expires.
	GetTemporaryRenderTarget(desc RenderTargetDesc) (*RenderTarget, error)

	// LoadReadonlyTexture uploads a fully-decoded RGBA8 image as an
	// immutable sampled texture with a full mip chain generated on the CPU.
	LoadReadonlyTexture(pixels []byte, width, height int) (*wgpu.Texture, *wgpu.TextureView, error)

	// UpdateBuffer writes data into dst starting at offset, the one path
	// every buffer mutation in a frame should go through so uploads are
	// attributable to the manager instead of scattered queue.WriteBuffer
	// call sites.
	UpdateBuffer(dst *wgpu.Buffer, offset uint64, data []byte)

	// KeepAliveWhileInUse pins handle (a buffer, texture, bind group
	// provider, ...) until the current frame's slot comes back around,
	// MaxFramesInFlight frames from now.
	KeepAliveWhileInUse(handle any)

	Device() *wgpu.Device
	Queue() *wgpu.Queue

	DefaultMaterial() material.Material
	CubeMesh() model.Model
	PlaneMesh() model.Model
	SphereMesh() model.Model
}

type renderManagerImpl struct {
	mu sync.Mutex

	device *wgpu.Device
	queue  *wgpu.Queue

	frameIndex int

	tempTargets map[RenderTargetDesc][]*tempRenderTargetRecord
	// keepAlive[i] holds handles kept alive for frame slot i until that slot
	// is reclaimed by BeginNewFrame, MaxFramesInFlight frames later.
	keepAlive [MaxFramesInFlight][]any

	defaultMaterial material.Material
	cubeMesh        model.Model
	planeMesh       model.Model
	sphereMesh      model.Model
}

// NewRenderManager constructs a RenderManager bound to device/queue and
// builds its default resources immediately.
func NewRenderManager(device *wgpu.Device, queue *wgpu.Queue, opts ...RenderManagerOption) RenderManager {
	m := &renderManagerImpl{
		device:      device,
		queue:       queue,
		tempTargets: make(map[RenderTargetDesc][]*tempRenderTargetRecord),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.defaultMaterial = buildDefaultMaterial()
	m.cubeMesh = buildCubeMesh()
	m.planeMesh = buildPlaneMesh(1.0)
	m.sphereMesh = buildSphereMesh(0.5, 16, 32)

	return m
}

func (m *renderManagerImpl) BeginNewFrame() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.frameIndex++
	// The slot this frame now occupies last belonged to frame
	// m.frameIndex-MaxFramesInFlight, whose fence has long since signaled, so
	// it is safe to reclaim its keep-alive list for this frame's handles.
	slot := m.frameIndex % MaxFramesInFlight
	m.keepAlive[slot] = m.keepAlive[slot][:0]

	for desc, records := range m.tempTargets {
		kept := records[:0]
		for _, rec := range records {
			rec.ageFrames++
			if rec.ageFrames > maxTempRenderTargetAge {
				rec.target.release()
				pkgLogger.Load().Debug("transient render target evicted", "width", desc.Width, "height", desc.Height, "age", rec.ageFrames)
				continue
			}
			kept = append(kept, rec)
		}
		if len(kept) == 0 {
			delete(m.tempTargets, desc)
		} else {
			m.tempTargets[desc] = kept
		}
	}
}

func (m *renderManagerImpl) CurrentFrameIndex() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frameIndex % MaxFramesInFlight
}

func (m *renderManagerImpl) AcquireCommandList() (*wgpu.CommandEncoder, error) {
	enc, err := m.device.CreateCommandEncoder(nil)
	if err != nil {
		renderErr := rendererr.New(rendererr.Fatal, err)
		pkgLogger.Load().Error("command list acquisition failed", "error", renderErr)
		return nil, renderErr
	}
	return enc, nil
}

func (m *renderManagerImpl) GetTemporaryRenderTarget(desc RenderTargetDesc) (*RenderTarget, error) {
	m.mu.Lock()
	records, ok := m.tempTargets[desc]
	if ok {
		for _, rec := range records {
			if rec.ageFrames > 0 {
				rec.ageFrames = 0
				m.mu.Unlock()
				return rec.target, nil
			}
		}
	}
	m.mu.Unlock()

	target, err := m.createRenderTarget(desc)
	if err != nil {
		renderErr := rendererr.New(rendererr.Fatal, err)
		pkgLogger.Load().Error("transient render target creation failed", "error", renderErr, "width", desc.Width, "height", desc.Height)
		return nil, renderErr
	}

	m.mu.Lock()
	m.tempTargets[desc] = append(m.tempTargets[desc], &tempRenderTargetRecord{target: target, ageFrames: 0})
	m.mu.Unlock()

	return target, nil
}

func (m *renderManagerImpl) createRenderTarget(desc RenderTargetDesc) (*RenderTarget, error) {
	colorTex, err := m.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Transient Render Target Color",
		Size: wgpu.Extent3D{
			Width:              uint32(desc.Width),
			Height:             uint32(desc.Height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   desc.SampleCount,
		Dimension:     wgpu.TextureDimension2D,
		Format:        desc.ColorFormat,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, fmt.Errorf("rendermanager: create transient color texture: %w", err)
	}
	colorView, err := colorTex.CreateView(nil)
	if err != nil {
		colorTex.Release()
		return nil, fmt.Errorf("rendermanager: create transient color view: %w", err)
	}

	rt := &RenderTarget{Desc: desc, Color: colorTex, ColorView: colorView}

	if desc.DepthStencilFormat != wgpu.TextureFormatUndefined {
		depthTex, err := m.device.CreateTexture(&wgpu.TextureDescriptor{
			Label: "Transient Render Target Depth",
			Size: wgpu.Extent3D{
				Width:              uint32(desc.Width),
				Height:             uint32(desc.Height),
				DepthOrArrayLayers: 1,
			},
			MipLevelCount: 1,
			SampleCount:   desc.SampleCount,
			Dimension:     wgpu.TextureDimension2D,
			Format:        desc.DepthStencilFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			rt.release()
			return nil, fmt.Errorf("rendermanager: create transient depth texture: %w", err)
		}
		depthView, err := depthTex.CreateView(nil)
		if err != nil {
			depthTex.Release()
			rt.release()
			return nil, fmt.Errorf("rendermanager: create transient depth view: %w", err)
		}
		rt.DepthStencil = depthTex
		rt.DepthStencilView = depthView
	}

	return rt, nil
}

func (m *renderManagerImpl) UpdateBuffer(dst *wgpu.Buffer, offset uint64, data []byte) {
	m.queue.WriteBuffer(dst, offset, data)
}

func (m *renderManagerImpl) LoadReadonlyTexture(pixels []byte, width, height int) (*wgpu.Texture, *wgpu.TextureView, error) {
	mips := generateMipChain(pixels, width, height)

	tex, err := m.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Readonly Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: uint32(len(mips)),
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		renderErr := rendererr.New(rendererr.Fatal, fmt.Errorf("rendermanager: create readonly texture: %w", err))
		pkgLogger.Load().Error("readonly texture upload failed", "error", renderErr, "width", width, "height", height)
		return nil, nil, renderErr
	}

	for level, mip := range mips {
		m.queue.WriteTexture(
			&wgpu.ImageCopyTexture{Texture: tex, MipLevel: uint32(level)},
			mip.pixels,
			&wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  uint32(mip.width * 4),
				RowsPerImage: uint32(mip.height),
			},
			&wgpu.Extent3D{Width: uint32(mip.width), Height: uint32(mip.height), DepthOrArrayLayers: 1},
		)
	}

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, nil, fmt.Errorf("rendermanager: create readonly texture view: %w", err)
	}

	return tex, view, nil
}

func (m *renderManagerImpl) KeepAliveWhileInUse(handle any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	slot := m.frameIndex % MaxFramesInFlight
	m.keepAlive[slot] = append(m.keepAlive[slot], handle)
}

func (m *renderManagerImpl) Device() *wgpu.Device { return m.device }
func (m *renderManagerImpl) Queue() *wgpu.Queue   { return m.queue }

func (m *renderManagerImpl) DefaultMaterial() material.Material { return m.defaultMaterial }
func (m *renderManagerImpl) CubeMesh() model.Model              { return m.cubeMesh }
func (m *renderManagerImpl) PlaneMesh() model.Model             { return m.planeMesh }
func (m *renderManagerImpl) SphereMesh() model.Model            { return m.sphereMesh }
