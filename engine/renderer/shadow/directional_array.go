package shadow

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// DefaultDirectionalShadowMapSize is the default width/height in texels of
// each slice of the directional shadow map array.
const DefaultDirectionalShadowMapSize = 2048

// DirectionalShadowMapArray owns a single 2D texture array with
// MaxCascadeCount slices, one per cascade (§A.4.4). All cascades share one
// texture so the opaque pass binds a single array resource regardless of
// the configured cascade count.
type DirectionalShadowMapArray struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView // full-array view, for sampling in the opaque pass
	size    uint32
	format  wgpu.TextureFormat
}

// NewDirectionalShadowMapArray creates the backing texture array. depthFormat
// should be a depth-only format (e.g. wgpu.TextureFormatDepth32Float); the
// reverse-Z clear value used at render time is always 0 (near=1, far=0).
func NewDirectionalShadowMapArray(device *wgpu.Device, depthFormat wgpu.TextureFormat, size uint32) (*DirectionalShadowMapArray, error) {
	tex, err := device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "directional_shadow_map_array",
		Size: wgpu.Extent3D{
			Width:              size,
			Height:             size,
			DepthOrArrayLayers: MaxCascadeCount,
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

	view, err := tex.CreateView(&wgpu.TextureViewDescriptor{
		Label:           "directional_shadow_map_array_view",
		Format:          depthFormat,
		Dimension:       wgpu.TextureViewDimension2DArray,
		Aspect:          wgpu.TextureAspectDepthOnly,
		BaseArrayLayer:  0,
		ArrayLayerCount: MaxCascadeCount,
	})
	if err != nil {
		tex.Release()
		return nil, err
	}

	return &DirectionalShadowMapArray{texture: tex, view: view, size: size, format: depthFormat}, nil
}

// SliceView creates a single-layer view over one cascade slice, suitable for
// use as a depth-stencil render-pass attachment (§A.4.4.3 "viewport set to
// the cascade slice").
func (a *DirectionalShadowMapArray) SliceView(cascade int) (*wgpu.TextureView, error) {
	return a.texture.CreateView(&wgpu.TextureViewDescriptor{
		Label:           "directional_shadow_cascade_slice",
		Format:          a.format,
		Dimension:       wgpu.TextureViewDimension2D,
		Aspect:          wgpu.TextureAspectDepthOnly,
		BaseArrayLayer:  uint32(cascade),
		ArrayLayerCount: 1,
	})
}

// View returns the full-array view bound by the opaque pass for sampling.
func (a *DirectionalShadowMapArray) View() *wgpu.TextureView { return a.view }

// Size returns the per-slice width/height in texels.
func (a *DirectionalShadowMapArray) Size() uint32 { return a.size }

// Release frees the underlying GPU texture and views.
func (a *DirectionalShadowMapArray) Release() {
	if a.view != nil {
		a.view.Release()
	}
	if a.texture != nil {
		a.texture.Release()
	}
}
