package rendermanager

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// RenderTargetDesc identifies a transient render target shape. Two requests
// with an equal desc can share a pooled target.
type RenderTargetDesc struct {
	Width, Height      int
	ColorFormat        wgpu.TextureFormat
	DepthStencilFormat wgpu.TextureFormat // zero value (wgpu.TextureFormatUndefined) means color-only
	SampleCount        uint32
}

// RenderTarget is a color texture with an optional paired depth/stencil
// texture, both already viewed and ready to attach to a render pass.
type RenderTarget struct {
	Desc             RenderTargetDesc
	Color            *wgpu.Texture
	ColorView        *wgpu.TextureView
	DepthStencil     *wgpu.Texture
	DepthStencilView *wgpu.TextureView
}

func (rt *RenderTarget) release() {
	if rt.ColorView != nil {
		rt.ColorView.Release()
	}
	if rt.Color != nil {
		rt.Color.Release()
	}
	if rt.DepthStencilView != nil {
		rt.DepthStencilView.Release()
	}
	if rt.DepthStencil != nil {
		rt.DepthStencil.Release()
	}
}

// tempRenderTargetRecord tracks how many BeginNewFrame calls have passed
// since a pooled target was last handed out, so it can be evicted once it
// goes stale.
type tempRenderTargetRecord struct {
	target    *RenderTarget
	ageFrames int
}
