package scene

import (
	"github.com/kestrel-games/scenerender/config"
	"github.com/kestrel-games/scenerender/engine/game_object"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithObjects adds initial objects to the scene.
// Objects without IDs will be assigned new IDs.
// Non-ephemeral objects are persisted in the registry; no Animator or instance is
// created for them, so they are not rendered unless also passed to Add.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			if obj.ID() == 0 {
				obj.SetID(s.nextID)
				s.nextID++
			}
			if !obj.Ephemeral() {
				s.registry[obj.ID()] = obj
			}
		}
	}
}

// WithComputeWorkers sets the number of worker goroutines used during the parallel
// CPU prep phase of PrepareCompute. Defaults to runtime.NumCPU()-1.
// Higher values may improve throughput with many animator groups or skeletal
// animators; lower values reduce scheduling overhead for simple scenes.
//
// Parameters:
//   - n: the number of compute workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithComputeWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.computeWorkers = n
	}
}

// WithCullingDisabled disables GPU frustum culling for the scene. When set to true,
// the scene will not distribute frustum planes to animators, causing them to remain
// in non-culled mode and use regular draw calls instead of indirect draw calls.
// By default culling is enabled (disabled = false).
//
// Parameters:
//   - disabled: true to disable frustum culling, false to enable it (default)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCullingDisabled(disabled bool) SceneBuilderOption {
	return func(s *scene) {
		s.cullingDisabled = disabled
	}
}

// WithShadowBBoxNearOffset sets how far each cascade's fitted light-view
// bounding box is pulled back past the slice's near corners, so casters
// standing just outside the visible slice still contribute to the shadow
// map. Default is shadow.DefaultBBoxNearOffset (50.0).
//
// Parameters:
//   - offset: world-unit pull-back distance
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithShadowBBoxNearOffset(offset float32) SceneBuilderOption {
	return func(s *scene) {
		s.shadowBBoxNearOffset = offset
	}
}

// WithRenderSettings overrides the scene's default render settings (MSAA,
// color precision, SSAO, shadow distance and cascade configuration, and so
// on). Panics if settings is nil.
//
// Parameters:
//   - settings: the render settings to use
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithRenderSettings(settings *config.RenderSettings) SceneBuilderOption {
	return func(s *scene) {
		if settings == nil {
			panic("scene: WithRenderSettings requires a non-nil *config.RenderSettings")
		}
		s.settings = settings
	}
}

// WithShadowBias sets the depth comparison bias used during shadow sampling to
// reduce shadow acne. Default is light.DefaultShadowBias (0.001).
//
// Parameters:
//   - bias: the depth bias value
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithShadowBias(bias float32) SceneBuilderOption {
	return func(s *scene) {
		s.shadowBias = bias
	}
}

// WithShadowNormalBiasScale sets the multiplier applied to the shadow-map
// texel world-size to derive the normal-offset bias. The normal offset
// shifts the shadow lookup position along the surface normal, preventing
// self-shadowing on concave geometry. Default is light.DefaultShadowNormalBiasScale (3.0).
//
// Parameters:
//   - scale: multiplier on per-texel world size (typically 2.0–4.0)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithShadowNormalBiasScale(scale float32) SceneBuilderOption {
	return func(s *scene) {
		s.shadowNormalBiasScale = scale
	}
}

