package camera

import (
	"github.com/kestrel-games/scenerender/engine/renderer/bind_group_provider"
)

type CameraBuilderOption func(*cameraImpl)

// WithUp sets the camera's up vector.
//
// Parameters:
//   - x, y, z: up vector components
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's up vector
func WithUp(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = [3]float32{x, y, z}
		c.updateMatrices()
	}
}

// WithFov sets the camera's field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
		c.updateMatrices()
	}
}

// WithAspect sets the camera's aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio to set
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.aspect = aspect
		c.updateMatrices()
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the near plane
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
		c.updateMatrices()
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: functional option to set the far plane
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.far = far
		c.updateMatrices()
	}
}

// WithType sets the camera's projection type.
//
// Parameters:
//   - t: the projection type (perspective or orthographic)
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's projection type
func WithType(t ProjectionType) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.projType = t
		c.updateMatrices()
	}
}

// WithOrthoSize sets the vertical size of the orthographic view volume.
// Meaningless for perspective cameras.
//
// Parameters:
//   - size: the vertical extent of the ortho frustum, in world units
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's ortho size
func WithOrthoSize(size float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.orthoSize = size
		c.updateMatrices()
	}
}

// WithViewport sets the normalized viewport rect this camera renders into.
//
// Parameters:
//   - x, y, width, height: normalized rect components in [0, 1]
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's viewport rect
func WithViewport(x, y, width, height float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.viewport = [4]float32{x, y, width, height}
	}
}

// WithController attaches a controller to the camera.
// After all options are applied, the camera recomputes its matrices from the controller's state.
//
// Parameters:
//   - ctrl: the controller to attach
//
// Returns:
//   - CameraBuilderOption: functional option to set the controller
func WithController(ctrl CameraController) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
	}
}

// WithBindGroupProvider attaches a bind group provider to the camera.
// The provider describes the GPU binding requirements for camera uniforms.
//
// Parameters:
//   - provider: the bind group provider to attach
//
// Returns:
//   - CameraBuilderOption: functional option to set the bind group provider
func WithBindGroupProvider(provider bind_group_provider.BindGroupProvider) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.bindGroupProvider = provider
	}
}
