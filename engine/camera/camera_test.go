package camera

import (
	"math"
	"testing"
)

func newTestCamera(opts ...CameraBuilderOption) Camera {
	ctrl := NewCameraController(WithTarget(0, 0, 0))
	all := append([]CameraBuilderOption{WithController(ctrl)}, opts...)
	return NewCamera(all...)
}

func TestNewCameraDefaultsToPerspective(t *testing.T) {
	c := newTestCamera()
	if got := c.Type(); got != ProjectionPerspective {
		t.Errorf("Type() = %v, want ProjectionPerspective", got)
	}
	if got := c.Viewport(); got != [4]float32{0, 0, 1, 1} {
		t.Errorf("Viewport() = %v, want full-frame default", got)
	}
}

func TestSetTypeSwitchesProjectionMatrix(t *testing.T) {
	c := newTestCamera(WithAspect(1.0), WithNear(1), WithFar(100))

	perspProj := c.ProjectionMatrix()

	c.SetType(ProjectionOrthographic)
	c.SetOrthoSize(20)
	orthoProj := c.ProjectionMatrix()

	if perspProj == orthoProj {
		t.Error("switching projection type did not change the projection matrix")
	}

	// An orthographic projection's bottom-right (index 15) is always 1 even
	// under this camera's reverse-Z convention; a perspective projection's
	// is 0. Only the near/far depth-mapping terms differ from the
	// non-reverse-Z builders.
	if orthoProj[15] != 1 {
		t.Errorf("orthographic projectionMatrix[15] = %v, want 1", orthoProj[15])
	}
}

func TestSetViewportStoresNormalizedRect(t *testing.T) {
	c := newTestCamera()
	c.SetViewport(0.5, 0.0, 0.5, 1.0)

	if got := c.Viewport(); got != [4]float32{0.5, 0, 0.5, 1} {
		t.Errorf("Viewport() = %v, want {0.5, 0, 0.5, 1}", got)
	}
}

func TestViewProjectionMatrixIsProjectionTimesView(t *testing.T) {
	c := newTestCamera(WithFov(float32(math.Pi/2)), WithAspect(16.0/9.0), WithNear(0.1), WithFar(1000))

	view := c.ViewMatrix()
	proj := c.ProjectionMatrix()
	vp := c.ViewProjectionMatrix()

	// Spot-check a couple of entries of proj * view rather than recomputing
	// the whole 4x4 multiply; row 0 col 0 of the product only depends on
	// proj's and view's first row/column.
	want00 := proj[0]*view[0] + proj[4]*view[1] + proj[8]*view[2] + proj[12]*view[3]
	if diff := vp[0] - want00; diff > 1e-5 || diff < -1e-5 {
		t.Errorf("ViewProjectionMatrix()[0] = %v, want proj*view = %v", vp[0], want00)
	}
}

func TestNewCameraWithoutControllerLeavesIdentityMatrices(t *testing.T) {
	c := NewCamera()
	identity := [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	if got := c.ViewMatrix(); got != identity {
		t.Errorf("ViewMatrix() without a controller = %v, want identity", got)
	}
}
