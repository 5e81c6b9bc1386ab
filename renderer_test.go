// Copyright 2025 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package htmlmesh

import (
	"testing"

	"cogentcore.org/htmlmesh/base/errors"
	"cogentcore.org/htmlmesh/dom/memdom"
	"cogentcore.org/htmlmesh/math32"
	"github.com/stretchr/testify/assert"
)

// testCamera implements [Camera] with a fixed pose and projection.
type testCamera struct {
	world, view, proj math32.Matrix4
	persp             bool
}

func newTestCamera(pos math32.Vector3) *testCamera {
	c := &testCamera{persp: true}
	c.proj.SetPerspective(30, 1.5, 0.01, 1000)
	c.moveTo(pos)
	return c
}

func (c *testCamera) moveTo(pos math32.Vector3) {
	c.world.SetTransform(pos, math32.NewQuat(0, 0, 0, 1), math32.Vec3(1, 1, 1))
	c.view = errors.Log1(c.world.Inverse())
}

func (c *testCamera) WorldMatrix() *math32.Matrix4      { return &c.world }
func (c *testCamera) ViewMatrix() *math32.Matrix4       { return &c.view }
func (c *testCamera) ProjectionMatrix() *math32.Matrix4 { return &c.proj }
func (c *testCamera) Viewport() math32.Box2             { return math32.B2(0, 0, 1, 1) }
func (c *testCamera) Perspective() bool                 { return c.persp }

// testScene implements [Scene] over plain fields, with methods to fire
// the hooks the way an engine's render loop would.
type testScene struct {
	w, h    int
	cam     Camera
	objs    []TrackedObject
	rect    math32.Box2
	rectErr error

	afterRender []func()
	cameraHooks []func()
	resizeHooks []func()
	unsubs      int

	opaque, alphaTest, transparent CompareFunc
}

var _ Scene = (*testScene)(nil)

func newTestScene(w, h int, cam Camera, objs ...TrackedObject) *testScene {
	return &testScene{w: w, h: h, cam: cam, objs: objs,
		rect: math32.B2(0, 0, float32(w), float32(h))}
}

func (s *testScene) RenderSize() (int, int)            { return s.w, s.h }
func (s *testScene) ActiveCamera() Camera              { return s.cam }
func (s *testScene) TrackedObjects() []TrackedObject   { return s.objs }
func (s *testScene) SurfaceRect() (math32.Box2, error) { return s.rect, s.rectErr }

func (s *testScene) OnAfterRender(fn func()) Subscription {
	s.afterRender = append(s.afterRender, fn)
	return SubscriptionFunc(func() { s.unsubs++ })
}

func (s *testScene) OnCameraChanged(fn func()) Subscription {
	s.cameraHooks = append(s.cameraHooks, fn)
	return SubscriptionFunc(func() { s.unsubs++ })
}

func (s *testScene) OnActiveCameraChanged(fn func()) Subscription {
	s.cameraHooks = append(s.cameraHooks, fn)
	return SubscriptionFunc(func() { s.unsubs++ })
}

func (s *testScene) OnResize(fn func()) Subscription {
	s.resizeHooks = append(s.resizeHooks, fn)
	return SubscriptionFunc(func() { s.unsubs++ })
}

func (s *testScene) SetRenderOrder(group int, opaque, alphaTest, transparent CompareFunc) {
	s.opaque, s.alphaTest, s.transparent = opaque, alphaTest, transparent
}

// frame runs one render-loop frame: render the 3D pass (not modeled
// here) and fire the after-render hooks.
func (s *testScene) frame() {
	for _, fn := range s.afterRender {
		fn()
	}
}

func (s *testScene) notifyCamera() {
	for _, fn := range s.cameraHooks {
		fn()
	}
}

func (s *testScene) resize(w, h int) {
	s.w, s.h = w, h
	s.rect = math32.B2(s.rect.Min.X, s.rect.Min.Y,
		s.rect.Min.X+float32(w), s.rect.Min.Y+float32(h))
	for _, fn := range s.resizeHooks {
		fn()
	}
}

func TestRendererSetup(t *testing.T) {
	doc := memdom.NewDocument()
	sc := newTestScene(1600, 1200, newTestCamera(math32.Vec3(0, 0, 10)))
	r := NewRenderer(doc, sc, nil)

	inScene := doc.ElementByID("html-mesh-in-scene")
	overlay := doc.ElementByID("html-mesh-overlay")
	assert.NotNil(t, inScene)
	assert.NotNil(t, overlay)
	assert.Equal(t, "1600px", r.layers[LayerInScene].perspective.Style("width"))
	assert.Equal(t, "1200px", r.layers[LayerInScene].perspective.Style("height"))
}

func TestRendererLayerSizing(t *testing.T) {
	doc := memdom.NewDocument()
	doc.SetDevicePixelRatio(2)
	sc := newTestScene(1600, 1200, newTestCamera(math32.Vec3(0, 0, 10)))
	r := NewRenderer(doc, sc, nil)

	// Render size is in device pixels; the layers are sized in CSS pixels.
	assert.Equal(t, "800px", r.layers[LayerInScene].perspective.Style("width"))
	assert.Equal(t, "600px", r.layers[LayerInScene].perspective.Style("height"))
	assert.Equal(t, "800px", r.layers[LayerOverlay].camera.Style("width"))
}

func TestRendererOptions(t *testing.T) {
	doc := memdom.NewDocument()
	host := doc.CreateElement("div")
	host.SetID("viewer")
	doc.Body().AppendChild(host)

	sc := newTestScene(800, 600, newTestCamera(math32.Vec3(0, 0, 10)))
	NewRenderer(doc, sc, &Options{ParentID: "viewer", LayerPrefix: "xm-", DisableOverlay: true})

	layer := doc.ElementByID("xm-in-scene")
	assert.NotNil(t, layer)
	assert.True(t, host.Contains(layer))
	assert.Nil(t, doc.ElementByID("xm-overlay"))

	// The render-order comparators are installed for pass group 0.
	assert.NotNil(t, sc.opaque)
	assert.NotNil(t, sc.alphaTest)
	assert.NotNil(t, sc.transparent)
}

func TestRendererInert(t *testing.T) {
	r := NewRenderer(nil, nil, nil)
	r.render() // no-op, no panic
	r.applySize()
	r.Destroy()
}

func TestRendererFirstFrame(t *testing.T) {
	doc := memdom.NewDocument()
	el := doc.CreateElement("div")
	sf := NewSurface(el, 4, 3)
	sf.SetPosition(0, 0, 0)

	sc := newTestScene(800, 600, newTestCamera(math32.Vec3(0, 0, 10)))
	sc.objs = []TrackedObject{sf}
	r := NewRenderer(doc, sc, nil)

	sc.frame()

	// The element is parented under the in-scene camera element with a
	// full transform style.
	assert.True(t, r.layers[LayerInScene].camera.Contains(el))
	style := el.Style("transform")
	assert.Contains(t, style, "translate(-50%, -50%) matrix3d(")
	assert.False(t, sf.RequiresUpdate())

	// Perspective cameras set the perspective property on both layers.
	assert.NotEmpty(t, r.layers[LayerInScene].perspective.Style("perspective"))
	assert.NotEmpty(t, r.layers[LayerOverlay].perspective.Style("perspective"))
	assert.Contains(t, r.layers[LayerInScene].camera.Style("transform"), "translateZ(")
}

func TestRendererZeroWritesWhenClean(t *testing.T) {
	doc := memdom.NewDocument()
	sf := NewSurface(doc.CreateElement("div"), 4, 3)
	sc := newTestScene(800, 600, newTestCamera(math32.Vec3(0, 0, 10)))
	sc.objs = []TrackedObject{sf}
	NewRenderer(doc, sc, nil)

	sc.frame()
	doc.ResetStyleWrites()

	// Nothing changed: the next frame must not touch the DOM at all.
	sc.frame()
	assert.Equal(t, 0, doc.StyleWrites())

	// A camera-change notification with no actual change recomputes but
	// still writes nothing, because every value matches its cache.
	sc.notifyCamera()
	sc.frame()
	assert.Equal(t, 0, doc.StyleWrites())
}

func TestRendererObjectDirty(t *testing.T) {
	doc := memdom.NewDocument()
	moved := NewSurface(doc.CreateElement("div"), 4, 3)
	still := NewSurface(doc.CreateElement("div"), 4, 3)
	still.SetPosition(2, 0, 0)
	sc := newTestScene(800, 600, newTestCamera(math32.Vec3(0, 0, 10)))
	sc.objs = []TrackedObject{moved, still}
	NewRenderer(doc, sc, nil)

	sc.frame()
	stillStyle := still.Elem.Style("transform")
	doc.ResetStyleWrites()

	moved.SetPosition(1, 1, 0)
	sc.frame()

	// Exactly one write: the moved object's transform. The camera and
	// the other object are untouched.
	assert.Equal(t, 1, doc.StyleWrites())
	assert.Equal(t, stillStyle, still.Elem.Style("transform"))
	assert.False(t, moved.RequiresUpdate())
}

func TestRendererCameraDirty(t *testing.T) {
	doc := memdom.NewDocument()
	sf := NewSurface(doc.CreateElement("div"), 4, 3)
	cam := newTestCamera(math32.Vec3(0, 0, 10))
	sc := newTestScene(800, 600, cam)
	sc.objs = []TrackedObject{sf}
	r := NewRenderer(doc, sc, nil)

	sc.frame()
	objStyle := sf.Elem.Style("transform")
	camStyle := r.layers[LayerInScene].camera.Style("transform")

	cam.moveTo(math32.Vec3(0, 0, 12))
	sc.frame()

	// A camera move is globally dirty: camera transform and every
	// object transform are rewritten even with no object flagged.
	assert.NotEqual(t, camStyle, r.layers[LayerInScene].camera.Style("transform"))
	assert.NotEqual(t, objStyle, sf.Elem.Style("transform"))
}

func TestRendererNilCamera(t *testing.T) {
	doc := memdom.NewDocument()
	sf := NewSurface(doc.CreateElement("div"), 4, 3)
	sc := newTestScene(800, 600, nil)
	sc.objs = []TrackedObject{sf}
	NewRenderer(doc, sc, nil)

	sc.frame()
	assert.Empty(t, sf.Elem.Style("transform"))
	assert.True(t, sf.RequiresUpdate())
}

func TestRendererResize(t *testing.T) {
	doc := memdom.NewDocument()
	sc := newTestScene(800, 600, newTestCamera(math32.Vec3(0, 0, 10)))
	r := NewRenderer(doc, sc, nil)

	sc.resize(1024, 768)
	assert.Equal(t, "1024px", r.layers[LayerInScene].perspective.Style("width"))
	assert.Equal(t, "768px", r.layers[LayerInScene].perspective.Style("height"))

	doc.ResetStyleWrites()
	sc.resize(1024, 768)
	assert.Equal(t, 0, doc.StyleWrites())
}

func TestRendererResizeRefreshesCamera(t *testing.T) {
	doc := memdom.NewDocument()
	sc := newTestScene(800, 600, newTestCamera(math32.Vec3(0, 0, 10)))
	r := NewRenderer(doc, sc, nil)

	sc.frame()
	persp := r.layers[LayerInScene].perspective.Style("perspective")
	camStyle := r.layers[LayerInScene].camera.Style("transform")
	assert.NotEmpty(t, persp)

	// A resize alone, with the camera and its projection untouched:
	// the FOV pixel value and the centering translate both derive from
	// the layer size, so the next frame must rewrite them.
	sc.resize(1600, 1200)
	sc.frame()
	assert.NotEqual(t, persp, r.layers[LayerInScene].perspective.Style("perspective"))
	assert.NotEqual(t, camStyle, r.layers[LayerInScene].camera.Style("transform"))
	assert.Contains(t, r.layers[LayerInScene].camera.Style("transform"), "translate(800px, 600px)")
}

func TestRendererPixelRatioChange(t *testing.T) {
	doc := memdom.NewDocument()
	sc := newTestScene(800, 600, newTestCamera(math32.Vec3(0, 0, 10)))
	r := NewRenderer(doc, sc, nil)
	sc.frame()

	// A density change with no resize event is caught by the frame's
	// dirty detection and re-applies CSS-pixel sizing.
	doc.SetDevicePixelRatio(2)
	sc.frame()
	assert.Equal(t, "400px", r.layers[LayerInScene].perspective.Style("width"))
	assert.Equal(t, "300px", r.layers[LayerInScene].perspective.Style("height"))
}

func TestRendererSurfaceRectError(t *testing.T) {
	doc := memdom.NewDocument()
	sf := NewSurface(doc.CreateElement("div"), 4, 3)
	sc := newTestScene(800, 600, newTestCamera(math32.Vec3(0, 0, 10)))
	sc.objs = []TrackedObject{sf}
	sc.rectErr = errors.New("layout pending")
	r := NewRenderer(doc, sc, nil)

	// Alignment is skipped for the frame, but camera and object styles
	// still update.
	sc.frame()
	assert.Empty(t, r.layers[LayerInScene].container.Style("top"))
	assert.NotEmpty(t, sf.Elem.Style("transform"))
	assert.False(t, sf.RequiresUpdate())

	// Once layout resolves, the next frame aligns.
	sc.rectErr = nil
	sc.rect = math32.B2(20, 50, 820, 650)
	sc.frame()
	assert.Equal(t, "50px", r.layers[LayerInScene].container.Style("top"))
	assert.Equal(t, "20px", r.layers[LayerInScene].container.Style("left"))
}

func TestRendererOrthographicCamera(t *testing.T) {
	doc := memdom.NewDocument()
	cam := newTestCamera(math32.Vec3(0, 0, 10))
	sc := newTestScene(800, 600, cam)
	r := NewRenderer(doc, sc, nil)

	sc.frame()
	assert.NotEmpty(t, r.layers[LayerInScene].perspective.Style("perspective"))

	cam.persp = false
	cam.proj.SetOrthographic(4, 2, 0.01, 1000)
	sc.notifyCamera()
	sc.frame()

	// Orthographic projection clears the perspective property.
	assert.Empty(t, r.layers[LayerInScene].perspective.Style("perspective"))
	assert.Empty(t, r.layers[LayerOverlay].perspective.Style("perspective"))
}

func TestRendererProjectionKindSwitch(t *testing.T) {
	doc := memdom.NewDocument()
	// At fov 90 the perspective vertical scale term is 1, the same as
	// an orthographic projection of height 2: the FOV pixel values of
	// the two projections coincide exactly.
	cam := newTestCamera(math32.Vec3(0, 0, 10))
	cam.proj.SetPerspective(90, 1, 0.01, 1000)
	sc := newTestScene(800, 600, cam)
	r := NewRenderer(doc, sc, nil)

	sc.frame()
	assert.Equal(t, "300px", r.layers[LayerInScene].perspective.Style("perspective"))

	cam.persp = false
	cam.proj.SetOrthographic(4, 2, 0.01, 1000)
	sc.notifyCamera()
	sc.frame()

	// Equal pixel values must not mask the projection-kind change.
	assert.Empty(t, r.layers[LayerInScene].perspective.Style("perspective"))

	cam.persp = true
	cam.proj.SetPerspective(90, 1, 0.01, 1000)
	sc.notifyCamera()
	sc.frame()
	assert.Equal(t, "300px", r.layers[LayerInScene].perspective.Style("perspective"))
}

func TestRendererOverlayAssignment(t *testing.T) {
	doc := memdom.NewDocument()
	sf := NewSurface(doc.CreateElement("div"), 4, 3)
	sf.SetOverlay(true)
	sc := newTestScene(800, 600, newTestCamera(math32.Vec3(0, 0, 10)))
	sc.objs = []TrackedObject{sf}
	r := NewRenderer(doc, sc, nil)

	sc.frame()
	assert.True(t, r.layers[LayerOverlay].camera.Contains(sf.Elem))
	assert.Equal(t, "none", sf.Elem.Style("pointer-events"))

	// Moving back to the in-scene layer restores interactivity.
	sf.SetOverlay(false)
	sc.frame()
	assert.True(t, r.layers[LayerInScene].camera.Contains(sf.Elem))
	assert.Equal(t, "auto", sf.Elem.Style("pointer-events"))
}

func TestRendererOverlayDisabled(t *testing.T) {
	doc := memdom.NewDocument()
	sf := NewSurface(doc.CreateElement("div"), 4, 3)
	sf.SetOverlay(true)
	sc := newTestScene(800, 600, newTestCamera(math32.Vec3(0, 0, 10)))
	sc.objs = []TrackedObject{sf}
	r := NewRenderer(doc, sc, &Options{DisableOverlay: true})

	// Overlay objects fall back to the in-scene layer.
	sc.frame()
	assert.True(t, r.layers[LayerInScene].camera.Contains(sf.Elem))
}

func TestRendererDestroy(t *testing.T) {
	doc := memdom.NewDocument()
	sf := NewSurface(doc.CreateElement("div"), 4, 3)
	sc := newTestScene(800, 600, newTestCamera(math32.Vec3(0, 0, 10)))
	sc.objs = []TrackedObject{sf}
	r := NewRenderer(doc, sc, nil)
	sc.frame()

	r.Destroy()
	assert.Equal(t, 4, sc.unsubs)
	assert.Nil(t, doc.ElementByID("html-mesh-in-scene"))
	assert.Nil(t, doc.ElementByID("html-mesh-overlay"))

	// The renderer is inert afterwards; a stray frame is harmless.
	r.render()
	r.Destroy()
}
