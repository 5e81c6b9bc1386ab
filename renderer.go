// Copyright 2025 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package htmlmesh

import (
	"log/slog"

	"cogentcore.org/htmlmesh/dom"
	"cogentcore.org/htmlmesh/math32"
)

// defaultLayerPrefix is the id prefix for the render layer elements.
const defaultLayerPrefix = "html-mesh-"

// Options configures a [Renderer]. The zero value is a valid default
// configuration.
type Options struct {

	// ParentID is the id of the DOM element to create the render
	// layers in; empty means the document body.
	ParentID string

	// LayerPrefix overrides the id prefix for the layer elements
	// (default "html-mesh-", giving ids "html-mesh-in-scene" and
	// "html-mesh-overlay").
	LayerPrefix string

	// DisableOverlay skips creation of the overlay layer; objects
	// flagged for the overlay then fall back to the in-scene layer.
	DisableOverlay bool

	// OpaqueOrder, AlphaTestOrder, and TransparentOrder are the
	// fallback comparators used in the scene's pass group 0 when
	// neither compared item belongs to a tracked object.
	OpaqueOrder      CompareFunc
	AlphaTestOrder   CompareFunc
	TransparentOrder CompareFunc
}

// renderPhase is the orchestrator state within one frame cycle.
type renderPhase int32

const (
	// phaseIdle means waiting for the next frame.
	phaseIdle renderPhase = iota

	// phaseAligning means awaiting the surface rectangle resolution.
	phaseAligning

	// phaseUpdating means applying computed styles.
	phaseUpdating
)

// Renderer keeps the DOM render layers in sync with the scene's
// camera, once per frame of the scene's render loop. Construct with
// [NewRenderer] and tear down with [Renderer.Destroy].
type Renderer struct {
	scene Scene
	doc   dom.Document

	// layers are the in-scene and overlay render layers; the overlay
	// entry is nil when disabled.
	layers [LayersN]*renderLayer

	state *renderState
	phase renderPhase

	// subs are the scene subscriptions, unsubscribed in reverse order
	// on Destroy.
	subs []Subscription

	// objMat is the scratch matrix for per-object transform
	// computation, reused across frames. Safe because frames are
	// strictly sequential.
	objMat math32.Matrix4

	// width and height are the current layer size in CSS pixels.
	width, height float32
}

// NewRenderer returns a new [Renderer] compositing DOM content against
// the given scene. A nil document (no DOM host, e.g. a non-interactive
// context) yields an inert renderer whose methods are all no-ops.
// A nil opts uses defaults.
func NewRenderer(doc dom.Document, sc Scene, opts *Options) *Renderer {
	r := &Renderer{state: newRenderState()}
	if doc == nil || sc == nil {
		return r
	}
	if opts == nil {
		opts = &Options{}
	}
	r.doc = doc
	r.scene = sc

	parent := doc.Body()
	if opts.ParentID != "" {
		if el := doc.ElementByID(opts.ParentID); el != nil {
			parent = el
		}
	}
	prefix := opts.LayerPrefix
	if prefix == "" {
		prefix = defaultLayerPrefix
	}
	r.layers[LayerInScene] = newRenderLayer(doc, LayerInScene, prefix+LayerInScene.String(), parent)
	if !opts.DisableOverlay {
		r.layers[LayerOverlay] = newRenderLayer(doc, LayerOverlay, prefix+LayerOverlay.String(), parent)
	}
	r.applySize()

	sc.SetRenderOrder(0,
		renderOrderCompare(opts.OpaqueOrder),
		renderOrderCompare(opts.AlphaTestOrder),
		renderOrderCompare(opts.TransparentOrder))

	r.subs = append(r.subs, sc.OnCameraChanged(r.state.markCameraNotified))
	r.subs = append(r.subs, sc.OnActiveCameraChanged(r.state.markCameraNotified))
	r.subs = append(r.subs, sc.OnResize(r.applySize))
	r.subs = append(r.subs, sc.OnAfterRender(r.render))
	return r
}

// Destroy detaches all scene subscriptions, in reverse order of
// acquisition, and then removes the render layers from the document.
// The renderer is inert afterwards.
func (r *Renderer) Destroy() {
	for i := len(r.subs) - 1; i >= 0; i-- {
		r.subs[i].Unsubscribe()
	}
	r.subs = nil
	for i, rl := range r.layers {
		if rl != nil {
			rl.destroy()
			r.layers[i] = nil
		}
	}
	r.scene = nil
	r.doc = nil
	r.state = newRenderState()
}

// applySize applies the scene's current render size, in CSS pixels,
// to both layers. Called at construction and on every resize event.
func (r *Renderer) applySize() {
	if r.scene == nil {
		return
	}
	w, h := r.scene.RenderSize()
	dpr := r.doc.DevicePixelRatio()
	if dpr <= 0 {
		dpr = 1
	}
	r.width = float32(w) / dpr
	r.height = float32(h) / dpr
	for _, rl := range r.layers {
		if rl != nil {
			rl.setSize(r.width, r.height)
		}
	}
	// The FOV pixel value and the centering translate are derived from
	// the layer size, so they go stale here even if the camera itself
	// never moves (a fixed-frustum camera fires no camera-changed).
	r.state.invalidateCamera()
}

// render runs one frame cycle: align the layers to the surface,
// detect dirtiness, and update camera and object styles as needed.
// Invoked from the scene's after-render hook.
func (r *Renderer) render() {
	if r.scene == nil || r.phase != phaseIdle {
		return
	}

	// Alignment is the frame's one suspension point. Failure means
	// layout is not ready; skip and retry next frame.
	r.phase = phaseAligning
	if rect, err := r.scene.SurfaceRect(); err != nil {
		slog.Warn("htmlmesh: surface rectangle unavailable, skipping alignment", "err", err)
	} else {
		body := r.doc.Body()
		for _, rl := range r.layers {
			if rl != nil {
				rl.alignTo(rect, body)
			}
		}
	}

	r.phase = phaseUpdating
	defer func() { r.phase = phaseIdle }()

	cam := r.scene.ActiveCamera()
	if cam == nil {
		return
	}
	dpr := r.doc.DevicePixelRatio()
	if dpr <= 0 {
		dpr = 1
	}
	camWorld := cam.WorldMatrix()
	camPos := camWorld.Pos()

	global := r.state.globalDirty(camPos, dpr)
	objs := r.scene.TrackedObjects()
	if !global && !anyRequiresUpdate(objs) {
		return
	}

	if global {
		if dpr != r.state.pixelRatio {
			r.applySize()
		}
		r.updateCamera(cam)
	}
	for _, obj := range objs {
		if !global && !obj.RequiresUpdate() {
			continue
		}
		r.updateObject(obj, camWorld)
	}
	r.state.commit(camPos, dpr)
}

// anyRequiresUpdate reports whether any tracked object has its
// requires-update flag set.
func anyRequiresUpdate(objs []TrackedObject) bool {
	for _, obj := range objs {
		if obj.RequiresUpdate() {
			return true
		}
	}
	return false
}

// updateCamera rewrites the layers' perspective and camera transform
// CSS from the current camera state, cache-guarded.
func (r *Renderer) updateCamera(cam Camera) {
	proj := cam.ProjectionMatrix()
	vh := cam.Viewport().Size().Y
	if vh <= 0 {
		vh = 1
	}
	fovPx := proj[5] * r.height * vh / 2

	if r.state.fovChanged(fovPx, cam.Perspective()) {
		value := ""
		if cam.Perspective() {
			value = px(fovPx)
		}
		for _, rl := range r.layers {
			if rl != nil {
				rl.setPerspective(value)
			}
		}
	}

	style := "translateZ(" + px(fovPx) + ") " +
		CameraCSSMatrix(cam.ViewMatrix()) +
		" translate(" + px(r.width/2) + ", " + px(r.height/2) + ")"
	for _, rl := range r.layers {
		if rl != nil {
			rl.setCameraTransform(style)
		}
	}
}

// updateObject recomputes and applies the given object's transform
// style, writing to the DOM only if it differs from the cached style,
// and clears the object's requires-update flag.
func (r *Renderer) updateObject(obj TrackedObject, camWorld *math32.Matrix4) {
	if obj.Element() == nil {
		return
	}
	r.layerFor(obj).assign(obj)

	computeObjectMatrix(obj, camWorld, &r.objMat)
	// The anchor-centering prefix keeps the element's center at its
	// scene position regardless of content size.
	style := "translate(-50%, -50%) " + ContentCSSMatrix(&r.objMat)
	if style != r.state.objectStyle(obj) {
		obj.Element().SetStyle("transform", style)
		r.state.setObjectStyle(obj, style)
	}
	obj.MarkRefreshed()
}

// layerFor returns the render layer the given object is assigned to,
// falling back to the in-scene layer when the overlay is disabled.
func (r *Renderer) layerFor(obj TrackedObject) *renderLayer {
	if obj.Overlay() && r.layers[LayerOverlay] != nil {
		return r.layers[LayerOverlay]
	}
	return r.layers[LayerInScene]
}
