// Copyright 2025 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package htmlmesh

import (
	"cogentcore.org/htmlmesh/dom"
	"cogentcore.org/htmlmesh/math32"
)

// Scene is the interface to the 3D engine that the renderer composites
// against. The renderer only consumes it: it queries camera matrices
// and tracked objects, hooks into the render loop, and overrides the
// render-order comparators for pass group 0. Everything else about the
// engine is out of scope.
type Scene interface {

	// RenderSize returns the current pixel width and height of the
	// render surface (the canvas backing buffer).
	RenderSize() (width, height int)

	// ActiveCamera returns the camera the scene is currently rendering
	// with, or nil if there is none.
	ActiveCamera() Camera

	// TrackedObjects returns the tracked objects currently in the scene.
	// The returned slice is read-only to the renderer.
	TrackedObjects() []TrackedObject

	// SurfaceRect returns the scroll-adjusted on-page bounding
	// rectangle of the render surface. It is the one call per frame
	// that can suspend, waiting on a pending layout pass; it returns
	// an error if layout is not ready, in which case alignment is
	// skipped for the frame and retried on the next one.
	SurfaceRect() (math32.Box2, error)

	// OnAfterRender calls the given function after every frame the
	// engine renders. This is the renderer's per-frame entry point.
	OnAfterRender(fn func()) Subscription

	// OnCameraChanged calls the given function whenever the active
	// camera's view or projection matrix changes.
	OnCameraChanged(fn func()) Subscription

	// OnActiveCameraChanged calls the given function whenever a
	// different camera becomes active.
	OnActiveCameraChanged(fn func()) Subscription

	// OnResize calls the given function whenever the render surface
	// is resized.
	OnResize(fn func()) Subscription

	// SetRenderOrder overrides the three render-order comparators
	// (opaque, alpha-test, transparent) for the given pass group.
	SetRenderOrder(group int, opaque, alphaTest, transparent CompareFunc)
}

// Camera is the camera state the renderer needs from the scene.
// The returned matrices must not be modified.
type Camera interface {

	// WorldMatrix returns the camera's world transform matrix.
	WorldMatrix() *math32.Matrix4

	// ViewMatrix returns the camera's view matrix
	// (the inverse of the world matrix).
	ViewMatrix() *math32.Matrix4

	// ProjectionMatrix returns the camera's projection matrix.
	ProjectionMatrix() *math32.Matrix4

	// Viewport returns the camera's viewport in normalized 0..1
	// coordinates relative to the render surface.
	Viewport() math32.Box2

	// Perspective returns true for a perspective projection and
	// false for an orthographic one.
	Perspective() bool
}

// TrackedObject is an entity in the 3D scene whose visual
// representation is DOM content rather than rendered geometry.
// The renderer reads its transform state and calls
// [TrackedObject.MarkRefreshed] after applying styles; it never
// creates or destroys tracked objects.
//
// Implementations must be comparable (a pointer type in practice), as
// the renderer keys its per-object style cache on the object value.
// [Surface] is a ready-made implementation.
type TrackedObject interface {

	// Element returns the DOM element that displays this object's content.
	Element() dom.Element

	// WorldMatrix returns the object's world transform matrix.
	// The returned matrix must not be modified.
	WorldMatrix() *math32.Matrix4

	// AbsolutePosition returns the object's position in world coordinates.
	AbsolutePosition() math32.Vector3

	// Size returns the object's logical display width and height
	// in scene units.
	Size() (width, height float32)

	// ContentSizePx returns the source content size in pixels and
	// whether one has been declared. When declared, the renderer
	// rescales the rendered content resolution without altering the
	// object's logical footprint.
	ContentSizePx() (width, height int, ok bool)

	// RequiresUpdate reports whether the object's content or geometry
	// changed since the renderer last refreshed it.
	RequiresUpdate() bool

	// MarkRefreshed clears the requires-update flag. Called by the
	// renderer after it has applied the object's current style.
	MarkRefreshed()

	// Overlay reports whether the object belongs to the overlay layer
	// instead of the in-scene layer.
	Overlay() bool
}

// Subscription is an opaque handle to an event subscription that can
// be removed with [Subscription.Unsubscribe]. The renderer collects
// its subscriptions and unsubscribes them in reverse order of
// acquisition on [Renderer.Destroy].
type Subscription interface {

	// Unsubscribe removes the subscription. It is safe to call
	// more than once.
	Unsubscribe()
}

// SubscriptionFunc adapts a plain function to the [Subscription]
// interface, for scene implementations.
type SubscriptionFunc func()

func (f SubscriptionFunc) Unsubscribe() {
	if f != nil {
		f()
	}
}
