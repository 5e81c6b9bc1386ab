// Copyright 2025 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package htmlmesh

import "cogentcore.org/htmlmesh/math32"

// renderState caches the camera and style state that the change
// detector compares against, so that a frame in which nothing changed
// performs zero DOM writes. This is the core performance contract:
// a style write for a given piece of state happens only if the newly
// computed value differs from the cached one.
type renderState struct {

	// cameraNotified is set by the camera-change and active-camera
	// subscriptions and consumed by the next frame.
	cameraNotified bool

	// camPos is the cached camera world position; haveCamPos is false
	// until the first frame with a camera.
	camPos     math32.Vector3
	haveCamPos bool

	// fovPx is the cached field-of-view derived pixel value
	// (projection vertical scale times half the surface height), along
	// with the projection kind it was computed for.
	fovPx          float32
	fovPerspective bool
	haveFOV        bool

	// pixelRatio is the cached device pixel ratio; a density change
	// invalidates all pixel-based sizing.
	pixelRatio float32

	// styles is the per-object last-applied style side-table. Entries
	// are created lazily on first render and dropped only wholesale on
	// teardown; a stale entry for a removed object is harmless.
	styles map[TrackedObject]string
}

func newRenderState() *renderState {
	return &renderState{styles: map[TrackedObject]string{}}
}

// markCameraNotified records an external camera-change notification
// for the next frame.
func (rs *renderState) markCameraNotified() {
	rs.cameraNotified = true
}

// invalidateCamera forces the next frame to recompute and reapply all
// camera-derived styles, regardless of whether the camera itself moved.
// The FOV pixel value and the centering translate depend on the layer
// size, so a resize has to go through here.
func (rs *renderState) invalidateCamera() {
	rs.cameraNotified = true
	rs.haveFOV = false
}

// globalDirty reports whether camera-dependent state changed since the
// last frame: an external camera-change notification, a camera world
// position change, or a device pixel ratio change.
func (rs *renderState) globalDirty(camPos math32.Vector3, pixelRatio float32) bool {
	if rs.cameraNotified {
		return true
	}
	if !rs.haveCamPos || rs.camPos != camPos {
		return true
	}
	return rs.pixelRatio != pixelRatio
}

// commit records the camera state the frame was rendered with and
// clears the notification flag.
func (rs *renderState) commit(camPos math32.Vector3, pixelRatio float32) {
	rs.cameraNotified = false
	rs.camPos = camPos
	rs.haveCamPos = true
	rs.pixelRatio = pixelRatio
}

// fovChanged reports whether the given FOV pixel value or projection
// kind differs from the cached ones, caching the new values. The kind
// is part of the key: a perspective/orthographic switch must rewrite
// the perspective property even when the pixel values coincide.
func (rs *renderState) fovChanged(fovPx float32, perspective bool) bool {
	if rs.haveFOV && rs.fovPx == fovPx && rs.fovPerspective == perspective {
		return false
	}
	rs.fovPx = fovPx
	rs.fovPerspective = perspective
	rs.haveFOV = true
	return true
}

// objectStyle returns the last style applied to the given object.
func (rs *renderState) objectStyle(obj TrackedObject) string {
	return rs.styles[obj]
}

// setObjectStyle records the style applied to the given object.
func (rs *renderState) setObjectStyle(obj TrackedObject, style string) {
	rs.styles[obj] = style
}
