// Copyright 2025 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package htmlmesh

import (
	"cogentcore.org/htmlmesh/dom"
	"cogentcore.org/htmlmesh/math32"
)

// Surface is a ready-made [TrackedObject]: a flat rectangle in the
// scene whose visual representation is the DOM content of Elem.
// Position, rotation, and scale are set through the embedded [Pose];
// Width and Height give the logical footprint in scene units,
// independent of the pixel resolution of the content.
type Surface struct {
	Pose

	// Elem is the DOM element displaying this surface's content.
	Elem dom.Element

	// Width and Height are the logical display size in scene units.
	Width, Height float32

	contentWidth  int
	contentHeight int
	hasContentPx  bool

	needsUpdate bool
	overlay     bool
}

var _ TrackedObject = (*Surface)(nil)

// NewSurface returns a new [Surface] displaying the given element with
// the given logical width and height in scene units.
func NewSurface(el dom.Element, width, height float32) *Surface {
	sf := &Surface{Elem: el, Width: width, Height: height, needsUpdate: true}
	sf.Pose.Defaults()
	return sf
}

// Element returns the DOM element displaying this surface's content.
func (sf *Surface) Element() dom.Element {
	return sf.Elem
}

// WorldMatrix recomputes and returns the surface's world transform matrix.
func (sf *Surface) WorldMatrix() *math32.Matrix4 {
	sf.UpdateMatrix()
	sf.UpdateWorldMatrix(nil)
	return &sf.Pose.WorldMatrix
}

// AbsolutePosition returns the surface's position in world coordinates.
func (sf *Surface) AbsolutePosition() math32.Vector3 {
	sf.UpdateMatrix()
	sf.UpdateWorldMatrix(nil)
	return sf.WorldPos()
}

// Size returns the logical display width and height in scene units.
func (sf *Surface) Size() (width, height float32) {
	return sf.Width, sf.Height
}

// SetSize sets the logical display width and height in scene units
// and flags the surface for refresh.
func (sf *Surface) SetSize(width, height float32) {
	sf.Width = width
	sf.Height = height
	sf.needsUpdate = true
}

// ContentSizePx returns the declared source content size in pixels,
// if any.
func (sf *Surface) ContentSizePx() (width, height int, ok bool) {
	return sf.contentWidth, sf.contentHeight, sf.hasContentPx
}

// SetContentSizePx declares the source content size in pixels, sizes
// the element to match, and flags the surface for refresh. The
// renderer uses the declared size to rescale the rendered content
// resolution without altering the surface's logical footprint.
func (sf *Surface) SetContentSizePx(width, height int) {
	sf.contentWidth = width
	sf.contentHeight = height
	sf.hasContentPx = true
	if sf.Elem != nil {
		sf.Elem.SetStyle("width", px(float32(width)))
		sf.Elem.SetStyle("height", px(float32(height)))
	}
	sf.needsUpdate = true
}

// FitContentTo sets the content size to the largest pixel dimensions
// that fit within the given available screen space while preserving
// the surface's Width:Height aspect ratio, and returns them.
func (sf *Surface) FitContentTo(availWidth, availHeight int) (width, height int) {
	if sf.Width <= 0 || sf.Height <= 0 || availWidth <= 0 || availHeight <= 0 {
		return 0, 0
	}
	aspect := sf.Width / sf.Height
	w := float32(availWidth)
	h := w / aspect
	if h > float32(availHeight) {
		h = float32(availHeight)
		w = h * aspect
	}
	width = int(w)
	height = int(h)
	sf.SetContentSizePx(width, height)
	return width, height
}

// RequiresUpdate reports whether the surface changed since the
// renderer last refreshed it.
func (sf *Surface) RequiresUpdate() bool {
	return sf.needsUpdate
}

// MarkNeedsUpdate flags the surface for refresh on the next frame.
// Call after bulk-setting Pose or size fields directly.
func (sf *Surface) MarkNeedsUpdate() {
	sf.needsUpdate = true
}

// MarkRefreshed clears the requires-update flag.
func (sf *Surface) MarkRefreshed() {
	sf.needsUpdate = false
}

// Overlay reports whether the surface belongs to the overlay layer.
func (sf *Surface) Overlay() bool {
	return sf.overlay
}

// SetOverlay assigns the surface to the overlay layer (true) or the
// in-scene layer (false). Takes effect the next time the renderer
// assigns the element to a layer.
func (sf *Surface) SetOverlay(overlay bool) {
	sf.overlay = overlay
	sf.needsUpdate = true
}

// SetPosition sets the surface's position in scene units and flags it
// for refresh.
func (sf *Surface) SetPosition(x, y, z float32) {
	sf.Pos.Set(x, y, z)
	sf.needsUpdate = true
}

// SetRotation sets the surface's rotation in Euler angles (degrees)
// and flags it for refresh.
func (sf *Surface) SetRotation(x, y, z float32) {
	sf.SetEulerRotation(x, y, z)
	sf.needsUpdate = true
}
