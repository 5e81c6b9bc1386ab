// Copyright 2025 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package htmlmesh

import (
	"cogentcore.org/htmlmesh/dom"
	"cogentcore.org/htmlmesh/math32"
)

// Layer identifies one of the two DOM render layers.
type Layer int32

const (
	// LayerInScene is the layer composited behind the render surface,
	// showing through wherever tracked-object geometry leaves
	// transparent holes in the 3D pass.
	LayerInScene Layer = iota

	// LayerOverlay is the non-interactive layer composited in front of
	// the render surface.
	LayerOverlay

	// LayersN is the number of render layers.
	LayersN
)

func (l Layer) String() string {
	switch l {
	case LayerInScene:
		return "in-scene"
	case LayerOverlay:
		return "overlay"
	}
	return "invalid"
}

// renderLayer owns the DOM structure for one render layer: an
// absolutely-positioned container matched to the render surface's
// on-page rectangle, a perspective element bearing the CSS perspective
// for the camera field of view, and a camera element bearing the
// camera's inverse transform and parenting all tracked-object elements
// assigned to the layer. All style writes are cache-guarded.
type renderLayer struct {
	layer       Layer
	container   dom.Element
	perspective dom.Element
	camera      dom.Element

	// caches of last applied style values
	width, height  string
	top, left      string
	perspectiveCSS string
	cameraCSS      string
}

// newRenderLayer builds the layer's three-element DOM structure under
// the given parent. Any pre-existing element with the same id is
// removed first, so re-creation is idempotent.
func newRenderLayer(doc dom.Document, layer Layer, id string, parent dom.Element) *renderLayer {
	if old := doc.ElementByID(id); old != nil {
		old.Remove()
	}
	rl := &renderLayer{layer: layer}

	rl.container = doc.CreateElement("div")
	rl.container.SetID(id)
	rl.container.SetStyle("position", "absolute")
	rl.container.SetStyle("pointer-events", "none")
	if layer == LayerInScene {
		// Behind the render surface, showing through transparent holes.
		rl.container.SetStyle("z-index", "-1")
	} else {
		rl.container.SetStyle("z-index", "10")
	}

	rl.perspective = doc.CreateElement("div")
	rl.perspective.SetStyle("overflow", "hidden")

	rl.camera = doc.CreateElement("div")
	rl.camera.SetStyle("transform-style", "preserve-3d")

	rl.perspective.AppendChild(rl.camera)
	rl.container.AppendChild(rl.perspective)
	parent.AppendChild(rl.container)
	return rl
}

// setSize applies the given pixel size to the perspective and camera
// elements, if changed.
func (rl *renderLayer) setSize(width, height float32) {
	if w := px(width); w != rl.width {
		rl.width = w
		rl.perspective.SetStyle("width", w)
		rl.camera.SetStyle("width", w)
	}
	if h := px(height); h != rl.height {
		rl.height = h
		rl.perspective.SetStyle("height", h)
		rl.camera.SetStyle("height", h)
	}
}

// alignTo positions the container to coincide with the given on-page
// rectangle of the render surface (already scroll-adjusted). The
// required top/left is the rectangle's corner minus the parent chain's
// on-page position and cumulative margins and paddings (the page root
// excluded), plus the body's own margin.
func (rl *renderLayer) alignTo(rect math32.Box2, body dom.Element) {
	top := rect.Min.Y
	left := rect.Min.X
	for e := rl.container.OffsetParent(); e != nil; {
		off := e.Offset()
		top -= off.Top
		left -= off.Left
		// One lookup per ancestor: each OffsetParent call is a DOM
		// round-trip in the browser driver.
		par := e.OffsetParent()
		if par != nil {
			m := e.Margin()
			p := e.Padding()
			top -= m.Top + p.Top
			left -= m.Left + p.Left
		}
		e = par
	}
	if body != nil {
		m := body.Margin()
		top += m.Top
		left += m.Left
	}
	if t := px(top); t != rl.top {
		rl.top = t
		rl.container.SetStyle("top", t)
	}
	if l := px(left); l != rl.left {
		rl.left = l
		rl.container.SetStyle("left", l)
	}
}

// setPerspective applies the perspective CSS property to the
// perspective element, if changed; an empty value clears it
// (orthographic cameras).
func (rl *renderLayer) setPerspective(value string) {
	if value == rl.perspectiveCSS {
		return
	}
	rl.perspectiveCSS = value
	rl.perspective.SetStyle("perspective", value)
}

// setCameraTransform applies the camera transform to the camera
// element, if changed.
func (rl *renderLayer) setCameraTransform(value string) {
	if value == rl.cameraCSS {
		return
	}
	rl.cameraCSS = value
	rl.camera.SetStyle("transform", value)
}

// assign parents the given object's element under the camera element
// if it is not already there. Reparenting resets element state in real
// browsers, so this must stay idempotent.
func (rl *renderLayer) assign(obj TrackedObject) {
	el := obj.Element()
	if el == nil || rl.camera.Contains(el) {
		return
	}
	rl.camera.AppendChild(el)
	el.SetStyle("position", "absolute")
	if rl.layer == LayerOverlay {
		el.SetStyle("pointer-events", "none")
	} else {
		el.SetStyle("pointer-events", "auto")
	}
}

// destroy removes the layer's DOM structure from the document.
func (rl *renderLayer) destroy() {
	rl.container.Remove()
}
