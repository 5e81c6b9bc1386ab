// Copyright 2025 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build js

// Package jsdom implements [cogentcore.org/htmlmesh/dom] on the
// browser DOM through syscall/js.
package jsdom

import (
	"errors"
	"strconv"
	"strings"
	"syscall/js"

	"cogentcore.org/htmlmesh/dom"
	"cogentcore.org/htmlmesh/math32"
)

var (
	_ dom.Document = (*Document)(nil)
	_ dom.Element  = (*Element)(nil)
)

// Document is the [dom.Document] implementation for the web platform.
type Document struct {
	val js.Value
}

// New returns the browser document, or nil if there is no DOM host
// (e.g., running under a non-browser wasm runtime).
func New() dom.Document {
	doc := js.Global().Get("document")
	if doc.IsUndefined() || doc.IsNull() {
		return nil
	}
	return &Document{val: doc}
}

// CreateElement creates a new detached element with the given tag name.
func (d *Document) CreateElement(tag string) dom.Element {
	return &Element{val: d.val.Call("createElement", tag)}
}

// Body returns the document body element.
func (d *Document) Body() dom.Element {
	return &Element{val: d.val.Get("body")}
}

// ElementByID returns the element with the given id attribute,
// or nil if there is none.
func (d *Document) ElementByID(id string) dom.Element {
	v := d.val.Call("getElementById", id)
	if v.IsNull() {
		return nil
	}
	return &Element{val: v}
}

// DevicePixelRatio returns window.devicePixelRatio.
func (d *Document) DevicePixelRatio() float32 {
	dpr := js.Global().Get("devicePixelRatio")
	if dpr.IsUndefined() {
		return 1
	}
	return float32(dpr.Float())
}

// Element is the [dom.Element] implementation for the web platform.
// Note that each DOM query returns a new handle, so Element values
// must be compared with [Element.Contains], never with ==.
type Element struct {
	val js.Value
}

// Value returns the underlying [js.Value] of this element.
func (el *Element) Value() js.Value {
	return el.val
}

// Tag returns the element tag name (lowercase).
func (el *Element) Tag() string {
	return strings.ToLower(el.val.Get("tagName").String())
}

// ID returns the element id attribute.
func (el *Element) ID() string {
	return el.val.Get("id").String()
}

// SetID sets the element id attribute.
func (el *Element) SetID(id string) {
	el.val.Set("id", id)
}

// Style returns the value of the given inline style property.
func (el *Element) Style(name string) string {
	return el.val.Get("style").Call("getPropertyValue", name).String()
}

// SetStyle sets the given inline style property; an empty value
// removes the property.
func (el *Element) SetStyle(name, value string) {
	style := el.val.Get("style")
	if value == "" {
		style.Call("removeProperty", name)
		return
	}
	style.Call("setProperty", name, value)
}

// AppendChild appends the given element as the last child of this
// element, removing it from any previous parent.
func (el *Element) AppendChild(child dom.Element) {
	el.val.Call("appendChild", child.(*Element).val)
}

// Parent returns the parent element, or nil if detached.
func (el *Element) Parent() dom.Element {
	v := el.val.Get("parentElement")
	if v.IsNull() {
		return nil
	}
	return &Element{val: v}
}

// Remove detaches this element from its parent, if any.
func (el *Element) Remove() {
	el.val.Call("remove")
}

// Contains reports whether the given element is this element
// or one of its descendants.
func (el *Element) Contains(other dom.Element) bool {
	oe, ok := other.(*Element)
	if !ok {
		return false
	}
	return el.val.Call("contains", oe.val).Bool()
}

// OffsetParent returns the browser offsetParent element, or nil.
func (el *Element) OffsetParent() dom.Element {
	v := el.val.Get("offsetParent")
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	return &Element{val: v}
}

// Offset returns offsetTop/offsetLeft in pixels.
func (el *Element) Offset() dom.Sides {
	return dom.Sides{
		Top:  float32(el.val.Get("offsetTop").Float()),
		Left: float32(el.val.Get("offsetLeft").Float()),
	}
}

// Margin returns the computed top/left margins in pixels.
func (el *Element) Margin() dom.Sides {
	return dom.Sides{
		Top:  el.computedPx("margin-top"),
		Left: el.computedPx("margin-left"),
	}
}

// Padding returns the computed top/left padding in pixels.
func (el *Element) Padding() dom.Sides {
	return dom.Sides{
		Top:  el.computedPx("padding-top"),
		Left: el.computedPx("padding-left"),
	}
}

// computedPx returns the given computed style property as pixels.
func (el *Element) computedPx(name string) float32 {
	cs := js.Global().Call("getComputedStyle", el.val)
	return parsePx(cs.Call("getPropertyValue", name).String())
}

// PageRect returns the scroll-adjusted on-page bounding rectangle of
// the given element, for wiring a Scene's surface rectangle query.
// It returns an error if the element is not laid out yet.
func PageRect(el dom.Element) (math32.Box2, error) {
	je, ok := el.(*Element)
	if !ok || je.val.IsUndefined() || je.val.IsNull() {
		return math32.B2Empty(), errors.New("jsdom.PageRect: no element")
	}
	rect := je.val.Call("getBoundingClientRect")
	w := float32(rect.Get("width").Float())
	h := float32(rect.Get("height").Float())
	if w == 0 && h == 0 {
		return math32.B2Empty(), errors.New("jsdom.PageRect: element has no layout")
	}
	sx := float32(js.Global().Get("scrollX").Float())
	sy := float32(js.Global().Get("scrollY").Float())
	left := float32(rect.Get("left").Float()) + sx
	top := float32(rect.Get("top").Float()) + sy
	return math32.B2(left, top, left+w, top+h), nil
}

// parsePx parses a CSS pixel length such as "12px", returning 0
// for anything else.
func parsePx(s string) float32 {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0
	}
	return float32(f)
}
