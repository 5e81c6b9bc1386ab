// Copyright 2025 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dom provides a minimal platform-independent interface to an
// HTML document, covering only what htmlmesh needs: element creation,
// tree structure, inline styles, and offset geometry. There are two
// drivers: [cogentcore.org/htmlmesh/dom/jsdom] for running in the
// browser through syscall/js, and [cogentcore.org/htmlmesh/dom/memdom],
// a headless in-memory implementation used for testing and
// non-interactive contexts.
package dom

// Document is a handle to an HTML document. A nil Document means that
// no DOM host is present (e.g., a non-interactive context).
type Document interface {

	// CreateElement creates a new detached element with the given tag name.
	CreateElement(tag string) Element

	// Body returns the document body element.
	Body() Element

	// ElementByID returns the element with the given id attribute,
	// or nil if there is none.
	ElementByID(id string) Element

	// DevicePixelRatio returns the ratio of physical pixels to CSS pixels
	// for the current display.
	DevicePixelRatio() float32
}

// Element is one element in a [Document]. Element values are opaque
// handles: two handles for the same underlying node are not guaranteed
// to compare equal with ==, so containment checks must go through
// [Element.Contains].
type Element interface {

	// Tag returns the element tag name (lowercase).
	Tag() string

	// ID returns the element id attribute.
	ID() string

	// SetID sets the element id attribute.
	SetID(id string)

	// Style returns the value of the given inline style property,
	// or "" if it is not set.
	Style(name string) string

	// SetStyle sets the given inline style property.
	// An empty value removes the property.
	SetStyle(name, value string)

	// AppendChild appends the given element as the last child of this
	// element, removing it from any previous parent.
	AppendChild(child Element)

	// Parent returns the parent element, or nil if this element is
	// detached or is the document root.
	Parent() Element

	// Remove detaches this element from its parent, if any.
	Remove()

	// Contains reports whether the given element is this element
	// or one of its descendants.
	Contains(other Element) bool

	// OffsetParent returns the closest positioned ancestor element used
	// as the reference for [Element.Offset], or nil for the document
	// root and detached elements.
	OffsetParent() Element

	// Offset returns the top/left position of this element in pixels,
	// relative to its [Element.OffsetParent].
	Offset() Sides

	// Margin returns the computed top/left margins of this element in pixels.
	Margin() Sides

	// Padding returns the computed top/left padding of this element in pixels.
	Padding() Sides
}

// Sides is a pair of top and left CSS pixel lengths.
type Sides struct {
	Top  float32
	Left float32
}

// Add returns the element-wise sum of the two sides.
func (s Sides) Add(o Sides) Sides {
	return Sides{Top: s.Top + o.Top, Left: s.Left + o.Left}
}

// Sub returns the element-wise difference of the two sides.
func (s Sides) Sub(o Sides) Sides {
	return Sides{Top: s.Top - o.Top, Left: s.Left - o.Left}
}
