// Copyright 2025 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package memdom implements [cogentcore.org/htmlmesh/dom] on an
// in-memory HTML tree, for testing and for non-interactive contexts
// with no browser present. Elements are backed by [html.Node] values,
// so a document can be serialized with [Element.OuterHTML] at any
// point. There is no layout engine: offset geometry is whatever the
// test sets with [Element.SetOffset] and the margin/padding style
// properties.
package memdom

import (
	"slices"
	"strconv"
	"strings"

	"cogentcore.org/htmlmesh/dom"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	_ dom.Document = (*Document)(nil)
	_ dom.Element  = (*Element)(nil)
)

// Document is the [dom.Document] implementation for the memdom platform.
type Document struct {
	body *Element

	// elems resolves html nodes back to their element handles.
	elems map[*html.Node]*Element

	pixelRatio float32

	// styleWrites counts every SetStyle call made against this document,
	// changed or not. The renderer's cache guard is supposed to prevent
	// redundant calls entirely, so tests assert on this counter directly.
	styleWrites int
}

// NewDocument returns a new empty [Document] with a body element
// and a device pixel ratio of 1.
func NewDocument() *Document {
	d := &Document{
		elems:      map[*html.Node]*Element{},
		pixelRatio: 1,
	}
	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	d.body = &Element{doc: d, node: body}
	d.elems[body] = d.body
	return d
}

// CreateElement creates a new detached element with the given tag name.
func (d *Document) CreateElement(tag string) dom.Element {
	tag = strings.ToLower(tag)
	n := &html.Node{Type: html.ElementNode, DataAtom: atom.Lookup([]byte(tag)), Data: tag}
	el := &Element{doc: d, node: n}
	d.elems[n] = el
	return el
}

// Body returns the document body element.
func (d *Document) Body() dom.Element {
	return d.body
}

// ElementByID returns the element with the given id attribute,
// or nil if there is none.
func (d *Document) ElementByID(id string) dom.Element {
	found := d.body.find(func(el *Element) bool {
		return el.ID() == id
	})
	if found == nil {
		return nil // must be untyped nil, not (*Element)(nil)
	}
	return found
}

// DevicePixelRatio returns the current device pixel ratio (default 1).
func (d *Document) DevicePixelRatio() float32 {
	return d.pixelRatio
}

// SetDevicePixelRatio sets the device pixel ratio reported by
// [Document.DevicePixelRatio].
func (d *Document) SetDevicePixelRatio(ratio float32) {
	d.pixelRatio = ratio
}

// StyleWrites returns the number of SetStyle calls made against any
// element of this document since the last [Document.ResetStyleWrites].
func (d *Document) StyleWrites() int {
	return d.styleWrites
}

// ResetStyleWrites resets the style write counter to zero.
func (d *Document) ResetStyleWrites() {
	d.styleWrites = 0
}

// Element is the [dom.Element] implementation for the memdom platform.
type Element struct {
	doc  *Document
	node *html.Node

	// styles holds the inline style properties; styleOrder preserves
	// first-set order for deterministic serialization.
	styles     map[string]string
	styleOrder []string

	offset       dom.Sides
	offsetParent *Element
}

// Tag returns the element tag name.
func (el *Element) Tag() string {
	return el.node.Data
}

// ID returns the element id attribute.
func (el *Element) ID() string {
	return el.attr("id")
}

// SetID sets the element id attribute.
func (el *Element) SetID(id string) {
	el.setAttr("id", id)
}

// Style returns the value of the given inline style property.
func (el *Element) Style(name string) string {
	return el.styles[name]
}

// SetStyle sets the given inline style property; an empty value
// removes it. Every call counts as a DOM write for the document's
// style write counter.
func (el *Element) SetStyle(name, value string) {
	el.doc.styleWrites++
	if value == "" {
		if _, has := el.styles[name]; has {
			delete(el.styles, name)
			el.styleOrder = slices.DeleteFunc(el.styleOrder, func(s string) bool {
				return s == name
			})
		}
	} else {
		if el.styles == nil {
			el.styles = map[string]string{}
		}
		if _, has := el.styles[name]; !has {
			el.styleOrder = append(el.styleOrder, name)
		}
		el.styles[name] = value
	}
	el.setAttr("style", el.styleText())
}

// SetStyleText replaces all inline style properties by parsing the
// given CSS declaration list (the syntax of a style attribute).
// Malformed declarations are ignored.
func (el *Element) SetStyleText(text string) {
	el.styles = map[string]string{}
	el.styleOrder = nil
	decls, err := parser.ParseDeclarations(text)
	if err != nil {
		return
	}
	for _, decl := range decls {
		prop := strings.ToLower(decl.Property)
		if _, has := el.styles[prop]; !has {
			el.styleOrder = append(el.styleOrder, prop)
		}
		el.styles[prop] = decl.Value
	}
	el.setAttr("style", el.styleText())
}

// AppendChild appends the given element as the last child of this
// element, removing it from any previous parent.
func (el *Element) AppendChild(child dom.Element) {
	ce := child.(*Element)
	if ce.node.Parent != nil {
		ce.node.Parent.RemoveChild(ce.node)
	}
	el.node.AppendChild(ce.node)
}

// Parent returns the parent element, or nil if detached.
func (el *Element) Parent() dom.Element {
	if el.node.Parent == nil {
		return nil
	}
	return el.doc.elems[el.node.Parent]
}

// Remove detaches this element from its parent, if any.
func (el *Element) Remove() {
	if el.node.Parent != nil {
		el.node.Parent.RemoveChild(el.node)
	}
}

// Contains reports whether the given element is this element
// or one of its descendants.
func (el *Element) Contains(other dom.Element) bool {
	oe, ok := other.(*Element)
	if !ok {
		return false
	}
	for n := oe.node; n != nil; n = n.Parent {
		if n == el.node {
			return true
		}
	}
	return false
}

// OffsetParent returns the element set with [Element.SetOffsetParent],
// falling back to the parent element, and nil for the body.
func (el *Element) OffsetParent() dom.Element {
	if el == el.doc.body {
		return nil
	}
	if el.offsetParent != nil {
		return el.offsetParent
	}
	return el.Parent()
}

// SetOffsetParent sets the element returned by [Element.OffsetParent].
func (el *Element) SetOffsetParent(parent *Element) {
	el.offsetParent = parent
}

// Offset returns the position set with [Element.SetOffset].
func (el *Element) Offset() dom.Sides {
	return el.offset
}

// SetOffset sets the element's top/left position relative to its
// offset parent, standing in for browser layout.
func (el *Element) SetOffset(top, left float32) {
	el.offset = dom.Sides{Top: top, Left: left}
}

// Margin returns the top/left margins from the margin-top and
// margin-left inline style properties.
func (el *Element) Margin() dom.Sides {
	return dom.Sides{
		Top:  parsePx(el.styles["margin-top"]),
		Left: parsePx(el.styles["margin-left"]),
	}
}

// Padding returns the top/left padding from the padding-top and
// padding-left inline style properties.
func (el *Element) Padding() dom.Sides {
	return dom.Sides{
		Top:  parsePx(el.styles["padding-top"]),
		Left: parsePx(el.styles["padding-left"]),
	}
}

// OuterHTML returns this element and its subtree serialized as HTML.
func (el *Element) OuterHTML() string {
	sb := &strings.Builder{}
	err := html.Render(sb, el.node)
	if err != nil {
		return ""
	}
	return sb.String()
}

// find returns the first element in this subtree for which the given
// function returns true, in depth-first order, or nil.
func (el *Element) find(fn func(el *Element) bool) *Element {
	if fn(el) {
		return el
	}
	for n := el.node.FirstChild; n != nil; n = n.NextSibling {
		ce := el.doc.elems[n]
		if ce == nil {
			continue
		}
		if found := ce.find(fn); found != nil {
			return found
		}
	}
	return nil
}

// styleText serializes the style map in first-set order.
func (el *Element) styleText() string {
	sb := &strings.Builder{}
	for _, name := range el.styleOrder {
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(name)
		sb.WriteString(": ")
		sb.WriteString(el.styles[name])
		sb.WriteString(";")
	}
	return sb.String()
}

// attr returns the value of the given attribute.
func (el *Element) attr(name string) string {
	for _, a := range el.node.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// setAttr sets the given attribute, removing it if the value is empty.
func (el *Element) setAttr(name, value string) {
	for i, a := range el.node.Attr {
		if a.Key == name {
			if value == "" {
				el.node.Attr = slices.Delete(el.node.Attr, i, i+1)
			} else {
				el.node.Attr[i].Val = value
			}
			return
		}
	}
	if value == "" {
		return
	}
	el.node.Attr = append(el.node.Attr, html.Attribute{Key: name, Val: value})
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
