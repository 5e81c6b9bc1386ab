// Copyright 2025 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package htmlmesh

// RenderItem is a submesh-level entry in one of the scene's render
// queues. The renderer treats items as opaque except for the
// [Trackable] capability.
type RenderItem interface{}

// Trackable is the capability implemented by render items whose
// geometry belongs to a tracked object. The render-order comparators
// dispatch on this declared capability rather than probing properties.
type Trackable interface {

	// TrackedContent returns the tracked object this item's geometry
	// belongs to.
	TrackedContent() TrackedObject
}

// CompareFunc compares two render items for render ordering: a
// negative result renders a before b, positive b before a.
type CompareFunc func(a, b RenderItem) int

// renderOrderCompare returns the comparator installed in the scene's
// pass group 0 slots. Tracked-object geometry is transparent holes in
// the 3D pass: it must render before any ordinary geometry so that it
// is never painted over and never suppresses geometry behind it.
// Two tracked items order by their objects' depth, descending; two
// ordinary items fall back to the given comparator.
func renderOrderCompare(fallback CompareFunc) CompareFunc {
	return func(a, b RenderItem) int {
		ta, aok := a.(Trackable)
		tb, bok := b.(Trackable)
		switch {
		case aok && bok:
			za := ta.TrackedContent().AbsolutePosition().Z
			zb := tb.TrackedContent().AbsolutePosition().Z
			switch {
			case za > zb:
				return -1
			case za < zb:
				return 1
			}
			return 0
		case aok:
			return -1
		case bok:
			return 1
		}
		if fallback != nil {
			return fallback(a, b)
		}
		return 0
	}
}
