// Copyright 2025 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package htmlmesh

import (
	"testing"

	"cogentcore.org/htmlmesh/dom/memdom"
	"github.com/stretchr/testify/assert"
)

func TestSurfaceContentSize(t *testing.T) {
	doc := memdom.NewDocument()
	el := doc.CreateElement("div")
	sf := NewSurface(el, 4, 3)
	sf.MarkRefreshed()

	sf.SetContentSizePx(800, 600)
	assert.True(t, sf.RequiresUpdate())
	w, h, ok := sf.ContentSizePx()
	assert.True(t, ok)
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
	assert.Equal(t, "800px", el.Style("width"))
	assert.Equal(t, "600px", el.Style("height"))
}

func TestSurfaceFitContentTo(t *testing.T) {
	doc := memdom.NewDocument()
	sf := NewSurface(doc.CreateElement("div"), 4, 3)

	// Height-limited: the largest 4:3 rect in 1000x600 is 800x600.
	w, h := sf.FitContentTo(1000, 600)
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
	cw, ch, ok := sf.ContentSizePx()
	assert.True(t, ok)
	assert.Equal(t, 800, cw)
	assert.Equal(t, 600, ch)

	// Width-limited.
	w, h = sf.FitContentTo(400, 1000)
	assert.Equal(t, 400, w)
	assert.Equal(t, 300, h)

	// Degenerate inputs.
	w, h = sf.FitContentTo(0, 100)
	assert.Equal(t, 0, w)
	assert.Equal(t, 0, h)
}

func TestSurfaceUpdateFlag(t *testing.T) {
	sf := NewSurface(nil, 1, 1)
	assert.True(t, sf.RequiresUpdate()) // new surfaces need a first render

	sf.MarkRefreshed()
	assert.False(t, sf.RequiresUpdate())

	sf.SetPosition(1, 0, 0)
	assert.True(t, sf.RequiresUpdate())
	sf.MarkRefreshed()

	sf.SetRotation(0, 0, 45)
	assert.True(t, sf.RequiresUpdate())
	sf.MarkRefreshed()

	sf.SetSize(2, 2)
	assert.True(t, sf.RequiresUpdate())
	sf.MarkRefreshed()

	sf.SetOverlay(true)
	assert.True(t, sf.Overlay())
	assert.True(t, sf.RequiresUpdate())
}
