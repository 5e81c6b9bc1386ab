// Copyright 2025 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package htmlmesh

import "cogentcore.org/htmlmesh/math32"

// UnitsToPixels is the fixed conversion ratio between scene units and
// CSS pixels.
const UnitsToPixels = 100

// wEpsilon scales the homogeneous W translation term. It preserves the
// perspective divide while avoiding precision blowup; the value is
// empirically tuned, not derived.
const wEpsilon = 1e-5

// computeObjectMatrix computes the transform of the given tracked
// object in pixel units relative to the camera, ready for content-mode
// CSS conversion, writing the result into out. out is a scratch matrix
// owned by the caller; the tracked object is never modified. A nil
// camera world matrix yields the identity, so the object degrades to
// no visible transform rather than failing.
func computeObjectMatrix(obj TrackedObject, camWorld *math32.Matrix4, out *math32.Matrix4) {
	if camWorld == nil {
		out.SetIdentity()
		return
	}

	pos, quat, scale := obj.WorldMatrix().Decompose()

	// Rescale the rendered content resolution to the logical footprint,
	// leaving Z alone so the object's depth is unchanged.
	factor := contentScaleFactor(obj)
	scale.X *= factor
	scale.Y *= factor

	out.SetTransform(pos, quat, scale)

	// The translation is camera-relative in pixel units. Depth flips
	// sign because the CSS depth convention is opposite, and the
	// homogeneous W term keeps the perspective divide well-conditioned.
	absPos := obj.AbsolutePosition()
	camPos := camWorld.Pos()
	out[12] = (absPos.X - camPos.X) * UnitsToPixels
	out[13] = (absPos.Y - camPos.Y) * UnitsToPixels
	out[14] = (camPos.Z - absPos.Z) * UnitsToPixels
	out[15] = camWorld[15] * wEpsilon * UnitsToPixels

	// The positional perspective terms have to be in the same unit
	// system as the translation.
	out[3] *= UnitsToPixels
	out[7] *= UnitsToPixels
	out[11] *= UnitsToPixels
}

// contentScaleFactor returns the width/height scale factor that maps
// the object's declared source content resolution onto its logical
// display size, or 1 if no content size is declared.
func contentScaleFactor(obj TrackedObject) float32 {
	cw, ch, ok := obj.ContentSizePx()
	if !ok {
		return 1
	}
	w, h := obj.Size()
	if cw > 0 && w > 0 {
		return w / (float32(cw) / UnitsToPixels)
	}
	if ch > 0 && h > 0 {
		return h / (float32(ch) / UnitsToPixels)
	}
	return 1
}
