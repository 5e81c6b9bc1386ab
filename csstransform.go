// Copyright 2025 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package htmlmesh

import (
	"strconv"
	"strings"

	"cogentcore.org/htmlmesh/math32"
)

// zeroSnap is the threshold below which matrix components are emitted
// as literal 0. Tiny residues otherwise come out as "-0" or exponent
// notation, which some browser CSS parsers mishandle.
const zeroSnap = 1e-10

// CameraCSSMatrix converts the given matrix to a CSS matrix3d function
// string in camera mode, for the camera element's inverse transform:
// the Y-axis components (flat indices 1, 5, 9, 13) are sign-flipped to
// map the engine's left-handed vertical axis into CSS space. The input
// matrix is not modified.
func CameraCSSMatrix(m *math32.Matrix4) string {
	cm := *m
	cm[1] = -cm[1]
	cm[5] = -cm[5]
	cm[9] = -cm[9]
	cm[13] = -cm[13]
	return matrix3d(&cm)
}

// ContentCSSMatrix converts the given matrix to a CSS matrix3d
// function string in content mode, for individual tracked-object
// content: flat indices 2, 4, 5, 7, 8, 9 are sign-flipped, flipping
// depth and the Y coupling terms so that content authored in the
// engine's left-handed system is correctly oriented in CSS's
// right-handed one. The input matrix is not modified.
func ContentCSSMatrix(m *math32.Matrix4) string {
	cm := *m
	cm[2] = -cm[2]
	cm[4] = -cm[4]
	cm[5] = -cm[5]
	cm[7] = -cm[7]
	cm[8] = -cm[8]
	cm[9] = -cm[9]
	return matrix3d(&cm)
}

// matrix3d returns the 16-argument matrix3d CSS function call for the
// given matrix, with each component snapped to 0 below [zeroSnap].
func matrix3d(m *math32.Matrix4) string {
	sb := strings.Builder{}
	sb.WriteString("matrix3d(")
	for i, v := range m {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(cssFloat(v))
	}
	sb.WriteString(")")
	return sb.String()
}

// cssFloat formats a matrix component for CSS: fixed notation only
// (never exponent), with values below [zeroSnap] snapped to literal 0.
func cssFloat(v float32) string {
	if math32.Abs(v) < zeroSnap {
		return "0"
	}
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}

// px formats a pixel length style value.
func px(v float32) string {
	return cssFloat(v) + "px"
}
