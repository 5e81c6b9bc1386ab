// Copyright 2025 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package htmlmesh

import "cogentcore.org/htmlmesh/math32"

// Pose contains the full specification of position and orientation
// for an object in the scene, always relative to the parent element.
type Pose struct {

	// Pos is the position of the center of the element, relative to the parent.
	Pos math32.Vector3

	// Scale is the scale of the element, relative to the parent.
	Scale math32.Vector3

	// Quat is the rotation of the element, specified as a quaternion,
	// relative to the parent.
	Quat math32.Quat

	// Matrix is the local transform matrix, containing all position,
	// rotation, and scale information, relative to the parent.
	Matrix math32.Matrix4

	// ParMatrix is the parent's world matrix, cached so that the world
	// matrix can be updated independently.
	ParMatrix math32.Matrix4

	// WorldMatrix is the world transform matrix, containing all absolute
	// position, rotation, and scale information (relative to the top
	// parent, generally the scene).
	WorldMatrix math32.Matrix4
}

// Defaults sets defaults only if current values are nil.
func (ps *Pose) Defaults() {
	if ps.Scale == (math32.Vector3{}) {
		ps.Scale.Set(1, 1, 1)
	}
	if ps.Quat.IsNil() {
		ps.Quat.SetIdentity()
	}
	if ps.ParMatrix == (math32.Matrix4{}) {
		ps.ParMatrix.SetIdentity()
	}
}

// UpdateMatrix updates the local transform matrix based on the current
// position, quaternion, and scale. Also checks for degenerate nil values.
func (ps *Pose) UpdateMatrix() {
	ps.Defaults()
	ps.Matrix.SetTransform(ps.Pos, ps.Quat, ps.Scale)
}

// UpdateWorldMatrix updates the world transform matrix based on Matrix
// and the given parent world matrix (nil = use the cached one).
// Does NOT call UpdateMatrix, so that can include other factors as needed.
func (ps *Pose) UpdateWorldMatrix(parWorld *math32.Matrix4) {
	if parWorld != nil {
		ps.ParMatrix.CopyFrom(parWorld)
	}
	ps.WorldMatrix.MulMatrices(&ps.ParMatrix, &ps.Matrix)
}

// SetMatrix sets the local transformation matrix and updates Pos, Scale, Quat.
func (ps *Pose) SetMatrix(m *math32.Matrix4) {
	ps.Matrix = *m
	ps.Pos, ps.Quat, ps.Scale = ps.Matrix.Decompose()
}

// SetEulerRotation sets the rotation in Euler angles (degrees).
func (ps *Pose) SetEulerRotation(x, y, z float32) {
	ps.Quat.SetFromEuler(math32.Vec3(x, y, z).MulScalar(math32.DegToRadFactor))
}

// SetAxisRotation sets rotation from the given local axis and angle in degrees.
func (ps *Pose) SetAxisRotation(x, y, z, angle float32) {
	ps.Quat.SetFromAxisAngle(math32.Vec3(x, y, z), math32.DegToRad(angle))
}

// LookAt points the element at the given target location using the
// given up direction.
func (ps *Pose) LookAt(target, upDir math32.Vector3) {
	ps.Quat.SetFromRotationMatrix(math32.NewLookAt(ps.Pos, target, upDir))
}

// WorldPos returns the current world position.
// UpdateWorldMatrix must have been called first.
func (ps *Pose) WorldPos() math32.Vector3 {
	pos := math32.Vector3{}
	pos.SetFromMatrixPos(&ps.WorldMatrix)
	return pos
}
