// Copyright (c) 2026, Scene Forge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "github.com/go-gl/mathgl/mgl64"

// Decompose splits an affine transform into its translation, rotation,
// and scale components, assuming a translation·rotation·scale
// composition without shear. A negative determinant is represented as a
// negative X scale.
func Decompose(m mgl64.Mat4) (pos mgl64.Vec3, rot mgl64.Mat3, scale mgl64.Vec3) {
	pos = mgl64.Vec3{m.At(0, 3), m.At(1, 3), m.At(2, 3)}
	c0 := mgl64.Vec3{m.At(0, 0), m.At(1, 0), m.At(2, 0)}
	c1 := mgl64.Vec3{m.At(0, 1), m.At(1, 1), m.At(2, 1)}
	c2 := mgl64.Vec3{m.At(0, 2), m.At(1, 2), m.At(2, 2)}
	scale = mgl64.Vec3{c0.Len(), c1.Len(), c2.Len()}
	if m.Det() < 0 {
		scale[0] = -scale[0]
	}
	rot = mgl64.Ident3()
	if scale[0] != 0 {
		c := c0.Mul(1 / scale[0])
		rot.SetCol(0, c)
	}
	if scale[1] != 0 {
		c := c1.Mul(1 / scale[1])
		rot.SetCol(1, c)
	}
	if scale[2] != 0 {
		c := c2.Mul(1 / scale[2])
		rot.SetCol(2, c)
	}
	return pos, rot, scale
}

// Compose builds an affine transform from translation, rotation, and
// scale components, as translation·rotation·scale.
func Compose(pos mgl64.Vec3, rot mgl64.Mat3, scale mgl64.Vec3) mgl64.Mat4 {
	lin := rot.Mul3(ScaleMat3(scale))
	return mgl64.Translate3D(pos.X(), pos.Y(), pos.Z()).Mul4(lin.Mat4())
}

// ScaleMat3 returns a 3x3 scale matrix with the given per-axis factors.
func ScaleMat3(s mgl64.Vec3) mgl64.Mat3 {
	return mgl64.Diag3(s)
}

// Translation returns the translation component of an affine transform.
func Translation(m mgl64.Mat4) mgl64.Vec3 {
	return mgl64.Vec3{m.At(0, 3), m.At(1, 3), m.At(2, 3)}
}

// Linear returns the upper-left 3x3 linear part of an affine transform.
func Linear(m mgl64.Mat4) mgl64.Mat3 {
	return m.Mat3()
}
