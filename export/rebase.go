// Copyright (c) 2026, Scene Forge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package export

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sceneforge/fbxprep/scene"
)

// The source scene authors with Z up; the target convention treats Y as
// up. Directly reassigning a rotated local transform would change the
// object's world pose, so the rotation is baked into the geometry and
// compensated at the transform level: the geometry is permanently
// rotated -90° about X, and the local matrix gets a +90° X rotation
// composed on, leaving the net world pose untouched.

// rotXNeg90 returns the -90° rotation about X used for the bake.
func rotXNeg90() mgl64.Mat4 {
	return mgl64.HomogRotate3DX(mgl64.DegToRad(-90))
}

// rotXPos90 returns the +90° compensating rotation about X.
func rotXPos90() mgl64.Mat4 {
	return mgl64.HomogRotate3DX(mgl64.DegToRad(90))
}

// fixObject rewrites the object's local transform so that its world
// pose is reproduced with axis-corrected geometry, then recurses into
// its children. Only objects in the view layer are rewritten, but
// recursion always continues: a child can be in the view layer even
// when its ancestor is not.
func fixObject(ob *scene.Object, view map[*scene.Object]bool, fixRotation, moveToCenter bool, depth int) {
	if view[ob] {
		if fixRotation {
			// collapse rotation and scale carried by prior edits into
			// the geometry so the matrix rewrite below is clean
			ob.ApplyTransform(true, true)

			// reset the parent inverse so the local matrix is the sole
			// source of the pose relative to the parent
			ob.ResetParentInverse()

			matOriginal := ob.Matrix
			ob.Matrix = rotXNeg90()

			// permanently rotate the geometry -90° about X
			ob.ApplyTransform(true, false)

			// reapply the previous local transform with a compensating
			// +90° X rotation
			ob.Matrix = matOriginal.Mul4(rotXPos90())
		}

		if moveToCenter && depth == 0 {
			// roots optionally move to the origin; descendants keep
			// their relative poses
			ob.Matrix = mgl64.Translate3D(0, 0, 0)
		}
	}

	for _, child := range ob.Children {
		fixObject(child, view, fixRotation, moveToCenter, depth+1)
	}
}

// rootObjects returns the roots of the export hierarchy: objects of an
// exportable type with no parent.
func rootObjects(sc *scene.Scene) []*scene.Object {
	var roots []*scene.Object
	for _, ob := range sc.Objects {
		if ob.Type.Exportable() && ob.Parent == nil {
			roots = append(roots, ob)
		}
	}
	return roots
}
