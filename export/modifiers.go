// Copyright (c) 2026, Scene Forge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package export

import "github.com/sceneforge/fbxprep/scene"

// applyObjectModifiers bakes the modifier stacks of view-layer objects
// by converting them to meshes. Objects with an armature modifier
// anywhere in their stack are skipped entirely: skeletal deformation
// must stay live for the export primitive to write it as such.
func applyObjectModifiers(sc *scene.Scene) {
	sc.DeselectAll()
	for _, ob := range sc.ViewLayerObjects() {
		if ob.HasModifier(scene.ModArmature) {
			continue
		}
		ob.Selected = true
	}
	var convertible []*scene.Object
	for _, ob := range sc.Selected() {
		if ob.CanConvertToMesh() {
			convertible = append(convertible, ob)
		}
	}
	sc.ConvertToMesh(convertible)
}
