// Copyright (c) 2026, Scene Forge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

// ModifierType is the kind of a procedural geometry modifier.
type ModifierType int32

const (
	// ModSubsurf is subdivision-surface smoothing.
	ModSubsurf ModifierType = iota

	// ModMirror mirrors geometry across an axis.
	ModMirror

	// ModSolidify extrudes surfaces into solids.
	ModSolidify

	// ModArmature is skeletal deformation driven by an [Armature]
	// object. Armature modifiers must never be baked into geometry;
	// the export primitive handles them through the armature itself.
	ModArmature
)

// Modifier is one entry in an object's modifier stack. Modifier
// evaluation itself is a host concern; this package only tracks stack
// membership and the viewport-enabled flag that controls whether a
// modifier currently affects the evaluated geometry.
type Modifier struct {
	// Name is the modifier's display name.
	Name string

	// Type is the modifier kind.
	Type ModifierType

	// ShowViewport is whether the modifier is currently enabled in the
	// viewport. Only enabled modifiers make shared geometry diverge
	// between its users.
	ShowViewport bool
}
