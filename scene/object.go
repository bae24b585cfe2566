// Copyright (c) 2026, Scene Forge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "github.com/go-gl/mathgl/mgl64"

// Type is the kind of scene object, which determines whether it carries
// geometry data and whether it can act as an export root.
type Type int32

const (
	// Empty is a transform-only object with no geometry.
	Empty Type = iota

	// Mesh carries polygonal geometry data.
	Mesh

	// Curve is a curve-like object (curve, surface, text, metaball)
	// that carries geometry data and can be converted to a mesh.
	Curve

	// Armature is a skeleton used to deform other objects.
	Armature

	// Other is any object kind not otherwise classified.
	Other
)

// GeometryKind reports whether objects of this type reference geometry
// data that transform baking mutates.
func (t Type) GeometryKind() bool {
	return t == Mesh || t == Curve
}

// Exportable reports whether objects of this type can act as roots of
// the export hierarchy.
func (t Type) Exportable() bool {
	return t == Empty || t == Mesh || t == Armature || t == Other
}

// Object is a node in the scene-graph forest. The tree owns the forward
// Children edges; Parent is a back-reference. An object's world pose is
// Parent.World · ParentInverse · Matrix, or just Matrix when unparented.
type Object struct {
	// Name uniquely identifies the object within its scene.
	Name string

	// Type is the object kind.
	Type Type

	// Matrix is the local (basis) transform relative to the parent.
	Matrix mgl64.Mat4

	// ParentInverse is a cached correction factor between the parent
	// and local transform. It keeps a child's visual pose stable when
	// the parent moves without rewriting the child's authored Matrix.
	ParentInverse mgl64.Mat4

	// World is the cached world transform, valid after [Scene.UpdateWorld].
	World mgl64.Mat4

	// Parent is the owning parent object, nil for roots.
	Parent *Object

	// Children are the child objects, in creation order.
	Children []*Object

	// Geo is the geometry data block, possibly shared with other
	// objects, nil for geometry-free kinds.
	Geo *Geometry

	// Modifiers is the object's modifier stack.
	Modifiers []*Modifier

	// Hidden is the user-hidden flag in the view layer.
	Hidden bool

	// HideViewport is the independent disabled-in-viewports flag.
	HideViewport bool

	// Selected is whether the object is part of the current selection.
	Selected bool
}

// NewObject creates a new unparented object with identity transforms.
func NewObject(name string, typ Type) *Object {
	return &Object{
		Name:          name,
		Type:          typ,
		Matrix:        mgl64.Ident4(),
		ParentInverse: mgl64.Ident4(),
		World:         mgl64.Ident4(),
	}
}

// SetParent links the object under the given parent, keeping the
// current Matrix and ParentInverse as-is. The object's world pose
// changes accordingly.
func (ob *Object) SetParent(par *Object) {
	if ob.Parent != nil {
		ob.Parent.removeChild(ob)
	}
	ob.Parent = par
	if par != nil {
		par.Children = append(par.Children, ob)
	}
}

// SetParentKeepTransform links the object under the given parent and
// sets ParentInverse to the inverse of the parent's current world
// matrix, so the object's world pose is unchanged by the parenting.
func (ob *Object) SetParentKeepTransform(par *Object) {
	ob.SetParent(par)
	if par != nil {
		ob.ParentInverse = par.WorldMatrix().Inv()
	}
}

func (ob *Object) removeChild(child *Object) {
	for i, c := range ob.Children {
		if c == child {
			ob.Children = append(ob.Children[:i], ob.Children[i+1:]...)
			return
		}
	}
}

// WorldMatrix computes the object's current world transform from the
// local transforms along its parent chain, independent of the cached
// World field.
func (ob *Object) WorldMatrix() mgl64.Mat4 {
	if ob.Parent == nil {
		return ob.Matrix
	}
	return ob.Parent.WorldMatrix().Mul4(ob.ParentInverse).Mul4(ob.Matrix)
}

func (ob *Object) updateWorld(parWorld mgl64.Mat4) {
	if ob.Parent == nil {
		ob.World = ob.Matrix
	} else {
		ob.World = parWorld.Mul4(ob.ParentInverse).Mul4(ob.Matrix)
	}
	for _, c := range ob.Children {
		c.updateWorld(ob.World)
	}
}

// ResetParentInverse recomputes the local Matrix as
// parent.World⁻¹ · world and sets ParentInverse to identity, making
// Matrix the sole source of the object's pose relative to its parent.
// It is a no-op for unparented objects.
func (ob *Object) ResetParentInverse() {
	if ob.Parent == nil {
		return
	}
	world := ob.WorldMatrix()
	ob.ParentInverse = mgl64.Ident4()
	ob.Matrix = ob.Parent.WorldMatrix().Inv().Mul4(world)
}

// ApplyTransform bakes the selected components of the local Matrix into
// the object's geometry data, leaving translation in the matrix.
// The local matrix is assumed to be a well-formed
// translation·rotation·scale composition, and applying rotation alone
// assumes the scale component commutes with it (uniform scale).
// Objects without geometry are left untouched.
func (ob *Object) ApplyTransform(rotation, scale bool) {
	if ob.Geo == nil || (!rotation && !scale) {
		return
	}
	pos, rot, scl := Decompose(ob.Matrix)
	bake := mgl64.Ident3()
	keepRot := rot
	keepScl := scl
	if rotation {
		bake = rot
		keepRot = mgl64.Ident3()
	}
	if scale {
		bake = bake.Mul3(ScaleMat3(scl))
		keepScl = mgl64.Vec3{1, 1, 1}
	}
	ob.Geo.Transform(bake)
	ob.Matrix = Compose(pos, keepRot, keepScl)
}

// ActiveModifiers returns the number of modifiers in the stack that are
// currently enabled in the viewport.
func (ob *Object) ActiveModifiers() int {
	n := 0
	for _, mod := range ob.Modifiers {
		if mod.ShowViewport {
			n++
		}
	}
	return n
}

// HasModifier reports whether the stack contains a modifier of the
// given type, enabled or not.
func (ob *Object) HasModifier(typ ModifierType) bool {
	for _, mod := range ob.Modifiers {
		if mod.Type == typ {
			return true
		}
	}
	return false
}

// CanConvertToMesh reports whether the object can be converted to a
// single mesh representation.
func (ob *Object) CanConvertToMesh() bool {
	return ob.Geo != nil && ob.Type.GeometryKind()
}
