// Copyright (c) 2026, Scene Forge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene implements an in-memory 3D scene graph: a forest of
// [Object] nodes with local transforms and shared [Geometry] data,
// grouped into a tree of [Collection]s resolved through a view layer.
// It provides the mutation primitives that export preparation needs:
// visibility flags, selection, transform application (baking), mesh
// conversion, and whole-scene checkpoints.
package scene

import "github.com/go-gl/mathgl/mgl64"

// Mode is the object interaction mode of a [Scene].
// Geometric operations are only valid in [ModeObject].
type Mode int32

const (
	// ModeObject is the neutral mode where object-level transforms
	// and geometry data can be edited freely.
	ModeObject Mode = iota

	// ModeEdit is per-element geometry editing.
	ModeEdit

	// ModePose is armature posing.
	ModePose
)

// Scene holds all objects and the collection tree of one editing session.
// Objects are long-lived and owned by the scene; operations mutate their
// transform, visibility, and geometry-reference fields in place.
type Scene struct {
	// Name is the name of the scene.
	Name string

	// Mode is the current object interaction mode.
	Mode Mode

	// Objects is the ordered list of all objects in the scene,
	// including those not resolved into the view layer.
	Objects []*Object

	// Layer is the root layer collection of the active view layer.
	// Its Collection is the master scene collection.
	Layer *LayerCollection

	// Active is the active layer collection, nil meaning the root.
	Active *LayerCollection
}

// ActiveLayer returns the active layer collection, defaulting to the root.
func (sc *Scene) ActiveLayer() *LayerCollection {
	if sc.Active != nil {
		return sc.Active
	}
	return sc.Layer
}

// NewScene creates a new empty scene with the given name and a master
// scene collection at the root of its view layer.
func NewScene(name string) *Scene {
	return &Scene{
		Name: name,
		Layer: &LayerCollection{
			Collection: &Collection{Name: "Scene Collection"},
		},
	}
}

// AddObject adds the object to the scene and links it into the given
// layer collection, or into the master collection if lc is nil.
func (sc *Scene) AddObject(ob *Object, lc *LayerCollection) *Object {
	sc.Objects = append(sc.Objects, ob)
	if lc == nil {
		lc = sc.Layer
	}
	lc.Collection.Objects = append(lc.Collection.Objects, ob)
	return ob
}

// ObjectByName returns the object with the given name, or nil if not found.
// Object names are unique within a scene.
func (sc *Scene) ObjectByName(name string) *Object {
	for _, ob := range sc.Objects {
		if ob.Name == name {
			return ob
		}
	}
	return nil
}

// ViewLayerObjects returns all objects resolved into the active view
// layer, in scene order. Objects only reachable through an excluded
// layer collection are not part of the view layer.
func (sc *Scene) ViewLayerObjects() []*Object {
	in := map[*Object]bool{}
	sc.Layer.walk(func(lc *LayerCollection) {
		for _, ob := range lc.Collection.Objects {
			in[ob] = true
		}
	})
	var obs []*Object
	for _, ob := range sc.Objects {
		if in[ob] {
			obs = append(obs, ob)
		}
	}
	return obs
}

// InView reports whether the object is resolved into the active view layer.
func (sc *Scene) InView(ob *Object) bool {
	for _, vob := range sc.ViewLayerObjects() {
		if vob == ob {
			return true
		}
	}
	return false
}

// Selected returns the currently selected objects, in scene order.
func (sc *Scene) Selected() []*Object {
	var obs []*Object
	for _, ob := range sc.Objects {
		if ob.Selected {
			obs = append(obs, ob)
		}
	}
	return obs
}

// DeselectAll clears the selection flag on every object.
func (sc *Scene) DeselectAll() {
	for _, ob := range sc.Objects {
		ob.Selected = false
	}
}

// SelectOnly makes the given objects the exclusive selection.
func (sc *Scene) SelectOnly(obs ...*Object) {
	sc.DeselectAll()
	for _, ob := range obs {
		ob.Selected = true
	}
}

// UpdateWorld recomputes the cached World matrix of every object from
// the current local transforms. World matrices are not updated
// automatically when local transforms change; callers that read them
// after a mutation pass must request a recompute first.
func (sc *Scene) UpdateWorld() {
	for _, ob := range sc.Objects {
		if ob.Parent == nil {
			ob.updateWorld(mgl64.Ident4())
		}
	}
}

// ConvertToMesh converts each given object to a single mesh
// representation where possible, baking its modifier stack in the
// process. Objects that cannot be converted (see
// [Object.CanConvertToMesh]) are left untouched.
//
// Modifier evaluation happens outside this package: geometry data is
// assumed to already reflect the evaluated stack, so baking empties the
// stack and switches curve-like types to [Mesh].
func (sc *Scene) ConvertToMesh(obs []*Object) {
	for _, ob := range obs {
		if !ob.CanConvertToMesh() {
			continue
		}
		ob.Type = Mesh
		ob.Modifiers = nil
	}
}
