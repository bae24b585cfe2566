// Copyright (c) 2026, Scene Forge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fbx

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sceneforge/fbxprep/export"
	"github.com/sceneforge/fbxprep/scene"
)

// Version is the FBX format version written.
const Version = 7400

// Document is a complete FBX document tree, ready to serialize.
type Document struct {
	// Sections are the top-level nodes, in file order.
	Sections []*Node
}

// BuildDocument assembles an FBX document from the scene objects
// admitted by the given options. Bone hierarchies are not written, so
// the leaf-bone and deform-only options are honored trivially.
func BuildDocument(sc *scene.Scene, opts export.ExportOptions) *Document {
	obs := exportSet(sc, opts)

	ids := map[any]int64{}
	next := int64(1000000)
	id := func(key any) int64 {
		if v, ok := ids[key]; ok {
			return v
		}
		next++
		ids[key] = next
		return next
	}

	objects := NewNode("Objects")
	objects.Children = []*Node{}
	connections := NewNode("Connections")
	connections.Children = []*Node{}

	inSet := map[*scene.Object]bool{}
	for _, ob := range obs {
		inSet[ob] = true
	}

	geoDone := map[*scene.Geometry]bool{}
	nGeo := 0
	for _, ob := range obs {
		objects.Add(modelNode(ob, id(ob), inSet))
		if ob.Geo != nil && ob.Type.GeometryKind() {
			if !geoDone[ob.Geo] {
				geoDone[ob.Geo] = true
				nGeo++
				objects.Add(geometryNode(ob.Geo, id(ob.Geo), opts))
			}
			connections.Add(NewNode("C", "OO", id(ob.Geo), id(ob)))
		}
	}
	for _, ob := range obs {
		parent := int64(0)
		if ob.Parent != nil && inSet[ob.Parent] {
			parent = id(ob.Parent)
		}
		connections.Add(NewNode("C", "OO", id(ob), parent))
	}

	return &Document{Sections: []*Node{
		headerNode(),
		globalSettings(opts),
		definitionsNode(len(obs), nGeo),
		objects,
		connections,
	}}
}

// exportSet returns the objects admitted by the option filters, in
// scene order.
func exportSet(sc *scene.Scene, opts export.ExportOptions) []*scene.Object {
	var active map[*scene.Object]bool
	if opts.UseActiveCollection {
		active = map[*scene.Object]bool{}
		lc := sc.ActiveLayer()
		collectMembers(lc, active)
	}
	var obs []*scene.Object
	for _, ob := range sc.Objects {
		typ := ob.Type
		if typ == scene.Curve {
			// curves export as their mesh representation
			typ = scene.Mesh
		}
		if len(opts.ObjectTypes) > 0 && !opts.ObjectTypes[typ] {
			continue
		}
		if opts.UseSelection && !ob.Selected {
			continue
		}
		if active != nil && !active[ob] {
			continue
		}
		obs = append(obs, ob)
	}
	return obs
}

func collectMembers(lc *scene.LayerCollection, set map[*scene.Object]bool) {
	for _, ob := range lc.Collection.Objects {
		set[ob] = true
	}
	for _, child := range lc.Children {
		collectMembers(child, set)
	}
}

func headerNode() *Node {
	return NewNode("FBXHeaderExtension").Add(
		NewNode("FBXHeaderVersion", 1003),
		NewNode("FBXVersion", Version),
		NewNode("Creator", "fbxprep"),
	)
}

func globalSettings(opts export.ExportOptions) *Node {
	unitScale := 100.0
	if opts.ApplyScaleUnits {
		unitScale = 1.0
	}
	return NewNode("GlobalSettings").Add(
		NewNode("Version", 1000),
		NewNode("Properties70").Add(
			Property70("UpAxis", "int", "Integer", "", 1),
			Property70("UpAxisSign", "int", "Integer", "", 1),
			Property70("FrontAxis", "int", "Integer", "", 2),
			Property70("FrontAxisSign", "int", "Integer", "", 1),
			Property70("CoordAxis", "int", "Integer", "", 0),
			Property70("CoordAxisSign", "int", "Integer", "", 1),
			Property70("UnitScaleFactor", "double", "Number", "", unitScale),
		),
	)
}

func definitionsNode(nModels, nGeos int) *Node {
	return NewNode("Definitions").Add(
		NewNode("Version", 100),
		NewNode("Count", nModels+nGeos+1),
		NewNode("ObjectType", "GlobalSettings").Add(NewNode("Count", 1)),
		NewNode("ObjectType", "Model").Add(NewNode("Count", nModels)),
		NewNode("ObjectType", "Geometry").Add(NewNode("Count", nGeos)),
	)
}

func modelNode(ob *scene.Object, id int64, inSet map[*scene.Object]bool) *Node {
	pos, rot, scl := scene.Decompose(fbxLocal(ob, inSet))
	rx, ry, rz := eulerXYZ(rot)
	return NewNode("Model", id, "Model::"+ob.Name, modelType(ob)).Add(
		NewNode("Version", 232),
		NewNode("Properties70").Add(
			Property70("Lcl Translation", "Lcl Translation", "", "A",
				pos.X(), pos.Y(), pos.Z()),
			Property70("Lcl Rotation", "Lcl Rotation", "", "A", rx, ry, rz),
			Property70("Lcl Scaling", "Lcl Scaling", "", "A",
				scl.X(), scl.Y(), scl.Z()),
		),
	)
}

// fbxLocal is the transform written for the model: FBX has no
// parent-inverse, so the cached factor folds into the local matrix.
// Objects whose parent is not exported connect to the document root
// and carry their full world transform.
func fbxLocal(ob *scene.Object, inSet map[*scene.Object]bool) mgl64.Mat4 {
	if ob.Parent == nil {
		return ob.Matrix
	}
	if !inSet[ob.Parent] {
		return ob.WorldMatrix()
	}
	return ob.ParentInverse.Mul4(ob.Matrix)
}

func modelType(ob *scene.Object) string {
	if ob.Geo != nil && ob.Type.GeometryKind() {
		return "Mesh"
	}
	return "Null"
}

func geometryNode(ge *scene.Geometry, id int64, opts export.ExportOptions) *Node {
	verts := make([]float64, 0, len(ge.Vertex)*3)
	for _, v := range ge.Vertex {
		verts = append(verts, v.X(), v.Y(), v.Z())
	}
	// triangles, with the FBX end-of-polygon encoding on the last index
	idx := make([]int, len(ge.Index))
	for i, x := range ge.Index {
		if i%3 == 2 {
			idx[i] = -(x + 1)
		} else {
			idx[i] = x
		}
	}
	n := NewNode("Geometry", id, "Geometry::"+ge.Name, "Mesh").Add(
		NewNode("Vertices", verts),
		NewNode("PolygonVertexIndex", idx),
		NewNode("GeometryVersion", 124),
	)
	if len(ge.Normal) > 0 {
		norms := make([]float64, 0, len(ge.Normal)*3)
		for _, v := range ge.Normal {
			norms = append(norms, v.X(), v.Y(), v.Z())
		}
		n.Add(NewNode("LayerElementNormal", 0).Add(
			NewNode("Version", 101),
			NewNode("MappingInformationType", "ByVertice"),
			NewNode("ReferenceInformationType", "Direct"),
			NewNode("Normals", norms),
		))
	}
	if opts.MeshSmoothType != export.SmoothOff {
		// smoothing is written per polygon; edge data is not modeled
		smooth := make([]int, len(ge.Index)/3)
		for i := range smooth {
			smooth[i] = 1
		}
		n.Add(NewNode("LayerElementSmoothing", 0).Add(
			NewNode("Version", 102),
			NewNode("MappingInformationType", "ByPolygon"),
			NewNode("ReferenceInformationType", "Direct"),
			NewNode("Smoothing", smooth),
		))
	}
	return n
}

// eulerXYZ extracts XYZ-order Euler angles in degrees from a rotation
// matrix, for FBX Lcl Rotation.
func eulerXYZ(rot mgl64.Mat3) (x, y, z float64) {
	r20 := rot.At(2, 0)
	if r20 <= -1 || r20 >= 1 {
		// gimbal lock: fold Z into X
		y = math.Copysign(math.Pi/2, -r20)
		x = math.Atan2(-rot.At(1, 2), rot.At(1, 1))
		z = 0
	} else {
		y = math.Asin(-r20)
		x = math.Atan2(rot.At(2, 1), rot.At(2, 2))
		z = math.Atan2(rot.At(1, 0), rot.At(0, 0))
	}
	return mgl64.RadToDeg(x), mgl64.RadToDeg(y), mgl64.RadToDeg(z)
}
