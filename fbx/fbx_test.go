// Copyright (c) 2026, Scene Forge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fbx

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sceneforge/fbxprep/export"
	"github.com/sceneforge/fbxprep/scene"
)

func defaultOptions() export.ExportOptions {
	return export.ExportOptions{
		UseSelection:    true,
		ApplyScaleUnits: true,
		ObjectTypes: map[scene.Type]bool{
			scene.Empty:    true,
			scene.Armature: true,
			scene.Mesh:     true,
			scene.Other:    true,
		},
		MeshSmoothType: export.SmoothEdge,
	}
}

func triScene(t *testing.T) *scene.Scene {
	t.Helper()
	sc := scene.NewScene("tri")
	ob := sc.AddObject(scene.NewObject("Tri", scene.Mesh), nil)
	ob.Geo = &scene.Geometry{
		Name:   "Tri",
		Vertex: []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Normal: []mgl64.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		Index:  []int{0, 1, 2},
	}
	ob.Matrix = mgl64.Translate3D(1, 2, 3)
	ob.Selected = true
	sc.UpdateWorld()
	return sc
}

func TestNodeWrite(t *testing.T) {
	n := NewNode("Model", int64(42), "Model::Cube", "Mesh").Add(
		NewNode("Version", 232),
	)
	var sb strings.Builder
	require.NoError(t, n.Write(&sb, 0))
	assert.Equal(t, "Model: 42, \"Model::Cube\", \"Mesh\" {\n\tVersion: 232\n}\n", sb.String())
}

func TestNodeWriteArray(t *testing.T) {
	n := NewNode("Vertices", []float64{0, 1, 2.5})
	var sb strings.Builder
	require.NoError(t, n.Write(&sb, 1))
	assert.Equal(t, "\tVertices: *3 {\n\t\ta: 0,1,2.5\n\t}\n", sb.String())

	m := NewNode("PolygonVertexIndex", []int{0, 1, -3})
	sb.Reset()
	require.NoError(t, m.Write(&sb, 0))
	assert.Equal(t, "PolygonVertexIndex: *3 {\n\ta: 0,1,-3\n}\n", sb.String())
}

func TestBuildDocumentStructure(t *testing.T) {
	sc := triScene(t)
	doc := BuildDocument(sc, defaultOptions())
	require.Len(t, doc.Sections, 5)

	names := make([]string, len(doc.Sections))
	for i, sec := range doc.Sections {
		names[i] = sec.Name
	}
	assert.Equal(t, []string{
		"FBXHeaderExtension", "GlobalSettings", "Definitions",
		"Objects", "Connections",
	}, names)

	header := doc.Sections[0]
	ver := header.Child("FBXVersion")
	require.NotNil(t, ver)
	assert.Equal(t, []any{Version}, ver.Attrs)

	objects := doc.Sections[3]
	require.Len(t, objects.Children, 2)
	assert.Equal(t, "Model", objects.Children[0].Name)
	assert.Equal(t, "Geometry", objects.Children[1].Name)

	// geometry connects to its model, the model to the document root
	conns := doc.Sections[4]
	require.Len(t, conns.Children, 2)
	modelID := objects.Children[0].Attrs[0]
	geoID := objects.Children[1].Attrs[0]
	assert.Equal(t, []any{"OO", geoID, modelID}, conns.Children[0].Attrs)
	assert.Equal(t, []any{"OO", modelID, int64(0)}, conns.Children[1].Attrs)
}

func TestGeometryNode(t *testing.T) {
	sc := triScene(t)
	doc := BuildDocument(sc, defaultOptions())
	geo := doc.Sections[3].Children[1]

	verts := geo.Child("Vertices")
	require.NotNil(t, verts)
	assert.Equal(t, []any{[]float64{0, 0, 0, 1, 0, 0, 0, 1, 0}}, verts.Attrs)

	// the last index of each triangle carries the end-of-polygon marker
	idx := geo.Child("PolygonVertexIndex")
	require.NotNil(t, idx)
	assert.Equal(t, []any{[]int{0, 1, -3}}, idx.Attrs)

	norm := geo.Child("LayerElementNormal")
	require.NotNil(t, norm)
	assert.Equal(t, []any{[]float64{0, 0, 1, 0, 0, 1, 0, 0, 1}},
		norm.Child("Normals").Attrs)

	smooth := geo.Child("LayerElementSmoothing")
	require.NotNil(t, smooth)
	assert.Equal(t, []any{[]int{1}}, smooth.Child("Smoothing").Attrs)
}

func TestGeometryNodeSmoothingOff(t *testing.T) {
	sc := triScene(t)
	opts := defaultOptions()
	opts.MeshSmoothType = export.SmoothOff
	doc := BuildDocument(sc, opts)
	geo := doc.Sections[3].Children[1]
	assert.Nil(t, geo.Child("LayerElementSmoothing"))
}

func TestModelNodeTransform(t *testing.T) {
	sc := scene.NewScene("test")
	ob := sc.AddObject(scene.NewObject("Cube", scene.Mesh), nil)
	ob.Geo = &scene.Geometry{Name: "Cube", Vertex: []mgl64.Vec3{{0, 0, 0}}}
	ob.Matrix = mgl64.Translate3D(1, 2, 3).
		Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(90))).
		Mul4(mgl64.Scale3D(2, 2, 2))
	ob.Selected = true
	sc.UpdateWorld()

	doc := BuildDocument(sc, defaultOptions())
	model := doc.Sections[3].Children[0]
	assert.Equal(t, "Model::Cube", model.Attrs[1])
	assert.Equal(t, "Mesh", model.Attrs[2])

	props := model.Child("Properties70")
	require.NotNil(t, props)
	var trans, rot, scl *Node
	for _, p := range props.Children {
		switch p.Attrs[0] {
		case "Lcl Translation":
			trans = p
		case "Lcl Rotation":
			rot = p
		case "Lcl Scaling":
			scl = p
		}
	}
	require.NotNil(t, trans)
	require.NotNil(t, rot)
	require.NotNil(t, scl)
	assert.InDeltaSlice(t, []float64{1, 2, 3}, anyFloats(trans.Attrs[4:]), 1e-9)
	assert.InDeltaSlice(t, []float64{90, 0, 0}, anyFloats(rot.Attrs[4:]), 1e-9)
	assert.InDeltaSlice(t, []float64{2, 2, 2}, anyFloats(scl.Attrs[4:]), 1e-9)
}

func anyFloats(attrs []any) []float64 {
	out := make([]float64, len(attrs))
	for i, a := range attrs {
		out[i] = a.(float64)
	}
	return out
}

func TestEulerXYZ(t *testing.T) {
	cases := []struct {
		name    string
		rot     mgl64.Mat3
		x, y, z float64
	}{
		{"identity", mgl64.Ident3(), 0, 0, 0},
		{"x90", mgl64.HomogRotate3DX(mgl64.DegToRad(90)).Mat3(), 90, 0, 0},
		{"y45", mgl64.HomogRotate3DY(mgl64.DegToRad(45)).Mat3(), 0, 45, 0},
		{"z30", mgl64.HomogRotate3DZ(mgl64.DegToRad(30)).Mat3(), 0, 0, 30},
		{"xNeg90", mgl64.HomogRotate3DX(mgl64.DegToRad(-90)).Mat3(), -90, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			x, y, z := eulerXYZ(tc.rot)
			assert.InDelta(t, tc.x, x, 1e-9)
			assert.InDelta(t, tc.y, y, 1e-9)
			assert.InDelta(t, tc.z, z, 1e-9)
		})
	}
}

func TestEulerXYZComposite(t *testing.T) {
	// XYZ order: R = Rz * Ry * Rx
	want := mgl64.HomogRotate3DZ(mgl64.DegToRad(20)).
		Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(-35))).
		Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(50))).Mat3()
	x, y, z := eulerXYZ(want)
	assert.InDelta(t, 50, x, 1e-9)
	assert.InDelta(t, -35, y, 1e-9)
	assert.InDelta(t, 20, z, 1e-9)
}

func TestExportSetFilters(t *testing.T) {
	sc := scene.NewScene("test")
	mesh := sc.AddObject(scene.NewObject("Mesh", scene.Mesh), nil)
	mesh.Selected = true
	empty := sc.AddObject(scene.NewObject("Empty", scene.Empty), nil)
	empty.Selected = true
	curve := sc.AddObject(scene.NewObject("Curve", scene.Curve), nil)
	curve.Selected = true
	unselected := sc.AddObject(scene.NewObject("Unselected", scene.Mesh), nil)

	opts := defaultOptions()
	obs := exportSet(sc, opts)
	// curves pass the Mesh type filter; unselected objects do not pass
	// the selection filter
	assert.Equal(t, []*scene.Object{mesh, empty, curve}, obs)

	opts.UseSelection = false
	obs = exportSet(sc, opts)
	assert.Equal(t, []*scene.Object{mesh, empty, curve, unselected}, obs)

	opts.ObjectTypes = map[scene.Type]bool{scene.Empty: true}
	obs = exportSet(sc, opts)
	assert.Equal(t, []*scene.Object{empty}, obs)
}

func TestExportSetActiveCollection(t *testing.T) {
	sc := scene.NewScene("test")
	props := sc.Layer.NewChild("Props")
	inProps := sc.AddObject(scene.NewObject("InProps", scene.Mesh), props)
	inProps.Selected = true
	nested := props.NewChild("Nested")
	inNested := sc.AddObject(scene.NewObject("InNested", scene.Mesh), nested)
	inNested.Selected = true
	outside := sc.AddObject(scene.NewObject("Outside", scene.Mesh), nil)
	outside.Selected = true
	sc.Active = props

	opts := defaultOptions()
	opts.UseActiveCollection = true
	obs := exportSet(sc, opts)
	assert.Equal(t, []*scene.Object{inProps, inNested}, obs)
}

func TestSharedGeometryWrittenOnce(t *testing.T) {
	sc := scene.NewScene("test")
	geo := &scene.Geometry{
		Name:   "Shared",
		Vertex: []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Index:  []int{0, 1, 2},
	}
	a := sc.AddObject(scene.NewObject("A", scene.Mesh), nil)
	a.Geo = geo
	a.Selected = true
	b := sc.AddObject(scene.NewObject("B", scene.Mesh), nil)
	b.Geo = geo
	b.Selected = true
	sc.UpdateWorld()

	doc := BuildDocument(sc, defaultOptions())
	objects := doc.Sections[3]
	nGeo := 0
	for _, c := range objects.Children {
		if c.Name == "Geometry" {
			nGeo++
		}
	}
	assert.Equal(t, 1, nGeo)

	// both models connect to the single geometry block
	conns := doc.Sections[4]
	geoConns := 0
	for _, c := range conns.Children {
		if len(c.Attrs) == 3 && c.Attrs[1] == conns.Children[0].Attrs[1] {
			geoConns++
		}
	}
	assert.Equal(t, 2, geoConns)
}

func TestFbxLocalParentHandling(t *testing.T) {
	sc := scene.NewScene("test")
	par := sc.AddObject(scene.NewObject("Parent", scene.Empty), nil)
	par.Matrix = mgl64.Translate3D(1, 0, 0)
	par.Selected = true
	child := sc.AddObject(scene.NewObject("Child", scene.Mesh), nil)
	child.Geo = &scene.Geometry{Name: "Child", Vertex: []mgl64.Vec3{{0, 0, 0}}}
	child.Matrix = mgl64.Translate3D(0, 2, 0)
	child.SetParentKeepTransform(par)
	child.Selected = true
	sc.UpdateWorld()

	inSet := map[*scene.Object]bool{par: true, child: true}
	// parent exported: parent inverse folds into the local transform
	local := fbxLocal(child, inSet)
	want := par.Matrix.Inv().Mul4(child.Matrix)
	assert.True(t, want.ApproxEqualThreshold(local, 1e-9))

	// parent not exported: the child carries its world transform and
	// connects to the document root
	local = fbxLocal(child, map[*scene.Object]bool{child: true})
	assert.True(t, child.WorldMatrix().ApproxEqualThreshold(local, 1e-9))

	doc := BuildDocument(sc, defaultOptions())
	conns := doc.Sections[4]
	// connections: model->model parent links present
	foundChildToParent := false
	for _, c := range conns.Children {
		if len(c.Attrs) == 3 && c.Attrs[1] != c.Attrs[2] && c.Attrs[2] != int64(0) {
			foundChildToParent = true
		}
	}
	assert.True(t, foundChildToParent)
}

func TestWriterExport(t *testing.T) {
	sc := triScene(t)
	opts := defaultOptions()
	opts.Path = filepath.Join(t.TempDir(), "tri.fbx")

	wr := New()
	require.NoError(t, wr.Export(sc, opts))

	data, err := os.ReadFile(opts.Path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "; FBX 7400 project file"))
	assert.Contains(t, text, "FBXHeaderExtension:")
	assert.Contains(t, text, "GlobalSettings:")
	assert.Contains(t, text, `"Model::Tri"`)
	assert.Contains(t, text, `"Geometry::Tri"`)
	assert.Contains(t, text, "PolygonVertexIndex: *3")
	assert.Contains(t, text, "a: 0,1,-3")
	assert.Contains(t, text, `P: "UnitScaleFactor", "double", "Number", "", 1`)
}

func TestWriterExportBadPath(t *testing.T) {
	sc := triScene(t)
	opts := defaultOptions()
	opts.Path = filepath.Join(t.TempDir(), "missing", "dir", "tri.fbx")
	assert.Error(t, New().Export(sc, opts))
}

func TestGlobalSettingsUnitScale(t *testing.T) {
	opts := defaultOptions()
	gs := globalSettings(opts)
	props := gs.Child("Properties70")
	require.NotNil(t, props)
	find := func(name string) *Node {
		for _, p := range props.Children {
			if p.Attrs[0] == name {
				return p
			}
		}
		return nil
	}
	up := find("UpAxis")
	require.NotNil(t, up)
	assert.Equal(t, 1, up.Attrs[4])

	unit := find("UnitScaleFactor")
	require.NotNil(t, unit)
	assert.Equal(t, 1.0, unit.Attrs[4])

	opts.ApplyScaleUnits = false
	unit = globalSettings(opts).Child("Properties70").Children[6]
	assert.Equal(t, "UnitScaleFactor", unit.Attrs[0])
	assert.Equal(t, 100.0, unit.Attrs[4])
}
