// Copyright (c) 2026, Scene Forge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"

	"cogentcore.org/core/base/iox/jsonx"
	"github.com/go-gl/mathgl/mgl64"
)

// sceneFile is the on-disk JSON form of a [Scene]. The live graph has
// parent back-references and shared geometry pointers, so the file form
// is flat and name-keyed: objects reference their parent and geometry
// by name, and layer collections list member objects by name.
type sceneFile struct {
	Name       string        `json:"name"`
	Mode       Mode          `json:"mode"`
	Geometries []*Geometry   `json:"geometries,omitempty"`
	Objects    []*objectFile `json:"objects,omitempty"`
	Layer      *layerFile    `json:"layer"`
	Active     string        `json:"active,omitempty"`
}

type objectFile struct {
	Name          string      `json:"name"`
	Type          Type        `json:"type"`
	Matrix        mgl64.Mat4  `json:"matrix"`
	ParentInverse mgl64.Mat4  `json:"parentInverse"`
	Parent        string      `json:"parent,omitempty"`
	Geometry      string      `json:"geometry,omitempty"`
	Modifiers     []*Modifier `json:"modifiers,omitempty"`
	Hidden        bool        `json:"hidden,omitempty"`
	HideViewport  bool        `json:"hideViewport,omitempty"`
	Selected      bool        `json:"selected,omitempty"`
}

type layerFile struct {
	Name             string       `json:"name"`
	Exclude          bool         `json:"exclude,omitempty"`
	HideViewport     bool         `json:"hideViewport,omitempty"`
	CollectionHidden bool         `json:"collectionHideViewport,omitempty"`
	Objects          []string     `json:"objects,omitempty"`
	Children         []*layerFile `json:"children,omitempty"`
}

// flatten converts the live graph into its file form. Geometry names
// are disambiguated with a numeric suffix when data blocks share one.
func (sc *Scene) flatten() *sceneFile {
	sf := &sceneFile{Name: sc.Name, Mode: sc.Mode}
	geoName := map[*Geometry]string{}
	used := map[string]bool{}
	for _, ob := range sc.Objects {
		if ob.Geo == nil {
			continue
		}
		if _, ok := geoName[ob.Geo]; ok {
			continue
		}
		name := ob.Geo.Name
		if name == "" {
			name = ob.Name
		}
		for used[name] {
			name = fmt.Sprintf("%s.%03d", name, len(geoName))
		}
		used[name] = true
		geoName[ob.Geo] = name
		sf.Geometries = append(sf.Geometries, &Geometry{
			Name:   name,
			Vertex: ob.Geo.Vertex,
			Normal: ob.Geo.Normal,
			Index:  ob.Geo.Index,
		})
	}
	for _, ob := range sc.Objects {
		of := &objectFile{
			Name:          ob.Name,
			Type:          ob.Type,
			Matrix:        ob.Matrix,
			ParentInverse: ob.ParentInverse,
			Modifiers:     ob.Modifiers,
			Hidden:        ob.Hidden,
			HideViewport:  ob.HideViewport,
			Selected:      ob.Selected,
		}
		if ob.Parent != nil {
			of.Parent = ob.Parent.Name
		}
		if ob.Geo != nil {
			of.Geometry = geoName[ob.Geo]
		}
		sf.Objects = append(sf.Objects, of)
	}
	sf.Layer = flattenLayer(sc.Layer)
	if sc.Active != nil {
		sf.Active = sc.Active.Collection.Name
	}
	return sf
}

func flattenLayer(lc *LayerCollection) *layerFile {
	lf := &layerFile{
		Name:             lc.Collection.Name,
		Exclude:          lc.Exclude,
		HideViewport:     lc.HideViewport,
		CollectionHidden: lc.Collection.HideViewport,
	}
	for _, ob := range lc.Collection.Objects {
		lf.Objects = append(lf.Objects, ob.Name)
	}
	for _, child := range lc.Children {
		lf.Children = append(lf.Children, flattenLayer(child))
	}
	return lf
}

// build reconstructs a live scene graph from its file form.
func build(sf *sceneFile) (*Scene, error) {
	sc := &Scene{Name: sf.Name, Mode: sf.Mode}
	geos := map[string]*Geometry{}
	for _, ge := range sf.Geometries {
		if _, ok := geos[ge.Name]; ok {
			return nil, fmt.Errorf("scene: duplicate geometry name %q", ge.Name)
		}
		geos[ge.Name] = ge
	}
	obs := map[string]*Object{}
	for _, of := range sf.Objects {
		if _, ok := obs[of.Name]; ok {
			return nil, fmt.Errorf("scene: duplicate object name %q", of.Name)
		}
		ob := &Object{
			Name:          of.Name,
			Type:          of.Type,
			Matrix:        of.Matrix,
			ParentInverse: of.ParentInverse,
			Modifiers:     of.Modifiers,
			Hidden:        of.Hidden,
			HideViewport:  of.HideViewport,
			Selected:      of.Selected,
		}
		if of.Geometry != "" {
			ge, ok := geos[of.Geometry]
			if !ok {
				return nil, fmt.Errorf("scene: object %q references unknown geometry %q", of.Name, of.Geometry)
			}
			ob.Geo = ge
		}
		obs[of.Name] = ob
		sc.Objects = append(sc.Objects, ob)
	}
	for _, of := range sf.Objects {
		if of.Parent == "" {
			continue
		}
		par, ok := obs[of.Parent]
		if !ok {
			return nil, fmt.Errorf("scene: object %q references unknown parent %q", of.Name, of.Parent)
		}
		obs[of.Name].SetParent(par)
	}
	if sf.Layer == nil {
		sc.Layer = &LayerCollection{Collection: &Collection{Name: "Scene Collection"}}
	} else {
		lc, err := buildLayer(sf.Layer, obs)
		if err != nil {
			return nil, err
		}
		sc.Layer = lc
	}
	if sf.Active != "" {
		lc := sc.Layer.FindByName(sf.Active)
		if lc == nil {
			return nil, fmt.Errorf("scene: unknown active collection %q", sf.Active)
		}
		sc.Active = lc
	}
	sc.UpdateWorld()
	return sc, nil
}

func buildLayer(lf *layerFile, obs map[string]*Object) (*LayerCollection, error) {
	lc := &LayerCollection{
		Collection: &Collection{
			Name:         lf.Name,
			HideViewport: lf.CollectionHidden,
		},
		Exclude:      lf.Exclude,
		HideViewport: lf.HideViewport,
	}
	for _, name := range lf.Objects {
		ob, ok := obs[name]
		if !ok {
			return nil, fmt.Errorf("scene: collection %q references unknown object %q", lf.Name, name)
		}
		lc.Collection.Objects = append(lc.Collection.Objects, ob)
	}
	for _, cf := range lf.Children {
		child, err := buildLayer(cf, obs)
		if err != nil {
			return nil, err
		}
		lc.Children = append(lc.Children, child)
	}
	return lc, nil
}

// Open loads a scene from the given JSON file.
func Open(filename string) (*Scene, error) {
	sf := &sceneFile{}
	if err := jsonx.Open(sf, filename); err != nil {
		return nil, err
	}
	return build(sf)
}

// Save writes the scene to the given JSON file.
func (sc *Scene) Save(filename string) error {
	return jsonx.Save(sc.flatten(), filename)
}

////////  enum text forms

var typeNames = map[Type]string{
	Empty:    "Empty",
	Mesh:     "Mesh",
	Curve:    "Curve",
	Armature: "Armature",
	Other:    "Other",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Type(%d)", int32(t))
}

// MarshalText implements [encoding.TextMarshaler].
func (t Type) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (t *Type) UnmarshalText(text []byte) error {
	for typ, s := range typeNames {
		if s == string(text) {
			*t = typ
			return nil
		}
	}
	return fmt.Errorf("scene: unknown object type %q", text)
}

var modeNames = map[Mode]string{
	ModeObject: "Object",
	ModeEdit:   "Edit",
	ModePose:   "Pose",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int32(m))
}

// MarshalText implements [encoding.TextMarshaler].
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (m *Mode) UnmarshalText(text []byte) error {
	for mode, s := range modeNames {
		if s == string(text) {
			*m = mode
			return nil
		}
	}
	return fmt.Errorf("scene: unknown mode %q", text)
}

var modifierNames = map[ModifierType]string{
	ModSubsurf:  "Subsurf",
	ModMirror:   "Mirror",
	ModSolidify: "Solidify",
	ModArmature: "Armature",
}

func (t ModifierType) String() string {
	if s, ok := modifierNames[t]; ok {
		return s
	}
	return fmt.Sprintf("ModifierType(%d)", int32(t))
}

// MarshalText implements [encoding.TextMarshaler].
func (t ModifierType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (t *ModifierType) UnmarshalText(text []byte) error {
	for typ, s := range modifierNames {
		if s == string(text) {
			*t = typ
			return nil
		}
	}
	return fmt.Errorf("scene: unknown modifier type %q", text)
}
