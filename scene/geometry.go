// Copyright (c) 2026, Scene Forge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jinzhu/copier"
)

// Geometry is a mesh-like data block: triangle geometry with optional
// per-vertex normals. A Geometry may be referenced by multiple objects;
// identity is pointer identity, and the block lives as long as any
// object references it.
type Geometry struct {
	// Name is the data-block name. Unlike object names it is not
	// required to be unique; serialization disambiguates as needed.
	Name string

	// Vertex is the vertex position list.
	Vertex []mgl64.Vec3

	// Normal is the optional per-vertex normal list, parallel to Vertex.
	Normal []mgl64.Vec3

	// Index is the flat triangle index list, three entries per triangle.
	Index []int
}

// Users returns the number of objects in the scene referencing this
// data block.
func (ge *Geometry) Users(sc *Scene) int {
	n := 0
	for _, ob := range sc.Objects {
		if ob.Geo == ge {
			n++
		}
	}
	return n
}

// Copy returns a new, exclusively-owned deep copy of the data block.
func (ge *Geometry) Copy() (*Geometry, error) {
	cp := &Geometry{}
	err := copier.CopyWithOption(cp, ge, copier.Option{DeepCopy: true})
	if err != nil {
		return nil, err
	}
	return cp, nil
}

// Transform permanently folds the given linear transform into the
// vertex data. Normals are transformed by the inverse transpose and
// renormalized, so both rotations and non-uniform scales keep them
// perpendicular to their surfaces.
func (ge *Geometry) Transform(lin mgl64.Mat3) {
	for i, v := range ge.Vertex {
		ge.Vertex[i] = lin.Mul3x1(v)
	}
	if len(ge.Normal) == 0 {
		return
	}
	nlin := lin.Inv().Transpose()
	for i, n := range ge.Normal {
		nn := nlin.Mul3x1(n)
		if l := nn.Len(); l > 0 {
			nn = nn.Mul(1 / l)
		}
		ge.Normal[i] = nn
	}
}
