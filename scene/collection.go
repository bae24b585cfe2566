// Copyright (c) 2026, Scene Forge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

// Collection is the underlying grouping of objects, shared across view
// layers. Its HideViewport flag disables the collection globally,
// independent of any per-layer flag.
type Collection struct {
	// Name is the collection name.
	Name string

	// HideViewport disables the collection in all viewports.
	HideViewport bool

	// Objects are the member objects, in link order.
	Objects []*Object
}

// LayerCollection is the per-view-layer wrapper around a [Collection],
// forming the collection tree of the active view. It carries its own
// visibility flags, distinct from those of the underlying collection.
type LayerCollection struct {
	// Collection is the wrapped grouping.
	Collection *Collection

	// Exclude removes the collection and its entire subtree from the
	// view layer. Excluded subtrees are not part of the active view
	// and their objects are not resolved into it.
	Exclude bool

	// HideViewport hides the layer collection in this view layer only.
	HideViewport bool

	// Children are the child layer collections.
	Children []*LayerCollection
}

// NewChild creates a new collection with the given name, wraps it in a
// layer collection, and links it under this one.
func (lc *LayerCollection) NewChild(name string) *LayerCollection {
	child := &LayerCollection{Collection: &Collection{Name: name}}
	lc.Children = append(lc.Children, child)
	return child
}

// walk calls fn for this layer collection and every descendant,
// pre-order, skipping excluded subtrees entirely.
func (lc *LayerCollection) walk(fn func(*LayerCollection)) {
	if lc.Exclude {
		return
	}
	fn(lc)
	for _, child := range lc.Children {
		child.walk(fn)
	}
}

// FindByName returns the layer collection wrapping the collection of
// the given name, searching this subtree including excluded branches,
// or nil if not found.
func (lc *LayerCollection) FindByName(name string) *LayerCollection {
	if lc.Collection.Name == name {
		return lc
	}
	for _, child := range lc.Children {
		if found := child.FindByName(name); found != nil {
			return found
		}
	}
	return nil
}
