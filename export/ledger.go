// Copyright (c) 2026, Scene Forge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package export

import "github.com/sceneforge/fbxprep/scene"

// Ledger records exactly the scene state that one export operation
// changed, so it can be reversed once the operation completes or fails.
// Every entry corresponds to a flag or binding this run itself changed;
// nothing pre-existing-visible is ever recorded. A Ledger is created
// per operation and passed explicitly; it is valid for that operation
// only and must be fully drained before the operation ends.
type Ledger struct {
	// sharedGeo maps object name to the previously-shared geometry
	// data block that should be re-linked after processing.
	sharedGeo map[string]*scene.Geometry

	// objects whose hidden flag this run forced off
	hiddenObjects []*scene.Object

	// objects whose viewport-disable flag this run forced off
	disabledObjects []*scene.Object

	// layer collections whose own hide flag this run forced off
	hiddenCollections []*scene.LayerCollection

	// layer collections whose underlying collection disable flag
	// this run forced off
	disabledCollections []*scene.LayerCollection
}

// NewLedger returns an empty ledger for one export operation.
func NewLedger() *Ledger {
	return &Ledger{sharedGeo: map[string]*scene.Geometry{}}
}

// Empty reports whether every recorded entry has been drained.
func (led *Ledger) Empty() bool {
	return len(led.sharedGeo) == 0 &&
		len(led.hiddenObjects) == 0 &&
		len(led.disabledObjects) == 0 &&
		len(led.hiddenCollections) == 0 &&
		len(led.disabledCollections) == 0
}

// RestoreGeometry re-links every recorded previously-shared geometry
// data block to its object, draining those entries.
func (led *Ledger) RestoreGeometry(sc *scene.Scene) {
	for name, geo := range led.sharedGeo {
		if ob := sc.ObjectByName(name); ob != nil {
			ob.Geo = geo
		}
	}
	led.sharedGeo = map[string]*scene.Geometry{}
}

// RestoreVisibility re-raises every hidden and disabled flag this run
// forced off, draining those entries. Restoration is idempotent and
// order-independent per flag.
func (led *Ledger) RestoreVisibility() {
	for _, ob := range led.hiddenObjects {
		ob.Hidden = true
	}
	for _, ob := range led.disabledObjects {
		ob.HideViewport = true
	}
	for _, lc := range led.hiddenCollections {
		lc.HideViewport = true
	}
	for _, lc := range led.disabledCollections {
		lc.Collection.HideViewport = true
	}
	led.hiddenObjects = nil
	led.disabledObjects = nil
	led.hiddenCollections = nil
	led.disabledCollections = nil
}
