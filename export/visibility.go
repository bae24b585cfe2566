// Copyright (c) 2026, Scene Forge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package export

import "github.com/sceneforge/fbxprep/scene"

// All collections and objects in the view layer must be visible while
// being processed; transform application and matrix changes have no
// effect otherwise. Everything recorded here is restored right before
// the export primitive runs.

// unhideCollections walks the collection tree pre-order and forces
// every non-excluded collection visible and enabled, recording each
// flag it actually changes. An excluded node prunes its entire subtree:
// its objects are not part of the view layer, so nothing beneath it is
// ever touched.
func unhideCollections(lc *scene.LayerCollection, led *Ledger) {
	if lc.Exclude {
		return
	}
	for _, child := range lc.Children {
		if child.Exclude {
			continue
		}
		if child.HideViewport {
			child.HideViewport = false
			led.hiddenCollections = append(led.hiddenCollections, child)
		}
		if child.Collection.HideViewport {
			child.Collection.HideViewport = false
			led.disabledCollections = append(led.disabledCollections, child)
		}
	}
	// recurse unconditionally: grandchildren must be checked even when
	// this child needed no changes
	for _, child := range lc.Children {
		unhideCollections(child, led)
	}
}

// unhideObjects forces every object resolved into the view layer
// visible and enabled, recording each flag it actually changes.
// Membership is a flat per-object test, not a tree walk.
func unhideObjects(sc *scene.Scene, led *Ledger) {
	for _, ob := range sc.ViewLayerObjects() {
		if ob.Hidden {
			led.hiddenObjects = append(led.hiddenObjects, ob)
			ob.Hidden = false
		}
		if ob.HideViewport {
			led.disabledObjects = append(led.disabledObjects, ob)
			ob.HideViewport = false
		}
	}
}
