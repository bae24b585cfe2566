// Copyright (c) 2026, Scene Forge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package export

import "github.com/sceneforge/fbxprep/scene"

// makeSingleUserGeometry converts every multi-user geometry data block
// into a per-object exclusive copy, so the rebaser can mutate geometry
// without cross-object interference.
//
// The sharing relationship is recorded for later restoration only when
// no current user of the block has an active modifier: an active
// modifier makes the evaluated geometry diverge between users, so
// re-sharing would be wrong and each object keeps its own copy
// permanently. The copy itself is made either way.
func makeSingleUserGeometry(sc *scene.Scene, led *Ledger) error {
	for _, ob := range sc.Objects {
		if ob.Geo == nil || ob.Geo.Users(sc) <= 1 {
			continue
		}
		if ob.Type.GeometryKind() {
			mods := 0
			for _, user := range sc.Objects {
				if user.Geo == ob.Geo {
					mods += user.ActiveModifiers()
				}
			}
			if mods == 0 {
				led.sharedGeo[ob.Name] = ob.Geo
			}
		}
		cp, err := ob.Geo.Copy()
		if err != nil {
			return err
		}
		ob.Geo = cp
	}
	return nil
}
