// Copyright (c) 2026, Scene Forge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "github.com/jinzhu/copier"

// Checkpoint is a full-session snapshot of a scene, taken with
// [Scene.Checkpoint] and restored with [Scene.RestoreCheckpoint].
// It holds the flat file form of the graph, so it shares no mutable
// state with the live scene.
type Checkpoint struct {
	// Label describes what the checkpoint brackets.
	Label string

	file *sceneFile
}

// Checkpoint snapshots the entire scene state under the given label.
func (sc *Scene) Checkpoint(label string) (*Checkpoint, error) {
	cp := &sceneFile{}
	err := copier.CopyWithOption(cp, sc.flatten(), copier.Option{DeepCopy: true})
	if err != nil {
		return nil, err
	}
	return &Checkpoint{Label: label, file: cp}, nil
}

// RestoreCheckpoint rolls the scene back to the snapshotted state.
// The checkpoint remains valid and can be restored again.
func (sc *Scene) RestoreCheckpoint(cp *Checkpoint) error {
	file := &sceneFile{}
	err := copier.CopyWithOption(file, cp.file, copier.Option{DeepCopy: true})
	if err != nil {
		return err
	}
	ns, err := build(file)
	if err != nil {
		return err
	}
	*sc = *ns
	return nil
}
