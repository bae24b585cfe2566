// Copyright (c) 2026, Scene Forge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package export prepares a scene for FBX export and restores it
// afterward. Preparation normalizes visibility, un-shares multi-user
// geometry, bakes modifier stacks, and rebases every object's local
// transform so a Z-up scene exports correctly into a Y-up convention;
// every temporary mutation is recorded in a [Ledger] and reversed
// before the export primitive runs, so a failed export never leaves
// the scene mutated.
package export

import (
	"log/slog"
	"path/filepath"

	"cogentcore.org/core/base/errors"
	"github.com/sceneforge/fbxprep/scene"
)

// Options is the user-facing configuration of one export operation.
type Options struct {
	// Path is the output file path. When IndividualFiles is set it is
	// reinterpreted as a directory (the filename part, if any, is
	// dropped) and filenames are derived from object names.
	Path string

	// ActiveCollection restricts the export to the active collection.
	ActiveCollection bool

	// SelectedOnly restricts the export to the selected objects.
	SelectedOnly bool

	// MoveToCenter moves each root object to the origin in the
	// exported file.
	MoveToCenter bool

	// IndividualFiles exports each selected object and its children
	// to its own file.
	IndividualFiles bool

	// FixRotation bakes the Z-up to Y-up axis correction into the
	// exported geometry.
	FixRotation bool
}

// SmoothType is the facet/normal smoothing mode written by the export
// primitive.
type SmoothType int32

const (
	// SmoothOff exports no smoothing information.
	SmoothOff SmoothType = iota

	// SmoothFace exports face smoothing groups.
	SmoothFace

	// SmoothEdge exports edge smoothing.
	SmoothEdge
)

// ExportOptions is the option set handed to the external export
// primitive, mirroring the host exporter's surface.
type ExportOptions struct {
	Path                  string
	UseSelection          bool
	UseActiveCollection   bool
	ApplyScaleUnits       bool
	ObjectTypes           map[scene.Type]bool
	UseMeshModifiers      bool
	AddLeafBones          bool
	UseArmatureDeformOnly bool
	MeshSmoothType        SmoothType
}

// Exporter is the external primitive that serializes a prepared scene
// selection to a target file. Implementations must not mutate the scene.
type Exporter interface {
	Export(sc *scene.Scene, opts ExportOptions) error
}

// Result reports the outcome of one export operation. A failed export
// is non-fatal: the scene is fully restored either way.
type Result struct {
	// Saved is whether the export primitive completed for every file.
	Saved bool

	// Files lists the files written, in order.
	Files []string

	// Err is the failure reason when Saved is false.
	Err error
}

// Failed reports whether the operation did not save.
func (r Result) Failed() bool { return !r.Saved }

// Export runs one full export operation: normalize scene state, bake
// the axis correction, restore everything the preparation changed,
// invoke the export primitive, and finally roll the whole session back
// to the pre-operation checkpoint. Restoration completes before the
// primitive runs, so an export failure never leaves the scene mutated.
//
// The operation is single-threaded and must not be invoked
// concurrently with itself on the same scene.
func Export(sc *scene.Scene, exp Exporter, opts Options) Result {
	cp, err := sc.Checkpoint("prepare fbx export")
	if err != nil {
		return Result{Err: errors.Log(err)}
	}

	led := NewLedger()
	selection := sc.Selected()

	sc.Mode = scene.ModeObject

	// everything in the view layer must be visible and enabled while
	// geometry is mutated
	unhideCollections(sc.Layer, led)
	unhideObjects(sc, led)

	// single-user copies of multi-user data blocks; sharing is
	// reinstated after the rebase where safe
	if err := makeSingleUserGeometry(sc, led); err != nil {
		led.RestoreGeometry(sc)
		led.RestoreVisibility()
		return Result{Err: errors.Log(err)}
	}

	applyObjectModifiers(sc)

	view := map[*scene.Object]bool{}
	for _, ob := range sc.ViewLayerObjects() {
		view[ob] = true
	}
	for _, root := range rootObjects(sc) {
		slog.Debug("rebasing export root", "object", root.Name)
		fixObject(root, view, opts.FixRotation, opts.MoveToCenter, 0)
	}

	led.RestoreGeometry(sc)

	// world transforms depend on the rewritten local matrices and must
	// be recomputed before the primitive reads them
	sc.UpdateWorld()

	led.RestoreVisibility()

	files, err := runExport(sc, exp, opts, selection)
	res := Result{}
	if err != nil {
		slog.Error("fbx file not saved", "err", err)
		res.Err = err
	} else {
		slog.Info("fbx file saved", "files", files)
		res.Saved = true
		res.Files = files
	}

	// final safety net: independent of ledger correctness, the session
	// rolls back to its pre-operation state
	if rerr := sc.RestoreCheckpoint(cp); rerr != nil {
		errors.Log(rerr)
		if res.Err == nil {
			res.Err = rerr
		}
	}
	return res
}

// runExport invokes the primitive once per selected object, or once
// with the full original selection restored.
func runExport(sc *scene.Scene, exp Exporter, opts Options, selection []*scene.Object) ([]string, error) {
	eo := ExportOptions{
		UseSelection:        true,
		UseActiveCollection: opts.ActiveCollection,
		ApplyScaleUnits:     true,
		ObjectTypes: map[scene.Type]bool{
			scene.Empty:    true,
			scene.Armature: true,
			scene.Mesh:     true,
			scene.Other:    true,
		},
		UseMeshModifiers:      true,
		AddLeafBones:          false,
		UseArmatureDeformOnly: true,
		MeshSmoothType:        SmoothEdge,
	}

	if opts.IndividualFiles {
		dir := opts.Path
		if filepath.Ext(dir) != "" {
			dir = filepath.Dir(dir)
		}
		var files []string
		for _, ob := range selection {
			sc.SelectOnly(ob)
			eo.Path = filepath.Join(dir, ob.Name+".fbx")
			if err := exp.Export(sc, eo); err != nil {
				return files, err
			}
			files = append(files, eo.Path)
		}
		return files, nil
	}

	sc.SelectOnly(selection...)
	eo.Path = opts.Path
	eo.UseSelection = opts.SelectedOnly
	if err := exp.Export(sc, eo); err != nil {
		return nil, err
	}
	return []string{opts.Path}, nil
}
