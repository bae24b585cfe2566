// Copyright (c) 2026, Scene Forge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fbx

import (
	"fmt"
	"io"
	"os"

	"github.com/sceneforge/fbxprep/export"
	"github.com/sceneforge/fbxprep/scene"
)

// Writer serializes scene selections to ASCII FBX files. It implements
// [export.Exporter] and never mutates the scene.
type Writer struct{}

// New returns a new FBX writer.
func New() *Writer {
	return &Writer{}
}

// Export writes the objects admitted by opts to the file at opts.Path.
func (wr *Writer) Export(sc *scene.Scene, opts export.ExportOptions) error {
	f, err := os.Create(opts.Path)
	if err != nil {
		return err
	}
	doc := BuildDocument(sc, opts)
	if err := doc.Write(f); err != nil {
		f.Close()
		return fmt.Errorf("fbx: writing %s: %w", opts.Path, err)
	}
	return f.Close()
}

// Write serializes the document to the given writer.
func (doc *Document) Write(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "; FBX %d project file\n; Generator: fbxprep\n\n",
		Version); err != nil {
		return err
	}
	for _, sec := range doc.Sections {
		if err := sec.Write(w, 0); err != nil {
			return err
		}
	}
	return nil
}

var _ export.Exporter = (*Writer)(nil)
