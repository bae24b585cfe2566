// Copyright (c) 2026, Scene Forge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command fbxprep exports scene files to FBX with export preparation
// applied: visibility normalization, modifier baking, and the Z-up to
// Y-up axis correction.
package main

import (
	"fmt"
	"os"

	"cogentcore.org/core/base/iox/tomlx"
	"github.com/spf13/cobra"

	"github.com/sceneforge/fbxprep/export"
	"github.com/sceneforge/fbxprep/fbx"
	"github.com/sceneforge/fbxprep/scene"
)

// config holds flag defaults loadable from a TOML file.
type config struct {
	Output           string `toml:"output"`
	ActiveCollection bool   `toml:"active-collection"`
	SelectedOnly     bool   `toml:"selected-only"`
	MoveToCenter     bool   `toml:"move-to-center"`
	Individual       bool   `toml:"individual"`
	FixRotation      bool   `toml:"fix-rotation"`
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "fbxprep",
		Short:         "Prepare and export scene files to FBX",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newExportCmd())
	return root
}

func newExportCmd() *cobra.Command {
	var (
		cfgPath string
		cfg     = config{SelectedOnly: true}
	)
	cmd := &cobra.Command{
		Use:   "export <scene.json>",
		Short: "Export a scene file to FBX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgPath != "" {
				fileCfg := config{SelectedOnly: true}
				if err := tomlx.Open(&fileCfg, cfgPath); err != nil {
					return err
				}
				applyConfig(cmd, &cfg, &fileCfg)
			}
			if cfg.Output == "" {
				return fmt.Errorf("no output path: pass --output or set it in the config file")
			}

			sc, err := scene.Open(args[0])
			if err != nil {
				return err
			}
			if len(sc.Selected()) == 0 {
				sc.SelectOnly(sc.Objects...)
			}

			res := export.Export(sc, fbx.New(), export.Options{
				Path:             cfg.Output,
				ActiveCollection: cfg.ActiveCollection,
				SelectedOnly:     cfg.SelectedOnly,
				MoveToCenter:     cfg.MoveToCenter,
				IndividualFiles:  cfg.Individual,
				FixRotation:      cfg.FixRotation,
			})
			if res.Failed() {
				return fmt.Errorf("not saved: %w", res.Err)
			}
			for _, f := range res.Files {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "TOML file providing flag defaults")
	cmd.Flags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "output FBX path (directory in --individual mode)")
	cmd.Flags().BoolVar(&cfg.ActiveCollection, "active-collection", cfg.ActiveCollection, "export the active collection only")
	cmd.Flags().BoolVar(&cfg.SelectedOnly, "selected-only", cfg.SelectedOnly, "export selected objects only")
	cmd.Flags().BoolVar(&cfg.MoveToCenter, "move-to-center", cfg.MoveToCenter, "move root objects to the origin")
	cmd.Flags().BoolVar(&cfg.Individual, "individual", cfg.Individual, "export each selected object to its own file")
	cmd.Flags().BoolVar(&cfg.FixRotation, "fix-rotation", cfg.FixRotation, "bake the Z-up to Y-up axis correction")
	return cmd
}

// applyConfig overlays file-provided defaults onto flags the user did
// not set explicitly.
func applyConfig(cmd *cobra.Command, cfg, fileCfg *config) {
	if !cmd.Flags().Changed("output") {
		cfg.Output = fileCfg.Output
	}
	if !cmd.Flags().Changed("active-collection") {
		cfg.ActiveCollection = fileCfg.ActiveCollection
	}
	if !cmd.Flags().Changed("selected-only") {
		cfg.SelectedOnly = fileCfg.SelectedOnly
	}
	if !cmd.Flags().Changed("move-to-center") {
		cfg.MoveToCenter = fileCfg.MoveToCenter
	}
	if !cmd.Flags().Changed("individual") {
		cfg.Individual = fileCfg.Individual
	}
	if !cmd.Flags().Changed("fix-rotation") {
		cfg.FixRotation = fileCfg.FixRotation
	}
}
