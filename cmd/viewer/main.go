package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"text-stage/internal/commands"
	"text-stage/internal/config"
	"text-stage/internal/fonts"
	"text-stage/internal/graphics"
	"text-stage/internal/logger"
	"text-stage/internal/material"
	"text-stage/internal/scene"
	"text-stage/internal/viewer"
)

func main() {
	r := commands.Default(os.Stdout, run)
	if err := r.Execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	font, used, err := fonts.Resolve(cfg.Font)
	if err != nil {
		log.Error("font", zap.String("font", cfg.Font), zap.Error(err))
		return err
	}
	log.Info("starting", zap.String("text", cfg.Renderer.Text), zap.String("font", used))

	graphics.Open(cfg.Window)
	defer graphics.Close()

	meshes := scene.NewMeshUploader()
	v, err := viewer.New(cfg, font, meshes, log)
	if err != nil {
		log.Error("viewer", zap.Error(err))
		return err
	}
	defer v.Close()

	scn := scene.New(v.Camera(), meshes, material.DefaultLighting())
	defer scn.Close()
	scn.SetGridVisible(cfg.ShowGrid)
	if !scn.Lit() {
		log.Warn("lit shader did not compile, drawing unlit")
	}
	scene.InitStyle()
	screen := scene.Screen{Scene: scn}

	keys := v.Keys()
	graphics.Run(
		func() { v.Step(graphics.Poll(keys)) },
		func() { v.Draw(screen, graphics.FPS()) },
	)
	return nil
}
