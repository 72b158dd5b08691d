package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-recursive-raytracer/pkg/integrator"
	"github.com/df07/go-recursive-raytracer/pkg/loaders"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

const scenesDir = "scenes"

func main() {
	// Parse command line flags
	sceneType := flag.String("scene", "reference", "Scene: built-in ID, 'json:<name>' or path to a .json scene file")
	width := flag.Int("width", 600, "Canvas width in pixels")
	height := flag.Int("height", 600, "Canvas height in pixels")
	epsilon := flag.Float64("epsilon", integrator.DefaultConfig().ShadowEpsilon, "Shadow ray offset (0 shows self-shadowing artifacts)")
	depth := flag.Int("depth", integrator.DefaultConfig().MaxDepth, "Maximum reflection depth")
	outputDir := flag.String("output", "output", "Directory renders are written under")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	selectedScene, err := createScene(*sceneType)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	config := integrator.Config{ShadowEpsilon: *epsilon, MaxDepth: *depth}
	canvas := renderer.NewImageCanvas(*width, *height)
	r, err := renderer.NewRenderer(selectedScene, canvas, config, renderer.NewDefaultLogger())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Starting Recursive Raytracer...")
	if _, err := r.RenderContext(context.Background()); err != nil {
		fmt.Printf("Error rendering: %v\n", err)
		os.Exit(1)
	}

	img := canvas.Image()
	fmt.Printf("Average luminance: %.3f\n", renderer.CalculateAverageLuminance(img))

	// Create output directory for this scene
	dir := filepath.Join(*outputDir, outputName(*sceneType))
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(dir, fmt.Sprintf("render_%s.png", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		fmt.Printf("Error creating file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		fmt.Printf("Error saving PNG: %v\n", err)
		return
	}

	fmt.Printf("Render saved as %s\n", filename)
}

func showHelp() {
	fmt.Println("Recursive Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.ListBuiltInScenes() {
		fmt.Printf("  %-18s %s\n", info.ID, info.Description)
	}
	if files, err := scene.ListJSONScenes(scenesDir); err == nil {
		for _, info := range files {
			fmt.Printf("  %-18s %s\n", info.ID, info.Description)
		}
	}
	fmt.Println()
	fmt.Println("Output will be saved to <output>/<scene>/render_<timestamp>.png")
}

// createScene resolves a scene name: a json:<name> reference into the scenes
// directory (the .json extension is optional), a .json path, or a built-in
// scene ID
func createScene(name string) (*scene.Scene, error) {
	switch {
	case name == "":
		return nil, fmt.Errorf("scene name is empty")
	case strings.HasPrefix(name, "json:"):
		fileName := strings.TrimSuffix(strings.TrimPrefix(name, "json:"), ".json")
		return loaders.LoadSceneJSON(filepath.Join(scenesDir, fileName+".json"))
	case strings.HasSuffix(name, ".json"):
		return loaders.LoadSceneJSON(name)
	default:
		return scene.NewScene(name)
	}
}

// outputName turns a scene name into a directory-safe name
func outputName(name string) string {
	if fileName, ok := strings.CutPrefix(name, "json:"); ok {
		return "json_" + strings.TrimSuffix(fileName, ".json")
	}
	if strings.HasSuffix(name, ".json") {
		base := filepath.Base(name)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return strings.ReplaceAll(name, ":", "_")
}
