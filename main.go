package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-blackhole-raytracer/pkg/core"
	"github.com/df07/go-blackhole-raytracer/pkg/geometry"
	"github.com/df07/go-blackhole-raytracer/pkg/integrator"
	"github.com/df07/go-blackhole-raytracer/pkg/loaders"
	"github.com/df07/go-blackhole-raytracer/pkg/material"
	"github.com/df07/go-blackhole-raytracer/pkg/renderer"
	"github.com/df07/go-blackhole-raytracer/pkg/scene"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// options holds the parsed command line
type options struct {
	width, height int
	scale         int
	model         scene.Model
	skydome       string
	camR          float64
	camTheta      float64
	camPhi        float64
	preset        string
	maxSteps      int
	escapeRadius  float64
	workers       int
	label         bool
	output        string
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	if err := run(opts, renderer.NewDefaultLogger()); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func parseFlags(args []string, out io.Writer) (options, error) {
	fs := flag.NewFlagSet("blackhole", flag.ContinueOnError)
	fs.SetOutput(out)

	defaults := integrator.DefaultGeodesicConfig()
	screen := fs.String("screen", "400", "Image size: N for a square image or WxH")
	scale := fs.Int("scale", 1, "Integer upscale factor applied to the saved image")
	schwarzschild := fs.Bool("schwarzschild", false, "Integrate geodesics in the Schwarzschild metric instead of flat space")
	skydome := fs.String("skydome", "", "Equirectangular sky image (png, jpeg, gif, bmp, tiff, webp); empty uses the grid")
	camR := fs.Float64("cam-r", 10, "Camera orbit radius")
	camTheta := fs.Float64("cam-theta", math.Pi/2-0.2, "Camera polar angle in radians")
	camPhi := fs.Float64("cam-phi", 0, "Camera azimuth in radians")
	preset := fs.String("scene", "", fmt.Sprintf("Camera preset %v; overrides the -cam-* flags", scene.PresetNames()))
	maxSteps := fs.Int("max-steps", defaults.MaxSteps, "Maximum geodesic steps per ray")
	escapeRadius := fs.Float64("escape-radius", defaults.EscapeRadius, "Outward rays beyond this radius escape (0 disables)")
	workers := fs.Int("workers", 0, "Number of parallel workers (0 = use CPU count)")
	label := fs.Bool("label", false, "Draw the camera parameters onto the image")
	output := fs.String("output", "", "Output PNG path (default output/<model>/render_<timestamp>.png)")

	fs.Usage = func() {
		fmt.Fprintln(out, "Black Hole Raytracer")
		fmt.Fprintln(out, "Usage: blackhole [options]")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Options:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	width, height, err := parseScreen(*screen)
	if err != nil {
		return options{}, err
	}
	if *scale < 1 {
		return options{}, fmt.Errorf("scale must be at least 1, got %d", *scale)
	}
	if *maxSteps < 1 {
		return options{}, fmt.Errorf("max-steps must be at least 1, got %d", *maxSteps)
	}

	model := scene.Euclidean
	if *schwarzschild {
		model = scene.Schwarzschild
	}

	return options{
		width:        width,
		height:       height,
		scale:        *scale,
		model:        model,
		skydome:      *skydome,
		camR:         *camR,
		camTheta:     *camTheta,
		camPhi:       *camPhi,
		preset:       *preset,
		maxSteps:     *maxSteps,
		escapeRadius: *escapeRadius,
		workers:      *workers,
		label:        *label,
		output:       *output,
	}, nil
}

// parseScreen accepts "N" for an N×N image or "WxH"
func parseScreen(size string) (int, int, error) {
	size = strings.ToLower(strings.TrimSpace(size))
	parts := strings.Split(size, "x")
	if len(parts) > 2 {
		return 0, 0, fmt.Errorf("invalid screen size %q: expected N or WxH", size)
	}

	dims := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid screen size %q: %w", size, err)
		}
		if n < 1 || n > 16384 {
			return 0, 0, fmt.Errorf("invalid screen size %q: dimensions must be between 1 and 16384", size)
		}
		dims[i] = n
	}

	if len(dims) == 1 {
		return dims[0], dims[0], nil
	}
	return dims[0], dims[1], nil
}

// loadSky loads the sky-dome, falling back to the procedural grid on failure
func loadSky(path string, logger core.Logger) *material.Skydome {
	if path == "" {
		return nil
	}
	sky, err := loaders.LoadSkydome(path)
	if err != nil {
		logger.Printf("Warning: %v; using the grid sky instead\n", err)
		return nil
	}
	logger.Printf("Loaded skydome %s (%dx%d)\n", path, sky.Width, sky.Height)
	return sky
}

func buildScene(opts options, logger core.Logger) (*scene.Scene, error) {
	aspect := float64(opts.width) / float64(opts.height)
	sky := loadSky(opts.skydome, logger)

	var s *scene.Scene
	if opts.preset != "" {
		var err error
		s, err = scene.NewPreset(opts.preset, opts.model, aspect, sky)
		if err != nil {
			return nil, err
		}
	} else {
		camera := geometry.NewOrbitingCameraSpherical(opts.camR, opts.camTheta, opts.camPhi, aspect, sky)
		s = scene.New(opts.model, camera)
	}

	s.Geodesic.MaxSteps = opts.maxSteps
	s.Geodesic.EscapeRadius = opts.escapeRadius
	return s, nil
}

func defaultOutputPath(model scene.Model, now time.Time) string {
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", model.String(), fmt.Sprintf("render_%s.png", timestamp))
}

func savePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("failed to save PNG: %w", err)
	}
	return file.Close()
}

func run(opts options, logger core.Logger) error {
	printer := message.NewPrinter(language.English)
	logger.Printf("Starting Black Hole Raytracer...\n")

	s, err := buildScene(opts, logger)
	if err != nil {
		return err
	}

	config := renderer.DefaultSchedulerConfig()
	config.NumWorkers = opts.workers
	handle := renderer.NewRenderHandle(opts.width, opts.height, config, logger)

	startTime := time.Now()
	handle.Start(s)
	for frame := range handle.Frames(context.Background(), 2*time.Second) {
		if !frame.Done {
			logger.Printf("  %.0f%% complete\n", frame.Progress*100)
		}
	}

	stats := handle.Stats()
	logger.Printf("Render completed in %v\n", time.Since(startTime))
	for i, count := range stats.Outcomes {
		if count > 0 {
			logger.Printf("  %-20s %s\n", integrator.Outcome(i), printer.Sprintf("%d", count))
		}
	}

	img := renderer.ScaleImage(handle.Image(), opts.scale)
	if opts.label {
		renderer.DrawLabel(img, s.Label())
	}

	path := opts.output
	if path == "" {
		path = defaultOutputPath(s.Model, time.Now())
	}
	if err := savePNG(path, img); err != nil {
		return err
	}

	logger.Printf("Render saved as %s\n", path)
	return nil
}
