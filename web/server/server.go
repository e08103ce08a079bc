package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/df07/go-blackhole-raytracer/pkg/core"
	"github.com/df07/go-blackhole-raytracer/pkg/material"
	"github.com/df07/go-blackhole-raytracer/pkg/renderer"
	"github.com/df07/go-blackhole-raytracer/pkg/scene"
)

// Parameter limits shared by the handlers and /api/scene-config
const (
	minCameraRadius = 1.5
	maxCameraRadius = 1000.0
	maxDrag         = 10000
	maxScale        = 8
	minIntervalMs   = 20
	maxIntervalMs   = 5000
)

// Config contains the web server settings
type Config struct {
	Port          int
	Width         int
	Height        int
	StaticDir     string
	Sky           *material.Skydome // nil renders the procedural grid
	Scheduler     renderer.SchedulerConfig
	FrameInterval time.Duration // Default period of SSE frame events
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Port:          8080,
		Width:         400,
		Height:        400,
		StaticDir:     "static/",
		Scheduler:     renderer.DefaultSchedulerConfig(),
		FrameInterval: 250 * time.Millisecond,
	}
}

// Server handles web requests for the interactive black hole viewer. It
// owns one RenderHandle; every camera change restarts it.
type Server struct {
	config  Config
	logger  core.Logger
	console *consoleHub
	cancel  context.CancelFunc
	handle  *renderer.RenderHandle

	mu    sync.Mutex // guards scene and serialises restarts
	scene *scene.Scene
}

// NewServer creates a server and starts rendering the default view
func NewServer(config Config) *Server {
	defaults := DefaultConfig()
	if config.Width <= 0 || config.Height <= 0 {
		config.Width, config.Height = defaults.Width, defaults.Height
	}
	if config.FrameInterval <= 0 {
		config.FrameInterval = defaults.FrameInterval
	}

	consoleChan := make(chan ConsoleMessage, 100)
	logger := NewWebLogger("server", consoleChan)
	hub := newConsoleHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.run(ctx, consoleChan)

	aspect := float64(config.Width) / float64(config.Height)
	initial, err := scene.NewPreset("", scene.Euclidean, aspect, config.Sky)
	if err != nil {
		// The default preset always exists
		panic(err)
	}

	s := &Server{
		config:  config,
		logger:  logger,
		console: hub,
		cancel:  cancel,
		handle:  renderer.NewRenderHandle(config.Width, config.Height, config.Scheduler, logger),
		scene:   initial,
	}
	s.handle.Start(initial)
	return s
}

// Handler returns the HTTP routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	if s.config.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.config.StaticDir)))
	}

	// API endpoints
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/camera", s.handleCamera)
	mux.HandleFunc("/api/orbit", s.handleOrbit)
	mux.HandleFunc("/api/frame", s.handleFrame)
	mux.HandleFunc("/api/events", s.handleEvents)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// Close cancels the render in progress and stops console forwarding
func (s *Server) Close() {
	s.handle.Stop()
	s.cancel()
}

// currentScene returns the scene being rendered
func (s *Server) currentScene() *scene.Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scene
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists every model and camera preset combination
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.ListAllScenes())
}

// handleSceneConfig returns the camera defaults for a preset together with
// the parameter limits the handlers enforce
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	presetName := r.URL.Query().Get("scene")
	if presetName == "" {
		presetName = "default"
	}

	preset, ok := scene.LookupPreset(presetName)
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown scene: "+presetName)
		return
	}

	current := s.currentScene()
	geodesic := current.Geodesic
	response := map[string]interface{}{
		"scene":   preset.Name,
		"model":   current.Model.String(),
		"width":   s.config.Width,
		"height":  s.config.Height,
		"presets": scene.PresetNames(),
		"models":  []string{scene.Euclidean.String(), scene.Schwarzschild.String()},
		"defaults": map[string]interface{}{
			"r":               preset.Radius,
			"theta":           preset.Theta,
			"phi":             preset.Phi,
			"intervalMs":      s.config.FrameInterval.Milliseconds(),
			"maxSteps":        geodesic.MaxSteps,
			"escapeRadius":    geodesic.EscapeRadius,
			"escapeThreshold": geodesic.EscapeThreshold,
		},
		"limits": map[string]interface{}{
			"r": map[string]float64{
				"min": minCameraRadius,
				"max": maxCameraRadius,
			},
			"theta": map[string]float64{
				"min": 0,
				"max": math.Pi,
			},
			"phi": map[string]float64{
				"min": -2 * math.Pi,
				"max": 2 * math.Pi,
			},
			"drag": map[string]int{
				"min": -maxDrag,
				"max": maxDrag,
			},
			"scale": map[string]int{
				"min": 1,
				"max": maxScale,
			},
			"intervalMs": map[string]int{
				"min": minIntervalMs,
				"max": maxIntervalMs,
			},
		},
	}

	writeJSON(w, http.StatusOK, response)
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(parsed) {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %f and %f, got: %f", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseBoolParam parses a boolean parameter from URL query
func parseBoolParam(values url.Values, key string, defaultValue bool) (bool, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
