package server

import (
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-blackhole-raytracer/pkg/integrator"
	"github.com/df07/go-blackhole-raytracer/pkg/renderer"
	"github.com/df07/go-blackhole-raytracer/pkg/scene"
)

// CameraState is the response of the camera and orbit endpoints
type CameraState struct {
	R          float64 `json:"r"`
	Theta      float64 `json:"theta"`
	Phi        float64 `json:"phi"`
	Model      string  `json:"model"`
	Generation uint64  `json:"generation"`
}

// FrameUpdate represents a snapshot of the render sent via SSE
type FrameUpdate struct {
	Generation uint64  `json:"generation"`
	ImageData  string  `json:"imageData"` // Base64 encoded PNG
	Progress   float64 `json:"progress"`
	Done       bool    `json:"done"`
	Cancelled  bool    `json:"cancelled"`
}

// CompleteUpdate summarises a finished pass
type CompleteUpdate struct {
	Generation   uint64         `json:"generation"`
	ElapsedMs    int64          `json:"elapsedMs"`
	TotalPixels  int            `json:"totalPixels"`
	Failures     int            `json:"failures"`
	AverageSteps float64        `json:"averageSteps"`
	Outcomes     map[string]int `json:"outcomes"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "frame", "complete", "error"
	Data string `json:"data"` // JSON-encoded data
}

// restart swaps in next and starts rendering it. Callers must hold mu.
func (s *Server) restart(next *scene.Scene) CameraState {
	s.scene = next
	gen := s.handle.Start(next)

	r, theta, phi := next.Camera.OrbitCoordinates()
	return CameraState{
		R:          r,
		Theta:      theta,
		Phi:        phi,
		Model:      next.Model.String(),
		Generation: gen,
	}
}

// handleCamera places the camera at explicit orbit coordinates and restarts
// the render. Missing parameters keep their current value; a scene parameter
// supplies the coordinates of a named preset instead.
func (s *Server) handleCamera(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	q := r.URL.Query()

	s.mu.Lock()
	defer s.mu.Unlock()

	curR, curTheta, curPhi := s.scene.Camera.OrbitCoordinates()
	if name := q.Get("scene"); name != "" {
		preset, ok := scene.LookupPreset(name)
		if !ok {
			writeError(w, http.StatusBadRequest, "Unknown scene: "+name)
			return
		}
		curR, curTheta, curPhi = preset.Radius, preset.Theta, preset.Phi
	}

	radius, err := parseFloatParam(q, "r", curR, minCameraRadius, maxCameraRadius)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	theta, err := parseFloatParam(q, "theta", curTheta, 0, math.Pi)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	phi, err := parseFloatParam(q, "phi", curPhi, -2*math.Pi, 2*math.Pi)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	model := s.scene.Model
	if name := q.Get("model"); name != "" {
		if model, err = scene.ParseModel(name); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	next := s.scene.WithCamera(s.scene.Camera.WithOrbit(radius, theta, phi)).WithModel(model)
	writeJSON(w, http.StatusOK, s.restart(next))
}

// handleOrbit applies a mouse drag in pixels and restarts the render
func (s *Server) handleOrbit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	q := r.URL.Query()

	dx, err := parseIntParam(q, "dx", 0, -maxDrag, maxDrag)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	dy, err := parseIntParam(q, "dy", 0, -maxDrag, maxDrag)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.restart(s.scene.Orbit(dx, dy)))
}

// handleFrame returns the current pixel buffer as a PNG
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	scale, err := parseIntParam(q, "scale", 1, 1, maxScale)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	label, err := parseBoolParam(q, "label", false)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	current := s.currentScene()
	img := renderer.ScaleImage(s.handle.Image(), scale)
	if label {
		renderer.DrawLabel(img, current.Label())
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Generation", strconv.FormatUint(s.handle.PassGeneration(), 10))
	w.Header().Set("X-Render-Progress", strconv.FormatFloat(s.handle.Progress(), 'f', 4, 64))
	if err := png.Encode(w, img); err != nil {
		log.Printf("Error encoding frame: %v", err)
	}
}

// handleEvents streams frames of every pass, console output and completion
// notices until the client disconnects
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	intervalMs, err := parseIntParam(q, "interval", int(s.config.FrameInterval.Milliseconds()), minIntervalMs, maxIntervalMs)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	scale, err := parseIntParam(q, "scale", 1, 1, maxScale)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.setSSEHeaders(w)
	ctx := r.Context()

	// Create unified SSE event channel for thread-safe writing
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()

	consoleChan := s.console.subscribe()
	defer s.console.unsubscribe(consoleChan)
	go s.streamConsoleMessages(ctx, consoleChan, sseEventChan)

	s.streamFrames(ctx, sseEventChan, time.Duration(intervalMs)*time.Millisecond, scale)

	// The writer owns w until it exits
	<-writerDone
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// writeSSEEvents handles writing all SSE events in a single goroutine (thread-safe)
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan chan SSEEvent) {
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}

			_, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data)
			if err != nil {
				// Client disconnected during write
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

		case <-ctx.Done():
			return
		}
	}
}

// streamConsoleMessages forwards console messages to the SSE writer
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	for {
		select {
		case consoleMsg, ok := <-consoleChan:
			if !ok {
				return
			}

			data, err := json.Marshal(consoleMsg)
			if err != nil {
				log.Printf("Error marshaling console message: %v", err)
				continue
			}

			select {
			case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
			case <-ctx.Done():
				return
			default:
				// Channel full, skip message to avoid blocking
			}

		case <-ctx.Done():
			return
		}
	}
}

// streamFrames follows the handle from pass to pass. Each pass produces
// periodic frame events and a final frame; passes that run to completion
// are followed by a complete event.
func (s *Server) streamFrames(ctx context.Context, sseEventChan chan SSEEvent, interval time.Duration, scale int) {
	var lastGen uint64
	for {
		for frame := range s.handle.Frames(ctx, interval) {
			lastGen = frame.Generation
			s.sendFrame(ctx, sseEventChan, frame, scale)
			if frame.Done && !frame.Cancelled {
				s.sendComplete(ctx, sseEventChan, frame.Generation)
			}
		}

		if !s.waitForNextPass(ctx, lastGen, interval) {
			return
		}
	}
}

// waitForNextPass polls until a pass newer than gen has started. It returns
// false if ctx is done first.
func (s *Server) waitForNextPass(ctx context.Context, gen uint64, interval time.Duration) bool {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for s.handle.PassGeneration() <= gen {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
		}
	}
	return true
}

func (s *Server) sendFrame(ctx context.Context, sseEventChan chan SSEEvent, frame renderer.Frame, scale int) {
	imageData, err := imageToBase64PNG(renderer.ScaleImage(frame.Image, scale))
	if err != nil {
		log.Printf("Error encoding frame %d: %v", frame.Generation, err)
		return
	}

	data, err := json.Marshal(FrameUpdate{
		Generation: frame.Generation,
		ImageData:  imageData,
		Progress:   frame.Progress,
		Done:       frame.Done,
		Cancelled:  frame.Cancelled,
	})
	if err != nil {
		log.Printf("Error marshaling frame update: %v", err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "frame", Data: string(data)}:
	case <-ctx.Done():
	}
}

func (s *Server) sendComplete(ctx context.Context, sseEventChan chan SSEEvent, gen uint64) {
	update := CompleteUpdate{Generation: gen}

	// Stats describe the latest pass, which may already be a newer one
	if stats := s.handle.Stats(); stats.Generation == gen {
		update.ElapsedMs = stats.Elapsed.Milliseconds()
		update.TotalPixels = stats.TotalPixels
		update.Failures = stats.Failures
		update.AverageSteps = stats.AverageSteps
		update.Outcomes = make(map[string]int)
		for i, count := range stats.Outcomes {
			if count > 0 {
				update.Outcomes[integrator.Outcome(i).String()] = count
			}
		}
	}

	data, err := json.Marshal(update)
	if err != nil {
		log.Printf("Error marshaling completion: %v", err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "complete", Data: string(data)}:
	case <-ctx.Done():
	}
}
