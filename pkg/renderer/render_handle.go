package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/df07/go-blackhole-raytracer/pkg/core"
	"github.com/df07/go-blackhole-raytracer/pkg/scene"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// SchedulerConfig contains configuration for the render scheduler
type SchedulerConfig struct {
	TileSize   int // Size of each square tile in pixels
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultSchedulerConfig returns sensible default values
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		TileSize:   32,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// renderPass is one run of the workers over the whole image
type renderPass struct {
	generation uint64
	scene      *scene.Scene
	start      time.Time
	finished   chan struct{} // closed once every worker has exited
	elapsed    time.Duration // valid after finished is closed
	stats      passStats
}

// RenderHandle owns the pixel buffer and runs render passes over it. At most
// one pass writes to the buffer at any time: Start cancels the running pass
// and waits for its workers to exit before launching the next.
//
// Cancellation is cooperative and pixel-granular. Workers check the
// generation counter before each pixel, so a pixel that has started is
// always finished.
type RenderHandle struct {
	width, height int
	config        SchedulerConfig
	logger        core.Logger
	printer       *message.Printer
	tiles         []*Tile

	pixels     []atomic.Uint32 // packed RGBA, row-major; 0 = never written
	generation atomic.Uint64
	current    atomic.Pointer[renderPass]

	mu    sync.Mutex // serialises Start and Stop
	shade pixelShader
}

// NewRenderHandle creates an idle handle for a width×height image
func NewRenderHandle(width, height int, config SchedulerConfig, logger core.Logger) *RenderHandle {
	if config.TileSize <= 0 {
		config.TileSize = DefaultSchedulerConfig().TileSize
	}
	if config.NumWorkers <= 0 {
		config.NumWorkers = runtime.NumCPU()
	}
	if logger == nil {
		logger = core.DiscardLogger()
	}

	return &RenderHandle{
		width:   width,
		height:  height,
		config:  config,
		logger:  logger,
		printer: message.NewPrinter(language.English),
		tiles:   NewTileGrid(width, height, config.TileSize),
		pixels:  make([]atomic.Uint32, width*height),
		shade:   traceScene,
	}
}

// Width returns the image width in pixels
func (h *RenderHandle) Width() int { return h.width }

// Height returns the image height in pixels
func (h *RenderHandle) Height() int { return h.height }

// NumWorkers returns the number of workers used per pass
func (h *RenderHandle) NumWorkers() int { return h.config.NumWorkers }

// Start begins a new render pass of s, cancelling any pass in progress. It
// blocks until the previous pass's workers have exited, then returns the
// new pass's generation while the pass runs in the background.
func (h *RenderHandle) Start(s *scene.Scene) uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	gen := h.generation.Add(1)
	h.join()

	// The pass works on its own copy so callers may keep modifying theirs
	sceneCopy := *s
	pass := &renderPass{
		generation: gen,
		scene:      &sceneCopy,
		start:      time.Now(),
		finished:   make(chan struct{}),
	}
	h.current.Store(pass)

	h.logger.Printf("Pass %d: %s render of %dx%d (%d tiles, %d workers)\n",
		gen, s.Model, h.width, h.height, len(h.tiles), h.config.NumWorkers)

	poolDone := newWorkerPool(h, pass, h.tiles, h.config.NumWorkers).Start()
	go h.finish(pass, poolDone)

	return gen
}

// Stop cancels the pass in progress and waits for its workers to exit
func (h *RenderHandle) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.generation.Add(1)
	h.join()
}

// join waits for the most recent pass to finish. Callers must hold mu.
func (h *RenderHandle) join() {
	if prev := h.current.Load(); prev != nil {
		<-prev.finished
	}
}

func (h *RenderHandle) finish(pass *renderPass, poolDone <-chan struct{}) {
	<-poolDone
	pass.elapsed = time.Since(pass.start)

	total := len(h.pixels)
	stats := pass.stats.snapshot(total)
	if stats.PixelsWritten < total {
		h.logger.Printf("Pass %d cancelled after %v (%s of %s pixels)\n",
			pass.generation, pass.elapsed, h.printer.Sprintf("%d", stats.PixelsWritten), h.printer.Sprintf("%d", total))
	} else {
		h.logger.Printf("Pass %d completed in %v (%s pixels, %s failures, %.0f steps/pixel)\n",
			pass.generation, pass.elapsed, h.printer.Sprintf("%d", total), h.printer.Sprintf("%d", stats.Failures), stats.AverageSteps)
	}

	close(pass.finished)
}

// IsIdle reports whether no pass is running
func (h *RenderHandle) IsIdle() bool {
	pass := h.current.Load()
	if pass == nil {
		return true
	}
	select {
	case <-pass.finished:
		return true
	default:
		return false
	}
}

// Wait blocks until the current pass finishes or ctx is done
func (h *RenderHandle) Wait(ctx context.Context) error {
	pass := h.current.Load()
	if pass == nil {
		return nil
	}
	select {
	case <-pass.finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PassGeneration returns the generation of the most recently started pass,
// or 0 if no pass has been started. Stop does not change it.
func (h *RenderHandle) PassGeneration() uint64 {
	if pass := h.current.Load(); pass != nil {
		return pass.generation
	}
	return 0
}

// Snapshot returns a copy of the pixel buffer in row-major order. It is safe
// to call while a pass is running. Pixels never written have zero alpha.
func (h *RenderHandle) Snapshot() []color.RGBA {
	out := make([]color.RGBA, len(h.pixels))
	for i := range h.pixels {
		out[i] = unpackRGBA(h.pixels[i].Load())
	}
	return out
}

// Image returns a snapshot of the pixel buffer as an image
func (h *RenderHandle) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, h.width, h.height))
	for i := range h.pixels {
		c := unpackRGBA(h.pixels[i].Load())
		img.Pix[4*i] = c.R
		img.Pix[4*i+1] = c.G
		img.Pix[4*i+2] = c.B
		img.Pix[4*i+3] = c.A
	}
	return img
}

// Progress returns the fraction of pixels shaded by the current pass
func (h *RenderHandle) Progress() float64 {
	pass := h.current.Load()
	if pass == nil || len(h.pixels) == 0 {
		return 0
	}
	return float64(pass.stats.written.Load()) / float64(len(h.pixels))
}

// Stats returns statistics for the current pass, or the last one if idle
func (h *RenderHandle) Stats() RenderStats {
	total := len(h.pixels)
	pass := h.current.Load()
	if pass == nil {
		return RenderStats{TotalPixels: total, Done: true}
	}

	stats := pass.stats.snapshot(total)
	stats.Generation = pass.generation
	select {
	case <-pass.finished:
		stats.Done = true
		stats.Elapsed = pass.elapsed
		stats.Cancelled = stats.PixelsWritten < total
	default:
		stats.Elapsed = time.Since(pass.start)
	}
	return stats
}

// Frame is a periodic snapshot of a pass in progress
type Frame struct {
	Generation uint64
	Image      *image.RGBA
	Progress   float64
	Done       bool // Last frame of the pass
	Cancelled  bool
}

// Frames streams snapshots of the current pass every interval until it
// finishes, ending with a frame marked Done. The channel is closed after
// the last frame or when ctx is done.
func (h *RenderHandle) Frames(ctx context.Context, interval time.Duration) <-chan Frame {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	frames := make(chan Frame, 1)
	pass := h.current.Load()

	go func() {
		defer close(frames)
		if pass == nil {
			return
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-pass.finished:
				h.sendFrame(ctx, frames, pass, true)
				return
			case <-ticker.C:
				if !h.sendFrame(ctx, frames, pass, false) {
					return
				}
			}
		}
	}()

	return frames
}

func (h *RenderHandle) sendFrame(ctx context.Context, frames chan<- Frame, pass *renderPass, done bool) bool {
	written := int(pass.stats.written.Load())
	frame := Frame{
		Generation: pass.generation,
		Image:      h.Image(),
		Progress:   float64(written) / float64(max(1, len(h.pixels))),
		Done:       done,
		Cancelled:  done && written < len(h.pixels),
	}
	select {
	case frames <- frame:
		return true
	case <-ctx.Done():
		return false
	}
}
