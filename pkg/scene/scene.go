package scene

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/df07/go-blackhole-raytracer/pkg/geometry"
	"github.com/df07/go-blackhole-raytracer/pkg/integrator"
)

// Model selects the physics used to classify rays
type Model int

const (
	Euclidean Model = iota
	Schwarzschild
)

func (m Model) String() string {
	switch m {
	case Euclidean:
		return "euclidean"
	case Schwarzschild:
		return "schwarzschild"
	}
	return fmt.Sprintf("model(%d)", int(m))
}

// ParseModel parses a model name, case-insensitively
func ParseModel(name string) (Model, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "euclidean", "flat":
		return Euclidean, nil
	case "schwarzschild":
		return Schwarzschild, nil
	}
	return Euclidean, fmt.Errorf("unknown model %q (expected euclidean or schwarzschild)", name)
}

// Scene is everything a render pass needs to classify a pixel. A Scene is
// never modified once handed to the renderer; the With* methods return copies.
type Scene struct {
	Model    Model
	Camera   geometry.Camera
	Geodesic integrator.GeodesicConfig
}

// New creates a scene with the default integration settings
func New(model Model, camera geometry.Camera) *Scene {
	return &Scene{
		Model:    model,
		Camera:   camera,
		Geodesic: integrator.DefaultGeodesicConfig(),
	}
}

// Trace classifies the ray through pixel (x, y) of a w×h image
func (s *Scene) Trace(x, y, w, h int) integrator.Result {
	ray := s.Camera.PixelRay(x, y, w, h)

	switch s.Model {
	case Schwarzschild:
		return integrator.TraceSchwarzschild(ray, s.Camera.Sky(), s.Geodesic)
	default:
		return integrator.TraceEuclidean(ray, s.Camera.Sky())
	}
}

// RenderPixel returns just the color of pixel (x, y)
func (s *Scene) RenderPixel(x, y, w, h int) color.RGBA {
	return s.Trace(x, y, w, h).Color
}

// WithCamera returns a copy of the scene viewed through camera
func (s *Scene) WithCamera(camera geometry.Camera) *Scene {
	next := *s
	next.Camera = camera
	return &next
}

// WithModel returns a copy of the scene using a different model
func (s *Scene) WithModel(model Model) *Scene {
	next := *s
	next.Model = model
	return &next
}

// Orbit returns a copy with the camera dragged by (dx, dy) pixels
func (s *Scene) Orbit(dx, dy int) *Scene {
	return s.WithCamera(s.Camera.Drag(dx, dy))
}

// Label describes the camera and model for an image overlay
func (s *Scene) Label() []string {
	r, theta, phi := s.Camera.OrbitCoordinates()
	return []string{
		fmt.Sprintf("r=%.2f theta=%.3f phi=%.3f", r, theta, phi),
		s.Model.String(),
	}
}
